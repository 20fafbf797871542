package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/TripleAConsortium/gog-price-checker/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	APIBaseURL   string
	SiteBaseURL  string
	FetchWorkers int
	RegionsFile  string
}

// ResetConfig resets viper and the config package globals, restoring both
// when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	saved := ConfigState{
		APIBaseURL:   config.APIBaseURL,
		SiteBaseURL:  config.SiteBaseURL,
		FetchWorkers: config.FetchWorkers,
		RegionsFile:  config.RegionsFile,
	}

	viper.Reset()
	config.InitConfig()

	t.Cleanup(func() {
		config.APIBaseURL = saved.APIBaseURL
		config.SiteBaseURL = saved.SiteBaseURL
		config.FetchWorkers = saved.FetchWorkers
		config.RegionsFile = saved.RegionsFile
		viper.Reset()
	})
}

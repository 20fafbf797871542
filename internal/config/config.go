package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default endpoints of the GOG storefront.
const (
	DefaultAPIBaseURL  = "https://api.gog.com"
	DefaultSiteBaseURL = "https://www.gog.com"
)

// Global configuration variables
var (
	// APIBaseURL is the base URL of the pricing API.
	APIBaseURL string
	// SiteBaseURL is the base URL of the storefront site (product and wishlist pages).
	SiteBaseURL string
	// APITimeout bounds a single HTTP request.
	APITimeout time.Duration
	// FetchTimeout bounds the whole region fan-out; 0 means no limit.
	FetchTimeout time.Duration
	// FetchWorkers caps concurrent in-flight requests; 0 means one goroutine per region.
	FetchWorkers int
	// RegionsFile optionally points at a YAML catalog override.
	RegionsFile string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("api.baseurl", DefaultAPIBaseURL)
	viper.SetDefault("site.baseurl", DefaultSiteBaseURL)
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("fetch.timeout", "60s")
	viper.SetDefault("fetch.workers", 0)

	// Get values from viper
	APIBaseURL = viper.GetString("api.baseurl")
	SiteBaseURL = viper.GetString("site.baseurl")
	APITimeout = viper.GetDuration("api.timeout")
	FetchTimeout = viper.GetDuration("fetch.timeout")
	FetchWorkers = viper.GetInt("fetch.workers")
	RegionsFile = viper.GetString("regions.file")
}

// SetFetchWorkers sets the worker-pool cap for the region fan-out.
func SetFetchWorkers(workers int) {
	FetchWorkers = workers
}

// SetRegionsFile sets the catalog override path.
func SetRegionsFile(path string) {
	RegionsFile = path
}

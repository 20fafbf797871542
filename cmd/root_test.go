package cmd

import (
	"log/slog"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TripleAConsortium/gog-price-checker/internal/cache"
	"github.com/TripleAConsortium/gog-price-checker/internal/config"
)

func resetCmdState(t *testing.T) {
	origWorkers := config.FetchWorkers
	origRegions := config.RegionsFile

	t.Cleanup(func() {
		config.FetchWorkers = origWorkers
		config.RegionsFile = origRegions
		viper.Reset()
	})

	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"gog-price-checker"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gog-price-checker"),
		kong.Description("Check GOG regional prices and find the cheapest region."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestPriceCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "-n", "-p", "price", "https://www.gog.com/en/game/cyberpunk_2077", "-c", "5", "--json")

	assert.True(t, cli.Normalize)
	assert.True(t, cli.Pretty)
	assert.Equal(t, "https://www.gog.com/en/game/cyberpunk_2077", cli.Price.URL)
	assert.Equal(t, 5, cli.Price.Count)
	assert.True(t, cli.Price.JSON)
}

func TestWishlistCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "wishlist", "gamer", "--json-output", "/tmp/wl.json")

	assert.Equal(t, "gamer", cli.Wishlist.Username)
	assert.Equal(t, "/tmp/wl.json", cli.Wishlist.JSONOutput)
	assert.False(t, cli.Normalize)
}

func TestCacheInvalidateParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "cache", "invalidate", "prices")

	assert.Equal(t, "prices", cli.Cache.Invalidate.Source)
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "price", "https://www.gogdb.org/product/1234")

	assert.False(t, cli.Normalize, "Normalize should default to false")
	assert.False(t, cli.Pretty, "Pretty should default to false")
	assert.Equal(t, 0, cli.Workers, "Workers should default to 0")
	assert.Equal(t, 10, cli.Price.Count, "Count should default to 10")
	assert.Equal(t, "./cache.db", cli.CacheDBFile, "CacheDBFile should default to ./cache.db")
	assert.Equal(t, "1h", cli.CacheTTL, "CacheTTL should default to 1h")
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Workers:     20,
		RegionsFile: "/tmp/regions.yaml",
		CacheDBFile: "/tmp/cache.db",
		CacheTTL:    "12h",
	}

	updateGlobalConfig(cli)

	assert.Equal(t, 20, config.FetchWorkers)
	assert.Equal(t, "/tmp/regions.yaml", config.RegionsFile)
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestPriceRunDelegates(t *testing.T) {
	resetCmdState(t)

	var gotURL string
	var gotNormalize, gotPretty bool
	var gotCount int
	orig := checkProduct
	checkProduct = func(url string, normalize bool, count int, pretty bool, writeJSON bool, jsonOutput string) error {
		gotURL = url
		gotNormalize = normalize
		gotCount = count
		gotPretty = pretty
		return nil
	}
	t.Cleanup(func() { checkProduct = orig })

	cli, ctx := parseCLI(t, "-n", "price", "https://www.gogdb.org/product/1234", "-c", "3")
	require.NoError(t, ctx.Run(cli))

	assert.Equal(t, "https://www.gogdb.org/product/1234", gotURL)
	assert.True(t, gotNormalize)
	assert.False(t, gotPretty)
	assert.Equal(t, 3, gotCount)
}

func TestWishlistRunDelegates(t *testing.T) {
	resetCmdState(t)

	var gotUsername string
	orig := checkWishlist
	checkWishlist = func(username string, normalize bool, pretty bool, writeJSON bool, jsonOutput string) error {
		gotUsername = username
		return nil
	}
	t.Cleanup(func() { checkWishlist = orig })

	cli, ctx := parseCLI(t, "wishlist", "gamer")
	require.NoError(t, ctx.Run(cli))

	assert.Equal(t, "gamer", gotUsername)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		envValue string
		want     slog.Level
	}{
		{"default", false, "", slog.LevelInfo},
		{"verbose flag", true, "", slog.LevelDebug},
		{"verbose beats env", true, "error", slog.LevelDebug},
		{"env debug", false, "debug", slog.LevelDebug},
		{"env DEBUG", false, "DEBUG", slog.LevelDebug},
		{"env warn", false, "warn", slog.LevelWarn},
		{"env error", false, "error", slog.LevelError},
		{"env invalid", false, "nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("GOG_LOG_LEVEL", tt.envValue)
			}
			assert.Equal(t, tt.want, logLevel(tt.verbose))
		})
	}
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging(false)
	})
}

func TestCommandStructure(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{}

	assert.IsType(t, PriceCmd{}, cli.Price)
	assert.IsType(t, WishlistCmd{}, cli.Wishlist)
	assert.IsType(t, cache.InvalidateCacheCmd{}, cli.Cache.Invalidate)
}

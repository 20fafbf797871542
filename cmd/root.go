package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/TripleAConsortium/gog-price-checker/cmd/product"
	"github.com/TripleAConsortium/gog-price-checker/cmd/wishlist"
	"github.com/TripleAConsortium/gog-price-checker/internal/cache"
	"github.com/TripleAConsortium/gog-price-checker/internal/config"
)

var (
	checkProduct  = product.CheckWithParams
	checkWishlist = wishlist.CheckWithParams
)

// CLI represents the complete command structure for the price checker
type CLI struct {
	// Global flags
	Normalize bool `short:"n" help:"Rank prices by their USD-normalized amounts when the API provides them"`
	Pretty    bool `short:"p" help:"Render results as a styled table"`
	Verbose   bool `short:"v" help:"Enable debug logging"`

	// Fetch flags
	Workers     int    `help:"Cap on concurrent region requests (0 = one goroutine per region)"`
	RegionsFile string `help:"Path to a YAML file overriding the built-in region catalog"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g. 1h)" default:"1h"`

	Price    PriceCmd    `cmd:"" help:"Check a product's price across all regions"`
	Wishlist WishlistCmd `cmd:"" help:"Find the cheapest region for every product on a public wishlist"`
	Cache    CacheCmd    `cmd:"" help:"Manage the response cache"`
}

// PriceCmd represents the price command
type PriceCmd struct {
	URL        string `arg:"" help:"GOG product page URL or gogdb.org product URL"`
	Count      int    `short:"c" default:"10" help:"Number of cheapest regions to show"`
	JSON       bool   `help:"Write results to JSON format"`
	JSONOutput string `help:"Path to JSON output file (defaults to prices-<id>.json)"`
}

// WishlistCmd represents the wishlist command
type WishlistCmd struct {
	Username   string `arg:"" help:"GOG username whose public wishlist to check"`
	JSON       bool   `help:"Write results to JSON format"`
	JSONOutput string `help:"Path to JSON output file (defaults to wishlist-<username>.json)"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached responses for a source: prices, wishlist"`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("gog-price-checker"),
		kong.Description("Check GOG regional prices and find the cheapest region."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	initConfig()
	updateGlobalConfig(&cli)

	if err := ctx.Run(&cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "1h")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetFetchWorkers(cli.Workers)
	config.SetRegionsFile(cli.RegionsFile)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// Run methods for each command

func (p *PriceCmd) Run(cli *CLI) error {
	return checkProduct(p.URL, cli.Normalize, p.Count, cli.Pretty, p.JSON, p.JSONOutput)
}

func (w *WishlistCmd) Run(cli *CLI) error {
	return checkWishlist(w.Username, cli.Normalize, cli.Pretty, w.JSON, w.JSONOutput)
}

func initLogging(verbose bool) {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: logLevel(verbose),
	})

	slog.SetDefault(slog.New(handler))
}

// logLevel resolves the log level from the verbose flag, with the
// GOG_LOG_LEVEL environment variable as a fallback.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("GOG_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

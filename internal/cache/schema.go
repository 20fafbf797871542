package cache

// SQL schemas for cache tables.
// Both tables use "cache_key" as the primary key column for consistency.

// PricesCacheSchema stores raw pricing API responses keyed by
// product ID + region code + normalize flag.
const PricesCacheSchema = `
CREATE TABLE IF NOT EXISTS prices_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_prices_cached_at ON prices_cache(cached_at);
`

// WishlistCacheSchema stores parsed wishlist products keyed by
// username + region code.
const WishlistCacheSchema = `
CREATE TABLE IF NOT EXISTS wishlist_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wishlist_cached_at ON wishlist_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization.
var AllCacheSchemas = []string{
	PricesCacheSchema,
	WishlistCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names,
// used to prevent SQL injection when interpolating table names.
var ValidCacheTableNames = map[string]bool{
	"prices_cache":   true,
	"wishlist_cache": true,
}

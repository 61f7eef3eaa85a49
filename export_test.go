package foiafix

import "github.com/agentstation/foiafix/internal/cache"

// ResolverCacheStats exposes the client's resolution cache statistics to tests.
func ResolverCacheStats(c Client) cache.Stats {
	return c.(*client).resolver.CacheStats()
}

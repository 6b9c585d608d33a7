// Package regexcache memoizes compiled regular expressions. Search highlights
// and JSONPath "~" filters compile the same pattern once per matched value, so
// compiled programs are cached with a sliding expiry.
package regexcache

import (
	"context"
	"regexp"
	"time"

	"github.com/zjrosen/jvim/internal/cachemanager"
	"github.com/zjrosen/jvim/internal/log"
)

const ttl = 5 * time.Minute

var compiled = cachemanager.NewReadThroughCache[string, *regexp.Regexp, string](
	cachemanager.NewInMemoryCacheManager[string, *regexp.Regexp]("regex", ttl, cachemanager.DefaultCleanupInterval),
	func(_ context.Context, expr string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(expr)
		if err != nil {
			log.Debug(log.CatSearch, "regex compile failed", "expr", expr, "error", err)
			return nil, err
		}
		return re, nil
	},
	false,
)

// Compile returns the compiled form of expr, reusing a cached program when
// one exists.
func Compile(expr string) (*regexp.Regexp, error) {
	return compiled.GetWithRefresh(context.Background(), expr, expr, ttl)
}

// CompileFold is Compile with case-insensitive matching.
func CompileFold(expr string) (*regexp.Regexp, error) {
	return Compile("(?i)" + expr)
}

package search

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/cristianoliveira/cliptray/internal/history"
)

// RegexProvider matches if any configured field matches the pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the regex pattern.
// An invalid pattern matches nothing.
func (p *RegexProvider) Match(item history.Item, query string) bool {
	if query == "" {
		return true
	}

	re, err := p.Compile(query)
	if err != nil {
		return false
	}
	for _, field := range p.opts.Fields {
		if value := fieldValue(item, field); value != "" && re.MatchString(value) {
			return true
		}
	}
	return false
}

// Compile returns the cached expression for pattern. Callers use it to
// report invalid patterns before filtering.
func (p *RegexProvider) Compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// ValidatePattern reports an invalid regular expression.
func ValidatePattern(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	return nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}

package search

import (
	"strings"

	"github.com/cristianoliveira/cliptray/internal/history"
)

const typeTokenPrefix = "type:"

// TokenProvider splits the query on whitespace; every token must match at
// least one field (AND logic). A "type:<name>" token, e.g. "type:url",
// restricts results to that item type.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if the item has every requested type and all text
// tokens match at least one field.
func (p *TokenProvider) Match(item history.Item, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	var textTokens []string
	for _, token := range tokens {
		lower := strings.ToLower(token)
		if name, ok := strings.CutPrefix(lower, typeTokenPrefix); ok && name != "" {
			if !strings.EqualFold(item.Type.String(), name) {
				return false
			}
			continue
		}
		if p.opts.CaseInsensitive {
			token = lower
		}
		textTokens = append(textTokens, token)
	}

	for _, token := range textTokens {
		if !p.matchesAnyField(item, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchesAnyField(item history.Item, token string) bool {
	for _, field := range p.opts.Fields {
		value := fieldValue(item, field)
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}

// Package search implements keyword search over an annotated emoji catalog.
package search

import (
	"strings"

	"github.com/f3rmion/emo/internal/emoji"
)

// Transliterator returns alternative spellings of an annotation token, for
// example its pinyin romanization.
type Transliterator func(token string) []string

type options struct {
	translit Transliterator
	limit    int
}

// Option configures a search.
type Option func(*options)

// WithTransliterator lets a keyword also match the spellings returned by t
// for each annotation token.
func WithTransliterator(t Transliterator) Option {
	return func(o *options) {
		o.translit = t
	}
}

// WithLimit stops the search after n matches. n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// Search returns copies of the entries whose annotation has a token that
// starts with keyword, in catalog order. Tokens are the "|"-separated pieces
// of the entry's name with surrounding whitespace removed. Matching is
// case-sensitive. An empty keyword matches every annotated entry.
func Search(cat *emoji.Catalog, keyword string, opts ...Option) ([]emoji.Entry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cat == nil {
		return nil, emoji.ErrNotBuilt
	}
	switch cat.Phase() {
	case emoji.PhaseEmpty:
		return nil, emoji.ErrNotBuilt
	case emoji.PhaseBuilt:
		return nil, emoji.ErrNotAnnotated
	}

	var results []emoji.Entry
	cat.Walk(func(e *emoji.Entry) bool {
		if o.matches(e.Name, keyword) {
			results = append(results, e.Clone())
		}
		return o.limit <= 0 || len(results) < o.limit
	})
	return results, nil
}

func (o *options) matches(name, keyword string) bool {
	for _, token := range strings.Split(name, "|") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, keyword) {
			return true
		}
		if o.translit == nil {
			continue
		}
		for _, alt := range o.translit(token) {
			if strings.HasPrefix(alt, keyword) {
				return true
			}
		}
	}
	return false
}

// Package romanize provides Latin spellings of annotation tokens so they can
// be searched from a keyboard without an input method.
package romanize

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Romanizer converts Han characters to toneless pinyin.
type Romanizer struct {
	args gopinyin.Args
}

// New creates a Romanizer that considers every reading of a heteronym.
func New() *Romanizer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal // no tone marks: xiong
	args.Heteronym = true
	return &Romanizer{args: args}
}

// maxSpellings bounds the heteronym combinations produced for one token.
const maxSpellings = 8

// Spellings returns the pinyin spellings of token, both run together
// ("xiongmao") and space separated ("xiong mao") when the token has more
// than one syllable. Non-Han characters are ignored. A token without any
// Han character has no spellings.
func (r *Romanizer) Spellings(token string) []string {
	syllables := gopinyin.Pinyin(token, r.args)
	if len(syllables) == 0 {
		return nil
	}

	combos := [][]string{nil}
	for _, readings := range syllables {
		if len(readings) == 0 {
			continue
		}
		var next [][]string
		for _, combo := range combos {
			for _, reading := range readings {
				if len(next) == maxSpellings {
					break
				}
				next = append(next, append(append([]string(nil), combo...), reading))
			}
		}
		combos = next
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, combo := range combos {
		add(strings.Join(combo, ""))
		if len(combo) > 1 {
			add(strings.Join(combo, " "))
		}
	}
	return out
}

var defaultRomanizer = New()

// Pinyin returns the spellings of token using a shared Romanizer.
func Pinyin(token string) []string {
	return defaultRomanizer.Spellings(token)
}

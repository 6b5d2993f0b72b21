package annotation

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/f3rmion/emo/internal/resources"
	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned for identifiers that are not locales at all.
var ErrUnknownLocale = errors.New("unknown locale")

// ErrNoMatch is returned by Match when no bundled locale is close enough.
var ErrNoMatch = errors.New("no matching locale")

// Locale names a pair of bundled annotation files, e.g. "en" or "zh_Hant".
type Locale struct {
	ID string
}

// Default is the locale used when nothing better matches.
var Default = Locale{ID: "en"}

func (l Locale) String() string {
	return l.ID
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	tag, err := language.Parse(normalizeIdentifier(l.ID))
	if err != nil {
		return language.Und
	}
	return tag
}

// Available lists the locales that have annotation files in fsys.
func Available(fsys fs.FS) ([]Locale, error) {
	ids, err := resources.Locales(fsys)
	if err != nil {
		return nil, err
	}
	locales := make([]Locale, len(ids))
	for i, id := range ids {
		locales[i] = Locale{ID: id}
	}
	return locales, nil
}

// Resolve picks the available locale that best serves identifier, which may
// be a BCP 47 tag ("pt-BR") or a POSIX style name ("ja_JP.UTF-8"). When no
// available locale is close enough, Default is used if present.
func Resolve(fsys fs.FS, identifier string) (Locale, error) {
	locale, _, err := match(fsys, identifier)
	return locale, err
}

// Match is like Resolve but reports ErrNoMatch instead of falling back to
// Default when no available locale serves identifier.
func Match(fsys fs.FS, identifier string) (Locale, error) {
	locale, conf, err := match(fsys, identifier)
	if err != nil {
		return Locale{}, err
	}
	if conf == language.No {
		return Locale{}, fmt.Errorf("%w: %q", ErrNoMatch, identifier)
	}
	return locale, nil
}

func match(fsys fs.FS, identifier string) (Locale, language.Confidence, error) {
	tag, err := language.Parse(normalizeIdentifier(identifier))
	if err != nil {
		return Locale{}, language.No, fmt.Errorf("%w %q: %w", ErrUnknownLocale, identifier, err)
	}

	available, err := Available(fsys)
	if err != nil {
		return Locale{}, language.No, err
	}
	if len(available) == 0 {
		return Locale{}, language.No, fmt.Errorf("%w: no annotation files", resources.ErrMissing)
	}

	// The first supported tag is what the matcher falls back to.
	supported := make([]Locale, 0, len(available))
	for _, l := range available {
		if l == Default {
			supported = append([]Locale{l}, supported...)
		} else {
			supported = append(supported, l)
		}
	}

	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag()
	}

	_, index, conf := language.NewMatcher(tags).Match(tag)
	return supported[index], conf, nil
}

// normalizeIdentifier turns POSIX and CLDR file style identifiers into BCP 47.
func normalizeIdentifier(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.IndexAny(id, ".@"); i >= 0 {
		id = id[:i]
	}
	return strings.ReplaceAll(id, "_", "-")
}

// Package resources gives access to the emoji data files: emoji-test.txt
// and the CLDR annotation trees. An excerpt of each is embedded in the
// binary; a directory holding the full files can be used instead.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrMissing is returned when a resource file cannot be opened.
var ErrMissing = errors.New("emoji resource missing")

const (
	// EmojiTest is the path of the Unicode emoji test data.
	EmojiTest = "emoji-test.txt"

	annotationsDir        = "annotations"
	derivedAnnotationsDir = "annotationsDerived"
)

//go:embed data
var embedded embed.FS

// Embedded returns the resources compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // "data" is a valid path, fs.Sub cannot fail
	}
	return sub
}

// Open returns the resource tree rooted at dir, or the embedded resources
// when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// AnnotationPath returns the direct annotation file for a locale.
func AnnotationPath(locale string) string {
	return path.Join(annotationsDir, locale+".xml")
}

// DerivedAnnotationPath returns the derived annotation file for a locale.
func DerivedAnnotationPath(locale string) string {
	return path.Join(derivedAnnotationsDir, locale+".xml")
}

// OpenFile opens name in fsys. A missing or unreadable file is reported as
// ErrMissing.
func OpenFile(fsys fs.FS, name string) (fs.File, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissing, name, err)
	}
	return f, nil
}

// Locales lists the locales that have a direct annotation file, sorted.
func Locales(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, path.Join(annotationsDir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("listing annotation files: %w", err)
	}

	locales := make([]string, 0, len(matches))
	for _, m := range matches {
		locales = append(locales, strings.TrimSuffix(path.Base(m), ".xml"))
	}
	sort.Strings(locales)
	return locales, nil
}

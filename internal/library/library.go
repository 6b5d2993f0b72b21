// Package library ties the emoji catalog, its annotations and keyword search
// together behind one caller-owned value.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"sync"

	"github.com/f3rmion/emo/internal/annotation"
	"github.com/f3rmion/emo/internal/emoji"
	"github.com/f3rmion/emo/internal/resources"
	"github.com/f3rmion/emo/internal/romanize"
	"github.com/f3rmion/emo/internal/search"
	"golang.org/x/text/language"
)

// Library owns a catalog and the locale its annotations were merged from.
// It is safe for concurrent use.
type Library struct {
	fsys   fs.FS
	log    *slog.Logger
	merger *annotation.Merger

	requested      string
	resolveAliases bool
	autoUpdate     bool
	pinyin         bool

	// op serializes Build and SetLocale.
	op sync.Mutex

	mu     sync.RWMutex
	cat    *emoji.Catalog
	locale annotation.Locale

	handlersMu sync.RWMutex
	handlers   []func(annotation.Locale)
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger for the library and its annotation merger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		l.log = logger
	}
}

// WithLocale sets the locale identifier Load annotates with. It may be any
// BCP 47 or POSIX identifier; the closest bundled locale is used.
func WithLocale(identifier string) Option {
	return func(l *Library) {
		l.requested = identifier
	}
}

// WithAliasResolution makes annotations for unqualified and
// minimally-qualified sequences apply to their fully-qualified entry.
func WithAliasResolution(enabled bool) Option {
	return func(l *Library) {
		l.resolveAliases = enabled
	}
}

// WithAutoUpdate makes HandleInputLocaleChange re-annotate the catalog.
func WithAutoUpdate(enabled bool) Option {
	return func(l *Library) {
		l.autoUpdate = enabled
	}
}

// WithPinyin lets searches match the pinyin of annotation tokens while a
// Chinese locale is active.
func WithPinyin(enabled bool) Option {
	return func(l *Library) {
		l.pinyin = enabled
	}
}

// New creates a Library reading its resources from fsys.
func New(fsys fs.FS, opts ...Option) *Library {
	l := &Library{
		fsys:      fsys,
		log:       slog.Default(),
		requested: annotation.Default.ID,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.merger = annotation.NewMerger(
		annotation.WithLogger(l.log),
		annotation.WithAliasResolution(l.resolveAliases),
	)
	l.log = l.log.With("component", "library")
	return l
}

// Load builds the catalog and annotates it with the configured locale.
func (l *Library) Load(ctx context.Context) error {
	if err := l.Build(ctx); err != nil {
		return err
	}
	return l.SetLocale(ctx, l.requested)
}

// Build reads emoji-test.txt and replaces the catalog. The new catalog is
// not annotated until the next SetLocale.
func (l *Library) Build(ctx context.Context) error {
	l.op.Lock()
	defer l.op.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := resources.OpenFile(l.fsys, resources.EmojiTest)
	if err != nil {
		return err
	}
	defer f.Close()

	cat, err := emoji.Build(f)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	if cat.Phase() == emoji.PhaseEmpty {
		l.log.Warn("emoji test data has no fully-qualified emoji")
	}

	l.mu.Lock()
	l.cat = cat
	l.mu.Unlock()

	l.log.Info("built emoji catalog", "entries", cat.Len(), "groups", len(cat.Labels()))
	return nil
}

// SetLocale resolves identifier to a bundled locale, merges its annotations
// onto the catalog and notifies the OnAnnotationsChanged handlers. An empty
// identifier selects the default locale.
func (l *Library) SetLocale(ctx context.Context, identifier string) error {
	locale, err := l.setLocale(ctx, identifier)
	if err != nil {
		return err
	}
	l.emit(locale)
	return nil
}

func (l *Library) setLocale(ctx context.Context, identifier string) (annotation.Locale, error) {
	l.op.Lock()
	defer l.op.Unlock()

	if identifier == "" {
		identifier = annotation.Default.ID
	}

	locale, err := annotation.Resolve(l.fsys, identifier)
	if err != nil {
		return annotation.Locale{}, fmt.Errorf("resolving locale: %w", err)
	}

	cat := l.Catalog()
	if cat == nil {
		return annotation.Locale{}, emoji.ErrNotBuilt
	}

	stats, err := l.merger.Merge(ctx, cat, l.fsys, locale)
	if err != nil {
		return annotation.Locale{}, fmt.Errorf("merging %s annotations: %w", locale, err)
	}

	l.mu.Lock()
	l.locale = locale
	l.mu.Unlock()

	l.log.Info("annotations updated",
		"requested", identifier,
		"locale", locale.ID,
		"applied", stats.Applied,
		"dropped", stats.Dropped,
	)
	return locale, nil
}

// HandleInputLocaleChange is called when the user's input locale changes.
// It re-annotates the catalog only when auto-update is enabled and a bundled
// locale matches identifier; otherwise the current annotations stay.
func (l *Library) HandleInputLocaleChange(ctx context.Context, identifier string) error {
	if !l.autoUpdate {
		l.log.Debug("ignoring input locale change", "locale", identifier)
		return nil
	}
	locale, err := annotation.Match(l.fsys, identifier)
	if errors.Is(err, annotation.ErrNoMatch) {
		l.log.Debug("no annotations for input locale", "locale", identifier)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolving locale: %w", err)
	}
	return l.SetLocale(ctx, locale.ID)
}

// OnAnnotationsChanged registers fn to be called after every successful
// SetLocale with the locale that was merged.
func (l *Library) OnAnnotationsChanged(fn func(annotation.Locale)) {
	l.handlersMu.Lock()
	defer l.handlersMu.Unlock()
	l.handlers = append(l.handlers, fn)
}

func (l *Library) emit(locale annotation.Locale) {
	l.handlersMu.RLock()
	handlers := slices.Clone(l.handlers)
	l.handlersMu.RUnlock()

	for _, fn := range handlers {
		fn(locale)
	}
}

// Catalog returns the current catalog, or nil before Build.
func (l *Library) Catalog() *emoji.Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cat
}

// Locale returns the locale of the last successful merge. It is the zero
// Locale before the first one.
func (l *Library) Locale() annotation.Locale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locale
}

// Locales lists the bundled locales.
func (l *Library) Locales() ([]annotation.Locale, error) {
	return annotation.Available(l.fsys)
}

// Search returns the entries with an annotation token starting with
// keyword, in catalog order.
func (l *Library) Search(keyword string, opts ...search.Option) ([]emoji.Entry, error) {
	return search.Search(l.Catalog(), keyword, l.searchOptions(opts)...)
}

// SearchAsync runs Search on its own goroutine.
func (l *Library) SearchAsync(keyword string, opts ...search.Option) <-chan search.Result {
	return search.Async(l.Catalog(), keyword, l.searchOptions(opts)...)
}

func (l *Library) searchOptions(extra []search.Option) []search.Option {
	var opts []search.Option
	if l.pinyin && isChinese(l.Locale()) {
		opts = append(opts, search.WithTransliterator(romanize.Pinyin))
	}
	return append(opts, extra...)
}

var chinese = language.MustParseBase("zh")

func isChinese(locale annotation.Locale) bool {
	base, _ := locale.Tag().Base()
	return base == chinese
}

// Lookup returns the entry for an emoji. Unqualified and
// minimally-qualified forms find their fully-qualified entry.
func (l *Library) Lookup(key string) (emoji.Entry, bool) {
	cat := l.Catalog()
	if cat == nil {
		return emoji.Entry{}, false
	}
	if e, ok := cat.Lookup(key); ok {
		return e, true
	}
	if fq, ok := cat.Alias(key); ok {
		return cat.Lookup(fq)
	}
	return emoji.Entry{}, false
}

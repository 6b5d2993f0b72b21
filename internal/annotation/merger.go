package annotation

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/f3rmion/emo/internal/emoji"
	"github.com/f3rmion/emo/internal/resources"
	"golang.org/x/sync/errgroup"
)

// Stats describes the outcome of a merge.
type Stats struct {
	Records    int // records read from both files
	Applied    int // records written to a catalog entry
	Propagated int // extra writes to a fully-qualified counterpart
	Aliased    int // applied records that were resolved through an alias
	Dropped    int // records whose emoji is not in the catalog
}

// Merger overlays the direct and derived annotations of a locale onto a
// catalog.
type Merger struct {
	log            *slog.Logger
	resolveAliases bool
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger used for merge diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		m.log = logger
	}
}

// WithAliasResolution makes records for minimally-qualified and
// unqualified sequences annotate their fully-qualified entry instead of
// being dropped.
func WithAliasResolution(enabled bool) Option {
	return func(m *Merger) {
		m.resolveAliases = enabled
	}
}

// NewMerger creates a Merger.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("component", "annotation")
	return m
}

// Merge reads both annotation files of locale from fsys and writes their
// names and spoken texts onto cat. Derived annotations are applied after
// the direct ones, so they win for fields both set.
func (m *Merger) Merge(ctx context.Context, cat *emoji.Catalog, fsys fs.FS, locale Locale) (Stats, error) {
	var stats Stats

	if cat == nil || cat.Phase() == emoji.PhaseEmpty {
		return stats, emoji.ErrNotBuilt
	}

	var direct, derived []Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		direct, err = m.load(gctx, fsys, resources.AnnotationPath(locale.ID))
		return err
	})
	g.Go(func() error {
		var err error
		derived, err = m.load(gctx, fsys, resources.DerivedAnnotationPath(locale.ID))
		return err
	})
	if err := g.Wait(); err != nil {
		return stats, err
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	err := cat.Annotate(func(tx *emoji.Tx) error {
		for _, records := range [][]Record{direct, derived} {
			for _, rec := range records {
				m.apply(tx, rec, &stats)
			}
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	m.log.Debug("merged annotations",
		"locale", locale.ID,
		"records", stats.Records,
		"applied", stats.Applied,
		"propagated", stats.Propagated,
		"aliased", stats.Aliased,
		"dropped", stats.Dropped,
	)

	return stats, nil
}

func (m *Merger) load(ctx context.Context, fsys fs.FS, name string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := resources.OpenFile(fsys, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return records, nil
}

func (m *Merger) apply(tx *emoji.Tx, rec Record, stats *Stats) {
	stats.Records++

	target := tx.Entry(rec.CP)
	aliased := false
	if target == nil && m.resolveAliases {
		if fq, ok := tx.Alias(rec.CP); ok {
			target = tx.Entry(fq)
			aliased = target != nil
		}
	}
	if target == nil {
		stats.Dropped++
		m.log.Debug("dropping annotation for emoji not in catalog", "cp", rec.CP, "kind", rec.Kind)
		return
	}

	set(target, rec)
	stats.Applied++
	if aliased {
		stats.Aliased++
	}

	if target.FullyQualifiedKey == "" {
		return
	}
	if counterpart := tx.Entry(target.FullyQualifiedKey); counterpart != nil && counterpart != target {
		set(counterpart, rec)
		stats.Propagated++
	}
}

func set(e *emoji.Entry, rec Record) {
	switch rec.Kind {
	case KindSpokenText:
		e.SpokenText = rec.Text
	default:
		e.Name = rec.Text
	}
}

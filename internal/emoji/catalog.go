package emoji

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	// ErrNotBuilt is returned when an operation needs a catalog that has
	// not been loaded from emoji-test.txt yet (or loaded nothing).
	ErrNotBuilt = errors.New("emoji catalog not built: load emoji-test.txt first")

	// ErrNotAnnotated is returned by operations that need annotations
	// before the first annotation merge has completed.
	ErrNotAnnotated = errors.New("emoji catalog not annotated: merge annotations first")
)

// Phase is the lifecycle stage of a Catalog.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseBuilt
	PhaseAnnotated
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilt:
		return "built"
	case PhaseAnnotated:
		return "annotated"
	default:
		return "empty"
	}
}

// variationSelector16 requests emoji presentation. Minimally-qualified and
// unqualified sequences differ from their fully-qualified form by it.
const variationSelector16 = '\uFE0F'

// Catalog holds every fully-qualified emoji of emoji-test.txt. Entries are
// shared between the keyed set and the grouped view, so annotating an entry
// is visible through both. The zero value is an empty catalog.
type Catalog struct {
	mu sync.RWMutex

	entries map[string]*Entry
	labels  []Label
	grouped map[Label][]*Entry

	// aliases maps a minimally-qualified or unqualified key to the key of
	// its fully-qualified entry.
	aliases map[string]string

	annotated bool
}

func newCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]*Entry),
		grouped: make(map[Label][]*Entry),
		aliases: make(map[string]string),
	}
}

// Build reads an emoji-test.txt stream and returns the catalog of its
// fully-qualified emoji, grouped by the group/subgroup headers they appear
// under. Lines that are not understood are skipped.
func Build(r io.Reader) (*Catalog, error) {
	c := newCatalog()

	var (
		label     Label
		qualified = make(map[string]string) // stripped key -> fully-qualified key
		others    []string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		row := ParseRow(strings.TrimSuffix(scanner.Text(), "\r"))

		switch row.Kind {
		case RowGroupHeader:
			label.Group = row.Name
		case RowSubgroupHeader:
			label.Subgroup = row.Name
		case RowData:
			if row.Status != StatusFullyQualified {
				if row.Status != StatusComponent {
					others = append(others, KeyOf(row.Codepoints))
				}
				continue
			}

			entry := NewEntry(row.Codepoints, row.Status, label)
			if _, exists := c.entries[entry.Key]; exists {
				continue
			}
			c.add(entry)
			qualified[stripVariation(entry.Key)] = entry.Key
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading emoji test data: %w", err)
	}

	for _, key := range others {
		if fq, ok := qualified[stripVariation(key)]; ok && fq != key {
			c.aliases[key] = fq
		}
	}

	return c, nil
}

func (c *Catalog) add(e *Entry) {
	if _, seen := c.grouped[e.Label]; !seen {
		c.labels = append(c.labels, e.Label)
	}
	c.entries[e.Key] = e
	c.grouped[e.Label] = append(c.grouped[e.Label], e)
}

func stripVariation(key string) string {
	return strings.Map(func(r rune) rune {
		if r == variationSelector16 {
			return -1
		}
		return r
	}, key)
}

// Phase returns the lifecycle stage of the catalog.
func (c *Catalog) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phaseLocked()
}

func (c *Catalog) phaseLocked() Phase {
	switch {
	case len(c.entries) == 0:
		return PhaseEmpty
	case c.annotated:
		return PhaseAnnotated
	default:
		return PhaseBuilt
	}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookup returns a copy of the entry stored under key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Alias returns the fully-qualified key for a minimally-qualified or
// unqualified key.
func (c *Catalog) Alias(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fq, ok := c.aliases[key]
	return fq, ok
}

// Labels returns the labels in the order they first appear in the resource.
func (c *Catalog) Labels() []Label {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Label(nil), c.labels...)
}

// Grouped returns copies of the entries under label, in resource order.
func (c *Catalog) Grouped(label Label) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	group := c.grouped[label]
	out := make([]Entry, len(group))
	for i, e := range group {
		out[i] = e.Clone()
	}
	return out
}

// Entries returns copies of all entries, flattened in label order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, c.Len())
	c.Walk(func(e *Entry) bool {
		out = append(out, e.Clone())
		return true
	})
	return out
}

// Walk calls fn for every entry in label order, then in-group order, while
// holding the read lock. fn must not modify or retain the entry; it returns
// false to stop the walk.
func (c *Catalog) Walk(fn func(e *Entry) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, label := range c.labels {
		for _, e := range c.grouped[label] {
			if !fn(e) {
				return
			}
		}
	}
}

// Annotate runs fn with exclusive access to the catalog's entries. The
// catalog counts as annotated once fn returns without error.
func (c *Catalog) Annotate(fn func(tx *Tx) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phaseLocked() == PhaseEmpty {
		return ErrNotBuilt
	}
	if err := fn(&Tx{c: c}); err != nil {
		return err
	}
	c.annotated = true
	return nil
}

// Tx gives write access to catalog entries for the duration of Annotate.
type Tx struct {
	c *Catalog
}

// Entry returns the shared entry stored under key, or nil.
func (tx *Tx) Entry(key string) *Entry {
	return tx.c.entries[key]
}

// Alias returns the fully-qualified key for a non-fully-qualified key.
func (tx *Tx) Alias(key string) (string, bool) {
	fq, ok := tx.c.aliases[key]
	return fq, ok
}

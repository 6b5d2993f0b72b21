// Package emoji provides the emoji data model and the loader for the Unicode
// emoji-test.txt resource.
package emoji

import (
	"fmt"
	"strings"
)

// Status is the qualification status of an emoji row, as defined by UTS #51.
type Status int

const (
	StatusComponent          Status = iota // Emoji_Component characters (skin tones, hair styles)
	StatusFullyQualified                   // ED-18
	StatusMinimallyQualified               // ED-18a
	StatusUnqualified                      // ED-19
)

var statusNames = map[Status]string{
	StatusComponent:          "component",
	StatusFullyQualified:     "fully-qualified",
	StatusMinimallyQualified: "minimally-qualified",
	StatusUnqualified:        "unqualified",
}

// String returns the literal used for the status in emoji-test.txt.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus maps an emoji-test.txt status literal to a Status.
func ParseStatus(s string) (Status, bool) {
	for status, name := range statusNames {
		if name == s {
			return status, true
		}
	}
	return 0, false
}

// Label identifies the section of emoji-test.txt an entry was read from.
// Empty fields mean no header of that kind has been seen yet.
type Label struct {
	Group    string `json:"group"`
	Subgroup string `json:"subgroup"`
}

// IsZero reports whether the label is the unlabeled grouping.
func (l Label) IsZero() bool {
	return l.Group == "" && l.Subgroup == ""
}

func (l Label) String() string {
	switch {
	case l.IsZero():
		return "(unlabeled)"
	case l.Subgroup == "":
		return l.Group
	default:
		return l.Group + " / " + l.Subgroup
	}
}

// Entry is one emoji in the catalog.
type Entry struct {
	Key        string `json:"key"` // the code points as a single string
	Codepoints []rune `json:"codepoints"`
	Status     Status `json:"status"`
	Label      Label  `json:"label"`
	Name       string `json:"name"`        // "|"-separated annotation, empty until merged
	SpokenText string `json:"spoken_text"` // tts annotation, empty until merged

	// FullyQualifiedKey points at the fully-qualified counterpart of this
	// entry, resolved against the owning catalog. Empty when the entry is
	// itself the fully-qualified form.
	FullyQualifiedKey string `json:"fully_qualified_key,omitempty"`
}

// NewEntry creates an unannotated entry for the given code points.
func NewEntry(codepoints []rune, status Status, label Label) *Entry {
	cps := make([]rune, len(codepoints))
	copy(cps, codepoints)
	return &Entry{
		Key:        KeyOf(cps),
		Codepoints: cps,
		Status:     status,
		Label:      label,
	}
}

// KeyOf returns the catalog key for a code point sequence.
func KeyOf(codepoints []rune) string {
	return string(codepoints)
}

// Names returns the trimmed, non-empty synonyms of the entry's Name.
func (e Entry) Names() []string {
	var names []string
	for _, part := range strings.Split(e.Name, "|") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// CodepointString formats the code points the way emoji-test.txt does,
// e.g. "1F600 1F3FB".
func (e Entry) CodepointString() string {
	parts := make([]string, len(e.Codepoints))
	for i, r := range e.Codepoints {
		parts[i] = fmt.Sprintf("%04X", r)
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	c.Codepoints = append([]rune(nil), e.Codepoints...)
	return c
}

// Package annotation reads CLDR emoji annotations and merges them onto an
// emoji catalog.
package annotation

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Kind tells which entry field an annotation record sets.
type Kind int

const (
	KindName       Kind = iota // "|"-separated keywords and short name
	KindSpokenText             // type="tts"
)

func (k Kind) String() string {
	if k == KindSpokenText {
		return "tts"
	}
	return "name"
}

// Record is one <annotation> element.
type Record struct {
	CP   string // the emoji itself, used as the catalog key
	Kind Kind
	Text string
}

type ldml struct {
	XMLName     xml.Name    `xml:"ldml"`
	Annotations annotations `xml:"annotations"`
}

type annotations struct {
	Annotation []annotation `xml:"annotation"`
}

type annotation struct {
	CP   string `xml:"cp,attr"`
	Type string `xml:"type,attr,omitempty"`
	Text string `xml:",chardata"`
}

// Parse decodes an LDML annotations document. Elements without a cp
// attribute are skipped.
func Parse(r io.Reader) ([]Record, error) {
	var doc ldml
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding annotations: %w", err)
	}

	records := make([]Record, 0, len(doc.Annotations.Annotation))
	for _, a := range doc.Annotations.Annotation {
		if a.CP == "" {
			continue
		}
		rec := Record{CP: a.CP, Kind: KindName, Text: a.Text}
		if a.Type == "tts" {
			rec.Kind = KindSpokenText
		}
		records = append(records, rec)
	}
	return records, nil
}

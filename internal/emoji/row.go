package emoji

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RowKind classifies a line of emoji-test.txt.
type RowKind int

const (
	RowComment RowKind = iota
	RowGroupHeader
	RowSubgroupHeader
	RowData
)

const (
	groupPrefix    = "# group:"
	subgroupPrefix = "# subgroup:"
)

// Row is a classified line of emoji-test.txt.
type Row struct {
	Kind RowKind
	Name string // group or subgroup name for header rows

	// Set for RowData.
	Codepoints []rune
	Status     Status
}

// ParseRow classifies a single line (without its terminator). Lines in an
// unknown format are comments, so ParseRow never fails.
func ParseRow(line string) Row {
	if line == "" {
		return Row{Kind: RowComment}
	}

	if line[0] == '#' {
		if name, ok := headerName(line, groupPrefix); ok {
			return Row{Kind: RowGroupHeader, Name: name}
		}
		if name, ok := headerName(line, subgroupPrefix); ok {
			return Row{Kind: RowSubgroupHeader, Name: name}
		}
		return Row{Kind: RowComment}
	}

	cps, status, ok := parseData(line)
	if !ok {
		return Row{Kind: RowComment}
	}
	return Row{Kind: RowData, Codepoints: cps, Status: status}
}

// headerName returns the text following "<prefix> ". The single character
// after the colon is skipped but the name itself is not trimmed.
func headerName(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	rest := line[strings.IndexByte(line, ':')+1:]
	if rest == "" {
		return "", false
	}
	_, name, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
	return name, true
}

// parseData parses "<hex> (<hex>)* ; <status> [# comment]".
func parseData(line string) ([]rune, Status, bool) {
	var columns []string
	for _, col := range strings.Split(line, ";") {
		if col != "" {
			columns = append(columns, col)
		}
	}
	if len(columns) != 2 {
		return nil, 0, false
	}

	var cps []rune
	for _, tok := range strings.Fields(columns[0]) {
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return nil, 0, false
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return nil, 0, false
		}
		cps = append(cps, r)
	}
	if len(cps) == 0 {
		return nil, 0, false
	}

	statusText, _, _ := strings.Cut(columns[1], "#")
	status, ok := ParseStatus(strings.TrimSpace(statusText))
	if !ok {
		return nil, 0, false
	}

	return cps, status, true
}

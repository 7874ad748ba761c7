package domain

import "time"

// EmphasisMarker separates plain and emphasized segments in narrative text.
// Segments at odd positions after splitting on the marker are emphasized.
// There is no escape sequence: a literal ":em" cannot appear in narrative
// text.
const EmphasisMarker = ":em"

// QueryResult is the generic shape every aggregation query returns: ordered
// column names plus one value tuple per row. Results are produced fresh per
// query and discarded after rendering.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result carries no rows.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// BlockKind discriminates the content blocks a report section may carry.
type BlockKind int

const (
	// BlockNarrative is body text using the EmphasisMarker markup.
	BlockNarrative BlockKind = iota
	// BlockText is plain body text.
	BlockText
	// BlockTable renders a QueryResult as a grid table.
	BlockTable
	// BlockImage embeds an image file centered in its own paragraph.
	BlockImage
)

// Block is one renderable unit inside a section. Exactly one of Text, Table
// or Image is meaningful depending on Kind.
type Block struct {
	Kind  BlockKind
	Text  string
	Table *QueryResult
	Image string
}

// Section is one titled part of the weekly report.
type Section struct {
	Heading string
	Level   int
	Blocks  []Block
}

// WeeklyReport is the assembled report model handed to the exporters.
type WeeklyReport struct {
	Project     string
	Owner       string
	Period      ReportPeriod
	GeneratedAt time.Time
	Sections    []Section
}

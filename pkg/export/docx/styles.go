package docx

// RunStyle is the character formatting applied to runs of a named style.
type RunStyle struct {
	Font   string
	SizePt float64
	Color  string // RRGGBB
	Bold   bool
	Italic bool
}

// The fixed style set every report document registers.
const (
	StyleHeading1 = "ReportHeading1"
	StyleHeading2 = "ReportHeading2"
	StyleBodyText = "ReportBodyText"
	StyleEmphasis = "EmphasisText"
)

// styleRegistry keeps the named run styles of one document. Registration is
// idempotent: a name already present keeps its first definition.
type styleRegistry struct {
	styles map[string]RunStyle
}

func newStyleRegistry() *styleRegistry {
	return &styleRegistry{styles: make(map[string]RunStyle)}
}

func (r *styleRegistry) Register(name string, style RunStyle) {
	if _, ok := r.styles[name]; ok {
		return
	}
	r.styles[name] = style
}

func (r *styleRegistry) Get(name string) (RunStyle, bool) {
	style, ok := r.styles[name]
	return style, ok
}

func (r *styleRegistry) Len() int {
	return len(r.styles)
}

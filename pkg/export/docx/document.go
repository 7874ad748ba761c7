package docx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	godocx "github.com/fumiama/go-docx"
	"github.com/rs/zerolog"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// Exporter renders the report model into a .docx document. One exporter can
// serve many runs; the document itself lives only inside Export.
type Exporter struct {
	styles *styleRegistry
}

func NewExporter() *Exporter {
	e := &Exporter{styles: newStyleRegistry()}
	e.registerDefaultStyles()
	return e
}

// registerDefaultStyles installs the fixed style set. Safe to call more than
// once; the registry keeps the first definition of each name.
func (e *Exporter) registerDefaultStyles() {
	e.styles.Register(StyleHeading1, RunStyle{Font: "黑体", SizePt: 16, Color: "00008B", Bold: true})
	e.styles.Register(StyleHeading2, RunStyle{Font: "黑体", SizePt: 13, Color: "000064", Bold: true})
	e.styles.Register(StyleBodyText, RunStyle{Font: "宋体", SizePt: 10.5})
	e.styles.Register(StyleEmphasis, RunStyle{Font: "楷体", SizePt: 10.5, Color: "B22222", Italic: true})
}

// Export assembles the document from the report model and saves it under
// dir, returning the written file path.
func (e *Exporter) Export(ctx context.Context, report *domain.WeeklyReport, dir string) (string, error) {
	doc := godocx.New().WithDefaultTheme()

	for _, section := range report.Sections {
		e.addHeading(doc, section.Heading, section.Level)
		for _, block := range section.Blocks {
			switch block.Kind {
			case domain.BlockNarrative:
				e.addNarrative(doc, block.Text)
			case domain.BlockText:
				e.addBody(doc, block.Text)
			case domain.BlockTable:
				e.addTable(doc, block.Table)
			case domain.BlockImage:
				e.addImage(ctx, doc, block.Image)
			}
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	filename := fmt.Sprintf("%s_%s至%s安全运维周报.docx",
		report.Project,
		report.Period.StartDate.Format("2006-01-02"),
		report.Period.EndDate.Format("2006-01-02"))
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create document file: %w", err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Msg("document saved")
	return path, nil
}

func (e *Exporter) addHeading(doc *godocx.Docx, text string, level int) {
	styleName := StyleHeading1
	if level > 1 {
		styleName = StyleHeading2
	}
	p := doc.AddParagraph()
	e.styledText(p, text, styleName)
}

// addNarrative writes one paragraph with a styled run per markup segment.
func (e *Exporter) addNarrative(doc *godocx.Docx, text string) {
	p := doc.AddParagraph()
	for _, run := range splitRuns(text) {
		styleName := StyleBodyText
		if run.Emphasis {
			styleName = StyleEmphasis
		}
		e.styledText(p, run.Text, styleName)
	}
}

func (e *Exporter) addBody(doc *godocx.Docx, text string) {
	p := doc.AddParagraph()
	e.styledText(p, text, StyleBodyText)
}

func (e *Exporter) addTable(doc *godocx.Docx, result *domain.QueryResult) {
	if result.Empty() {
		e.addBody(doc, "暂无数据。")
		return
	}

	table := doc.AddTable(len(result.Rows)+1, len(result.Columns), 0, nil)
	for i, col := range result.Columns {
		cell := table.TableRows[0].TableCells[i]
		e.styledText(cell.AddParagraph(), col, StyleBodyText)
	}
	for i, row := range result.Rows {
		for j := range result.Columns {
			var value any
			if j < len(row) {
				value = row[j]
			}
			cell := table.TableRows[i+1].TableCells[j]
			e.styledText(cell.AddParagraph(), cellText(value), StyleBodyText)
		}
	}
}

// addImage embeds the chart centered in its own paragraph and removes the
// transient file afterwards. A broken image costs a sentence, not the run.
func (e *Exporter) addImage(ctx context.Context, doc *godocx.Docx, path string) {
	logger := zerolog.Ctx(ctx)

	p := doc.AddParagraph().Justification("center")
	if _, err := p.AddInlineDrawingFrom(path); err != nil {
		logger.Error().Err(err).Str("image", path).Msg("embed chart failed")
		e.addBody(doc, fmt.Sprintf("图表生成失败: %v", err))
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Debug().Err(err).Str("image", path).Msg("chart cleanup failed")
	}
}

// styledText appends one run carrying the named style's formatting.
func (e *Exporter) styledText(p *godocx.Paragraph, text, styleName string) {
	run := p.AddText(text)
	style, ok := e.styles.Get(styleName)
	if !ok {
		return
	}
	if style.SizePt > 0 {
		// Run sizes are given in half-points.
		run.Size(strconv.Itoa(int(style.SizePt * 2)))
	}
	if style.Color != "" {
		run.Color(style.Color)
	}
	if style.Bold {
		run.Bold()
	}
	if style.Italic {
		run.Italic()
	}
	if style.Font != "" {
		run.Font(style.Font, style.Font, style.Font, "eastAsia")
	}
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", t)
	}
}

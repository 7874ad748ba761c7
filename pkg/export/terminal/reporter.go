package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/olekukonko/tablewriter"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// Reporter prints the report model as plain text. Preview mode uses it to
// inspect a run without producing a document or touching the remote store.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const headerTmpl = `{{.Project}} 安全运维周报 ({{.Period.StartDate.Format "2006-01-02"}} 至 {{.Period.EndDate.Format "2006-01-02"}})
生成时间: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
报告审核人: {{.Owner}}
`

func (r *Reporter) Handle(report *domain.WeeklyReport) error {
	t, err := template.New("header").Parse(headerTmpl)
	if err != nil {
		return fmt.Errorf("parse header template: %w", err)
	}
	if err := t.Execute(r.writer, report); err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	for _, section := range report.Sections {
		fmt.Fprintf(r.writer, "\n%s\n", section.Heading)
		for _, block := range section.Blocks {
			switch block.Kind {
			case domain.BlockNarrative:
				fmt.Fprintln(r.writer, stripEmphasis(block.Text))
			case domain.BlockText:
				fmt.Fprintln(r.writer, block.Text)
			case domain.BlockTable:
				r.renderTable(block.Table)
			case domain.BlockImage:
				fmt.Fprintf(r.writer, "[图表: %s]\n", block.Image)
			}
		}
	}
	return nil
}

func (r *Reporter) renderTable(result *domain.QueryResult) {
	if result.Empty() {
		fmt.Fprintln(r.writer, "暂无数据。")
		return
	}
	table := tablewriter.NewWriter(r.writer)
	table.SetHeader(result.Columns)
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		table.Append(cells)
	}
	table.Render()
}

// stripEmphasis drops the markup; a terminal has no emphasis style to apply.
func stripEmphasis(text string) string {
	return strings.ReplaceAll(text, domain.EmphasisMarker, "")
}

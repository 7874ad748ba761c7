package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// InterceptRate formats blocked/(blocked+unblocked) as a percentage with two
// decimals. With nothing missed the rate is defined as exactly 100.00.
func InterceptRate(blocked, unblocked int64) string {
	if unblocked == 0 {
		return "100.00"
	}
	total := blocked + unblocked
	return fmt.Sprintf("%.2f", float64(blocked)/float64(total)*100)
}

// em wraps a computed value in emphasis markers so exporters render it with
// the emphasis style.
func em(value string) string {
	return domain.EmphasisMarker + value + domain.EmphasisMarker
}

// count renders a numeric query value with thousands separators.
func count(v any) string {
	return humanize.Comma(toInt64(v))
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// rowMap pairs one row with its column names for keyed access.
func rowMap(columns []string, row []any) map[string]any {
	m := make(map[string]any, len(columns))
	for i, col := range columns {
		if i < len(row) {
			m[col] = row[i]
		}
	}
	return m
}

// withRows keeps the columns of a result but swaps in transformed rows.
func withRows(result *domain.QueryResult, rows [][]any) *domain.QueryResult {
	return &domain.QueryResult{Columns: result.Columns, Rows: rows}
}

func textBlock(text string) domain.Block {
	return domain.Block{Kind: domain.BlockText, Text: text}
}

func narrativeBlock(text string) domain.Block {
	return domain.Block{Kind: domain.BlockNarrative, Text: text}
}

func tableBlock(result *domain.QueryResult) domain.Block {
	return domain.Block{Kind: domain.BlockTable, Table: result}
}

func imageBlock(path string) domain.Block {
	return domain.Block{Kind: domain.BlockImage, Image: path}
}

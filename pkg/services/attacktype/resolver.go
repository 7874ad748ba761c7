package attacktype

import "fmt"

// UnknownLabel is the fallback for codes missing from the dictionary.
const UnknownLabel = "未知攻击类型"

// Resolver maps numeric attack-type codes to display labels using the
// dictionary loaded at startup. Dictionary keys follow the attack.type.<n>
// convention; negative codes denote special categories such as blacklist
// blocks.
type Resolver struct {
	labels map[string]string
}

func NewResolver(labels map[string]string) *Resolver {
	return &Resolver{labels: labels}
}

// Name resolves one code. Codes arrive as whatever the driver produced
// (int64, string, ...), so the lookup key is built from the printed value.
func (r *Resolver) Name(code any) string {
	if label, ok := r.labels[fmt.Sprintf("attack.type.%v", code)]; ok {
		return label
	}
	return UnknownLabel
}

// ResolveColumn returns a new row set with the given column replaced by its
// resolved label. The input rows are left untouched.
func (r *Resolver) ResolveColumn(rows [][]any, idx int) [][]any {
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		resolved := make([]any, len(row))
		copy(resolved, row)
		if idx >= 0 && idx < len(resolved) {
			resolved[idx] = r.Name(resolved[idx])
		}
		out = append(out, resolved)
	}
	return out
}

// SPDX-License-Identifier: MIT

package vote

import (
	"fmt"
	"strings"
)

// Table is an aggregated result: one column of totals per method.
type Table struct {
	Candidates []string
	Methods    []string
	Totals     [][]float64 // Totals[m][c]
}

// Tabulate runs every method on scores.
func Tabulate(candidates []string, scores [][]float64, methods ...Method) (*Table, error) {
	if len(methods) == 0 {
		methods = Methods()
	}
	t := &Table{Candidates: candidates}
	for _, m := range methods {
		out, err := m.Aggregate(scores)
		if err != nil {
			return nil, fmt.Errorf("vote: %s: %w", m.Name(), err)
		}
		if len(out.Totals) != len(candidates) {
			return nil, fmt.Errorf("vote: %d candidates named, %d scored: %w", len(candidates), len(out.Totals), ErrRagged)
		}
		t.Methods = append(t.Methods, m.Name())
		t.Totals = append(t.Totals, out.Totals)
	}

	return t, nil
}

// Latex renders t as a tabular environment, candidates as rows.
//
//	\begin{tabular}{l|rrr}
//	Element & Majority & Borda & Range \\
//	\hline
//	Earth & 1.00 & 14.00 & 2.03 \\
//	\end{tabular}
func (t *Table) Latex() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\begin{tabular}{l|%s}\n", strings.Repeat("r", len(t.Methods)))
	sb.WriteString("Element")
	for _, m := range t.Methods {
		sb.WriteString(" & ")
		sb.WriteString(m)
	}
	sb.WriteString(" \\\\\n\\hline\n")
	for c, name := range t.Candidates {
		sb.WriteString(escape(name))
		for m := range t.Methods {
			fmt.Fprintf(&sb, " & %.2f", t.Totals[m][c])
		}
		sb.WriteString(" \\\\\n")
	}
	sb.WriteString("\\end{tabular}\n")

	return sb.String()
}

var latexEscaper = strings.NewReplacer(`&`, `\&`, `%`, `\%`, `_`, `\_`, `#`, `\#`)

func escape(s string) string { return latexEscaper.Replace(s) }

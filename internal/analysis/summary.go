// Package analysis renders loaded tables into bounded prompt context and
// submits them to a completion provider for insight.
package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/observon/sheetsight/internal/xlsx"
)

const (
	// headRows is the number of sample rows included in a summary.
	headRows = 5

	// charBudget bounds the rendered summary so it fits downstream model
	// context limits.
	charBudget = 6000
)

// columnProfile holds the inferred type and numeric statistics of one column.
type columnProfile struct {
	name  string
	kind  string // "numeric" or "text"
	count int
	min   float64
	max   float64
	mean  float64
	std   float64
}

// Summarize renders a table into a deterministic, bounded textual summary:
// shape, column names with inferred types, head rows, and descriptive
// statistics for numeric columns. When the rendering exceeds the character
// budget, trailing sample rows are dropped first, then the statistics block.
// Column names are always kept.
func Summarize(t *xlsx.Table) string {
	profiles := profileColumns(t)

	samples := headRows
	if len(t.Rows) < samples {
		samples = len(t.Rows)
	}

	for n := samples; n >= 0; n-- {
		s := render(t, profiles, n, true)
		if len(s) <= charBudget {
			return s
		}
	}
	for n := samples; n >= 0; n-- {
		s := render(t, profiles, n, false)
		if len(s) <= charBudget {
			return s
		}
	}

	// Even the minimal rendering is over budget; the column names stay.
	return render(t, profiles, 0, false)
}

func render(t *xlsx.Table, profiles []columnProfile, sampleRows int, withStats bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sheet: %s\n", t.SheetName)
	fmt.Fprintf(&b, "%d rows × %d columns\n\n", len(t.Rows), len(t.Columns))

	b.WriteString("Columns:\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "  - %s (%s)\n", p.name, p.kind)
	}

	if sampleRows > 0 {
		fmt.Fprintf(&b, "\nFirst %d rows:\n", sampleRows)
		b.WriteString("  " + strings.Join(t.Columns, " | ") + "\n")
		for _, row := range t.Rows[:sampleRows] {
			b.WriteString("  " + strings.Join(row, " | ") + "\n")
		}
	}

	if withStats {
		var stats []string
		for _, p := range profiles {
			if p.kind != "numeric" || p.count == 0 {
				continue
			}
			stats = append(stats, fmt.Sprintf("  %s: count=%d min=%s max=%s mean=%s stddev=%s",
				p.name, p.count, trimFloat(p.min), trimFloat(p.max), trimFloat(p.mean), trimFloat(p.std)))
		}
		if len(stats) > 0 {
			b.WriteString("\nNumeric statistics:\n")
			b.WriteString(strings.Join(stats, "\n"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// profileColumns infers a type per column and accumulates numeric statistics
// with Welford's method.
func profileColumns(t *xlsx.Table) []columnProfile {
	profiles := make([]columnProfile, len(t.Columns))

	for i, name := range t.Columns {
		p := columnProfile{name: name, kind: "text", min: math.Inf(1), max: math.Inf(-1)}

		var n int
		var mean, m2 float64
		numeric := true
		nonEmpty := 0

		for _, row := range t.Rows {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			nonEmpty++
			v, err := parseNumber(cell)
			if err != nil {
				numeric = false
				break
			}
			n++
			delta := v - mean
			mean += delta / float64(n)
			m2 += delta * (v - mean)
			if v < p.min {
				p.min = v
			}
			if v > p.max {
				p.max = v
			}
		}

		if numeric && nonEmpty > 0 {
			p.kind = "numeric"
			p.count = n
			p.mean = mean
			if n > 1 {
				p.std = math.Sqrt(m2 / float64(n-1))
			}
		}
		profiles[i] = p
	}

	return profiles
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	return strconv.ParseFloat(s, 64)
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

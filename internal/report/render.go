// Package report renders per-category aggregates as a human-readable report
// with tables, text bar charts, and a short closing narrative.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

const chartWidth = 50

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Renderer writes the report to a single destination.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the complete report: a health-impact section, an
// economic-impact section, and a closing narrative. totalRecords is the size
// of the in-scope record set the aggregates were computed from.
func (r *Renderer) Render(rows []domain.AggregateRow, totalRecords int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(r.w, "No in-scope records; nothing to report.")
		return err
	}

	fmt.Fprintln(r.w, titleStyle.Render("Storm Impact Report"))
	fmt.Fprintf(r.w, "US storm events grouped into %d weather categories across %d in-scope records.\n\n", len(rows), totalRecords)

	r.renderHealth(rows)
	r.renderEconomic(rows)
	r.renderNarrative(rows)
	return nil
}

// renderHealth writes the casualty table and chart, worst category first.
func (r *Renderer) renderHealth(rows []domain.AggregateRow) {
	byCasualties := make([]domain.AggregateRow, len(rows))
	copy(byCasualties, rows)
	sort.Slice(byCasualties, func(i, j int) bool {
		ci := byCasualties[i].Fatalities + byCasualties[i].Injuries
		cj := byCasualties[j].Fatalities + byCasualties[j].Injuries
		if ci != cj {
			return ci > cj
		}
		return byCasualties[i].Category < byCasualties[j].Category
	})

	fmt.Fprintln(r.w, headingStyle.Render("Health impact"))

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Events", "Fatalities", "Injuries", "Casualty rate"})
	for _, row := range byCasualties {
		t.AppendRow(table.Row{
			string(row.Category),
			row.RecordCount,
			row.Fatalities,
			row.Injuries,
			fmt.Sprintf("%.2f", row.CasualtyRate),
		})
	}
	t.Render()

	fmt.Fprintln(r.w)
	labels := make([]string, len(byCasualties))
	values := make([]float64, len(byCasualties))
	for i, row := range byCasualties {
		labels[i] = string(row.Category)
		values[i] = float64(row.Fatalities + row.Injuries)
	}
	r.renderBars(labels, values, formatCount)
	fmt.Fprintln(r.w)
}

// renderEconomic writes the damage table and chart, costliest category first.
// The input is already sorted by total cost.
func (r *Renderer) renderEconomic(rows []domain.AggregateRow) {
	fmt.Fprintln(r.w, headingStyle.Render("Economic impact"))

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Events", "Property damage", "Crop damage", "Total cost"})
	for _, row := range rows {
		t.AppendRow(table.Row{
			string(row.Category),
			row.RecordCount,
			formatUSD(row.PropDamageUSD),
			formatUSD(row.CropDamageUSD),
			formatUSD(row.TotalCostUSD),
		})
	}
	t.Render()

	fmt.Fprintln(r.w)
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = string(row.Category)
		values[i] = row.TotalCostUSD
	}
	r.renderBars(labels, values, formatUSD)
	fmt.Fprintln(r.w)
}

// renderNarrative writes the closing interpretation.
func (r *Renderer) renderNarrative(rows []domain.AggregateRow) {
	worstHealth := rows[0]
	for _, row := range rows[1:] {
		if row.Fatalities+row.Injuries > worstHealth.Fatalities+worstHealth.Injuries {
			worstHealth = row
		}
	}
	costliest := rows[0] // input is cost-sorted

	fmt.Fprintln(r.w, headingStyle.Render("Summary"))
	fmt.Fprintf(r.w,
		"%s events are the most harmful to population health, with %s fatalities and %s injuries recorded. "+
			"%s events carry the greatest economic cost at %s in combined property and crop damage. "+
			"Casualty rates are per-event averages scaled by 100 and are meaningful only relative to each other.\n",
		strings.ToUpper(string(worstHealth.Category)),
		formatCount(float64(worstHealth.Fatalities)),
		formatCount(float64(worstHealth.Injuries)),
		strings.ToUpper(string(costliest.Category)),
		formatUSD(costliest.TotalCostUSD),
	)
}

// renderBars writes one horizontal text bar per label, scaled to the largest
// value. Zero-valued rows get an empty bar rather than being dropped.
func (r *Renderer) renderBars(labels []string, values []float64, format func(float64) string) {
	var maxValue float64
	labelWidth := 0
	for i, v := range values {
		if v > maxValue {
			maxValue = v
		}
		if len(labels[i]) > labelWidth {
			labelWidth = len(labels[i])
		}
	}

	for i, label := range labels {
		barLen := 0
		if maxValue > 0 {
			barLen = int(values[i] / maxValue * chartWidth)
		}
		fmt.Fprintf(r.w, "%-*s %s %s\n", labelWidth, label, strings.Repeat("█", barLen), format(values[i]))
	}
}

// formatUSD renders a dollar amount with a scale suffix: $52.1B, $3.4M, $970.
func formatUSD(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// formatCount renders an event/person count with thousands separators.
func formatCount(v float64) string {
	n := int64(v)
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	var parts []string
	for n > 0 {
		if n >= 1000 {
			parts = append([]string{fmt.Sprintf("%03d", n%1000)}, parts...)
		} else {
			parts = append([]string{fmt.Sprintf("%d", n)}, parts...)
		}
		n /= 1000
	}
	return strings.Join(parts, ",")
}

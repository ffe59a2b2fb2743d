package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Report writes human-readable plan sections to a writer.
type Report struct {
	w      io.Writer
	styles *Styles
}

// New creates a report. Styling is enabled only when w is a terminal.
func New(w io.Writer) *Report {
	styles := PlainStyles()
	if IsTerminal(w) {
		styles = NewStyles(nil)
	}
	return &Report{w: w, styles: styles}
}

// NewWithStyles creates a report with explicit styles.
func NewWithStyles(w io.Writer, styles *Styles) *Report {
	if styles == nil {
		styles = PlainStyles()
	}
	return &Report{w: w, styles: styles}
}

// Title writes a section header.
func (r *Report) Title(title string) {
	fmt.Fprintln(r.w, r.styles.Title.Render(title))
	fmt.Fprintln(r.w, r.styles.Muted.Render(strings.Repeat("=", lipgloss.Width(title))))
}

// Subtitle writes a sub-section header.
func (r *Report) Subtitle(title string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Subtitle.Render(title))
}

// Line writes one plain line.
func (r *Report) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Warning writes a highlighted warning line.
func (r *Report) Warning(format string, args ...any) {
	fmt.Fprintln(r.w, r.styles.Warning.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Error writes a highlighted error line.
func (r *Report) Error(format string, args ...any) {
	fmt.Fprintln(r.w, r.styles.Error.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Libraries writes one table row per computed library. Flagged rows are
// highlighted and their messages listed.
func (r *Report) Libraries(rows []domain.ComputedLibrary) {
	if len(rows) == 0 {
		r.Line("No libraries.")
		return
	}

	withPool, withReads := false, false
	for i := range rows {
		withPool = withPool || rows[i].PoolID != ""
		withReads = withReads || rows[i].ExpectedReadsM != nil
	}

	headers := []string{"Project", "Library"}
	if withPool {
		headers = append(headers, "Pool")
	}
	headers = append(headers, "nM", "Stock µl", "Dilute", "Final µl", "Fraction")
	if withReads {
		headers = append(headers, "Reads (M)")
	}
	headers = append(headers, "Flags")

	flagged := make(map[int]bool)
	data := make([][]string, len(rows))
	for i := range rows {
		c := &rows[i]
		row := []string{c.ProjectID, c.Name}
		if withPool {
			row = append(row, c.PoolID)
		}
		row = append(row,
			fmt.Sprintf("%.2f", c.EffectiveNM),
			fmt.Sprintf("%.3f", c.StockVolumeUL),
			dilution(c.PreDiluteFactor),
			fmt.Sprintf("%.3f", c.FinalVolumeUL),
			percent(c.PoolFraction),
		)
		if withReads {
			row = append(row, optional(c.ExpectedReadsM))
		}
		row = append(row, flagKinds(c.Flags))
		data[i] = row
		flagged[i] = c.Flagged()
	}

	r.table(headers, data, flagged)

	for i := range rows {
		if rows[i].Flagged() {
			r.Warning("%s: %s", rows[i].Name, domain.JoinFlags(rows[i].Flags))
		}
	}
}

// Projects writes per-project totals.
func (r *Report) Projects(summaries []domain.ProjectSummary) {
	withReads := false
	for _, p := range summaries {
		withReads = withReads || p.ExpectedReadsM != nil
	}

	headers := []string{"Project", "Libraries", "Stock µl", "Fraction"}
	if withReads {
		headers = append(headers, "Reads (M)")
	}
	data := make([][]string, len(summaries))
	for i, p := range summaries {
		row := []string{p.ProjectID, fmt.Sprintf("%d", p.LibraryCount), fmt.Sprintf("%.3f", p.TotalVolumeUL), percent(p.PoolFraction)}
		if withReads {
			row = append(row, optional(p.ExpectedReadsM))
		}
		data[i] = row
	}
	r.table(headers, data, nil)
}

// Summary writes the totals of one engine run.
func (r *Report) Summary(s domain.PoolSummary) {
	r.Line("Libraries:          %d", s.Libraries)
	r.Line("Total stock volume: %.3f µl", s.TotalStockUL)
	r.Line("Total final volume: %.3f µl", s.TotalFinalUL)
	r.Line("Pre-dilutions:      %d", s.PreDilutionCount)
	if s.FlaggedCount > 0 {
		r.Warning("%d librar%s flagged", s.FlaggedCount, plural(s.FlaggedCount, "y", "ies"))
	} else {
		fmt.Fprintln(r.w, r.styles.Success.Render("No flagged libraries"))
	}
}

// SubPools writes the sub-pool table of a hierarchical plan.
func (r *Report) SubPools(pools []domain.SubPool) {
	data := make([][]string, len(pools))
	for i, sp := range pools {
		data[i] = []string{
			sp.ID,
			sp.ParentProjectID,
			fmt.Sprintf("%d", len(sp.Members)),
			fmt.Sprintf("%.2f", sp.CalculatedNM),
			fmt.Sprintf("%.3f", sp.TotalVolumeUL),
			fmt.Sprintf("%g", sp.TargetReadsM),
		}
	}
	r.table([]string{"Sub-pool", "Project", "Members", "nM", "Volume µl", "Target (M)"}, data, nil)
}

// PrePools writes the summary table of a pre-pooling plan.
func (r *Report) PrePools(results []domain.PrePoolResult) {
	data := make([][]string, len(results))
	for i, pp := range results {
		data[i] = []string{
			pp.Definition.ID,
			pp.Definition.Name,
			strings.Join(pp.Definition.Members, ", "),
			fmt.Sprintf("%.2f", pp.CalculatedNM),
			fmt.Sprintf("%.3f", pp.TotalVolumeUL),
			fmt.Sprintf("%g", pp.TargetReadsM),
		}
	}
	r.table([]string{"Pre-pool", "Name", "Members", "nM", "Volume µl", "Target (M)"}, data, nil)
}

// Strategy writes a strategy recommendation.
func (r *Report) Strategy(rec domain.StrategyRecommendation) {
	r.Line("Strategy:  %s", rec.Strategy.Description())
	r.Line("Libraries: %d (max %d per pool)", rec.TotalLibraries, rec.MaxPerPool)
	r.Line("Reason:    %s", rec.Reason)

	if len(rec.GroupCounts) > 0 {
		cols := make([]string, 0, len(rec.GroupCounts))
		for col := range rec.GroupCounts {
			cols = append(cols, string(col))
		}
		sort.Strings(cols)

		data := make([][]string, len(cols))
		for i, col := range cols {
			g := domain.GroupingColumn(col)
			viable := "no"
			if rec.Viable[g] {
				viable = "yes"
			}
			data[i] = []string{col, fmt.Sprintf("%d", rec.GroupCounts[g]), viable}
		}
		r.table([]string{"Column", "Groups", "Viable"}, data, nil)
	}
	if rec.Warning != "" {
		r.Warning("%s", rec.Warning)
	}
}

// Validation writes the errors and warnings of a sample-sheet check.
func (r *Report) Validation(result *domain.ValidationResult) {
	for _, e := range result.Errors {
		r.Error("%s", e)
	}
	for _, w := range result.Warnings {
		r.Warning("%s", w)
	}
	if result.IsValid() {
		fmt.Fprintln(r.w, r.styles.Success.Render(fmt.Sprintf("Sample sheet is valid (%d warning%s)",
			len(result.Warnings), plural(len(result.Warnings), "", "s"))))
	}
}

// KeyValues writes aligned key = value pairs in the given order.
func (r *Report) KeyValues(keys []string, values map[string]string) {
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		v := values[k]
		if v == "" {
			v = r.styles.Muted.Render("(not set)")
		}
		r.Line("  %-*s = %s", width, k, v)
	}
}

func (r *Report) table(headers []string, rows [][]string, highlight map[int]bool) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.styles.Header
			case highlight[row]:
				return r.styles.Flagged
			default:
				return r.styles.Cell
			}
		})
	fmt.Fprintln(r.w, t.Render())
}

func dilution(factor int) string {
	if factor <= 1 {
		return "-"
	}
	return fmt.Sprintf("%dx", factor)
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// flagKinds abbreviates flags for the table; full messages follow it.
func flagKinds(flags []domain.Flag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = f.Kind.String()
	}
	return strings.Join(parts, ",")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

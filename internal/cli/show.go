package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/model"
)

// MonthSummary is one dashboard row.
type MonthSummary struct {
	Month          string `json:"month"`
	Theme          string `json:"theme"`
	AlignmentScore int    `json:"alignmentScore"`
	AlignmentLabel string `json:"alignmentLabel"`
	Progress       string `json:"progress"`
}

// DashboardResult is the JSON payload of show without a month.
type DashboardResult struct {
	Title      string         `json:"title"`
	ThemeLine  string         `json:"themeLine"`
	HasProfile bool           `json:"hasProfile"`
	Months     []MonthSummary `json:"months"`
}

// MonthResult is the JSON payload of show <month>.
type MonthResult struct {
	Month          string            `json:"month"`
	Record         model.MonthRecord `json:"record"`
	AlignmentLabel string            `json:"alignmentLabel"`
	WheelAverage   float64           `json:"wheelAverage"`
	Progress       string            `json:"progress"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [month]",
		Short: "Show the dashboard or one month",
		Long: `Without arguments, show the year dashboard: one row per month with its
theme, alignment score and progress. With a month name, show that month's
page in full.

Examples:
  meworkbook show
  meworkbook show march`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				if len(args) == 1 {
					return showMonth(s, f, args[0])
				}
				return showDashboard(s, f)
			})
		},
	}
}

func showDashboard(s *session, f *OutputFormatter) error {
	snap := s.ctl.Snapshot()
	result := DashboardResult{
		Title:      snap.Workbook.Title,
		ThemeLine:  snap.Workbook.ThemeLine,
		HasProfile: snap.Profile != nil,
		Months:     make([]MonthSummary, 0, model.MonthCount),
	}
	for _, m := range model.Months() {
		rec := snap.Workbook.Months[m]
		result.Months = append(result.Months, MonthSummary{
			Month:          m.String(),
			Theme:          rec.Theme,
			AlignmentScore: rec.AlignmentScore,
			AlignmentLabel: model.AlignmentLabel(rec.AlignmentScore),
			Progress:       rec.ProgressSummary(),
		})
	}

	return f.Result(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Title)
		if result.ThemeLine != "" {
			fmt.Fprintln(w, result.ThemeLine)
		}
		fmt.Fprintln(w)
		for _, row := range result.Months {
			fmt.Fprintf(w, "%-10s %-40s %3d  %-18s %s\n",
				row.Month, row.Theme, row.AlignmentScore, row.AlignmentLabel, row.Progress)
		}
	})
}

func showMonth(s *session, f *OutputFormatter, name string) error {
	rec, err := s.ctl.Month(name)
	if err != nil {
		return err
	}
	m, _ := model.ParseMonth(name)
	result := MonthResult{
		Month:          m.String(),
		Record:         rec,
		AlignmentLabel: model.AlignmentLabel(rec.AlignmentScore),
		WheelAverage:   rec.IdentityWheel.Average(),
		Progress:       rec.ProgressSummary(),
	}

	return f.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %s\n\n", result.Month, rec.Theme)
		writeSection(w, "Reflection", rec.Reflection)
		writeSection(w, "Expression", rec.Expression)
		writeSection(w, "Relationships", rec.Relationships)

		fmt.Fprintf(w, "Alignment: %d (%s)\n\n", rec.AlignmentScore, result.AlignmentLabel)

		fmt.Fprintln(w, "Decision:")
		fmt.Fprintf(w, "  prompt:         %s\n", rec.Decision.Prompt)
		fmt.Fprintf(w, "  fear:           %s\n", rec.Decision.Fear)
		fmt.Fprintf(w, "  costOfInaction: %s\n", rec.Decision.CostOfInaction)
		fmt.Fprintf(w, "  alignedAction:  %s\n", rec.Decision.AlignedAction)
		fmt.Fprintf(w, "  smallestStep:   %s\n\n", rec.Decision.SmallestStep)

		fmt.Fprintf(w, "Identity wheel (avg %.1f):\n", result.WheelAverage)
		for _, d := range model.WheelDimensions() {
			fmt.Fprintf(w, "  %-22s %2d\n", d.Label(), rec.IdentityWheel[d])
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Weekly check-ins:")
		for _, k := range model.WeekKeys() {
			fmt.Fprintf(w, "  %s: %s\n", k, oneLine(rec.WeeklyLogs[k]))
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "Daily logs (%d):\n", len(rec.DailyLogs))
		dates := make([]string, 0, len(rec.DailyLogs))
		for d := range rec.DailyLogs {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			fmt.Fprintf(w, "  %s: %s\n", d, oneLine(rec.DailyLogs[d]))
		}
		fmt.Fprintf(w, "\nProgress: %s\n", result.Progress)
	})
}

func writeSection(w io.Writer, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(w, "%s:\n  %s\n\n", label, strings.ReplaceAll(text, "\n", "\n  "))
}

func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " / ")
}

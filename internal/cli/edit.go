package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/workbook"
)

// EditResult is the JSON payload of the editing commands.
type EditResult struct {
	Month string `json:"month,omitempty"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// readValue returns arg, or all of stdin when arg is "-".
func readValue(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", codedError(ExitFailure, ErrCodeGeneric, "failed to read stdin", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func outputEdit(s *session, f *OutputFormatter, result EditResult) error {
	if err := s.commit(); err != nil {
		return err
	}
	return f.Result(result, func(w io.Writer) {
		target := result.Field
		if result.Month != "" {
			target = result.Month + " " + target
		}
		fmt.Fprintf(w, "✓ Saved %s\n", target)
	})
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <month> <field> <value>",
		Short: "Set a field on a month page",
		Long: `Set one field on a month page. Fields:

  theme, reflection, expression, relationships
  alignmentScore                 0-100, clamped
  decision.<prompt|fear|costOfInaction|alignedAction|smallestStep>
  identityWheel.<dimension>      0-10, clamped

Pass "-" as the value to read it from stdin.

Examples:
  meworkbook set march alignmentScore 72
  meworkbook set march decision.fear "Being seen"
  meworkbook set march reflection - < notes.txt`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				value, err := readValue(cmd, args[2])
				if err != nil {
					return err
				}
				if err := s.ctl.EditMonthField(args[0], args[1], value); err != nil {
					return err
				}
				return outputEdit(s, f, EditResult{Month: canonicalMonth(args[0]), Field: args[1], Value: value})
			})
		},
	}
}

// NewDailyCommand creates the daily command.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daily <month> <date> <text>",
		Short: "Write the daily log for a date",
		Long: `Write the daily log for a date in that month of the workbook year.
An empty text removes the entry. Pass "-" to read the text from stdin.

Example:
  meworkbook daily march 2026-03-04 "Said no to the extra project."`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				text, err := readValue(cmd, args[2])
				if err != nil {
					return err
				}
				if err := s.ctl.UpsertDailyLog(args[0], args[1], text); err != nil {
					return err
				}
				return outputEdit(s, f, EditResult{Month: canonicalMonth(args[0]), Field: "dailyLogs." + args[1], Value: text})
			})
		},
	}
}

// NewWeeklyCommand creates the weekly command.
func NewWeeklyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly <month> <week> <text>",
		Short: "Write a weekly check-in",
		Long: `Write the check-in for week1 through week5 of a month.
Pass "-" to read the text from stdin.

Example:
  meworkbook weekly march week2 "Kept the morning pages going."`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				text, err := readValue(cmd, args[2])
				if err != nil {
					return err
				}
				if err := s.ctl.UpsertWeeklyLog(args[0], args[1], text); err != nil {
					return err
				}
				return outputEdit(s, f, EditResult{Month: canonicalMonth(args[0]), Field: "weeklyLogs." + args[1], Value: text})
			})
		},
	}
}

// NewYearEndCommand creates the year-end command.
func NewYearEndCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "year-end [field value]",
		Short: "Show or edit the year-end reflection",
		Long: `Without arguments, show the year-end pages. With a field and a value,
set that page. Fields: ` + strings.Join(workbook.YearEndFields(), ", ") + `.
Pass "-" as the value to read it from stdin.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				if len(args) == 2 {
					value, err := readValue(cmd, args[1])
					if err != nil {
						return err
					}
					if err := s.ctl.EditYearEnd(args[0], value); err != nil {
						return err
					}
					return outputEdit(s, f, EditResult{Field: "yearEnd." + args[0], Value: value})
				}
				ye := s.ctl.Snapshot().Workbook.YearEnd
				return f.Result(ye, func(w io.Writer) {
					values := []string{
						ye.StayedTrue, ye.Shifted, ye.DecisionsThatMattered,
						ye.IdentitySnapshot, ye.LetterToPastSelf, ye.LetterToFutureSelf,
					}
					for i, name := range workbook.YearEndFields() {
						fmt.Fprintf(w, "%s:\n  %s\n\n", name, strings.ReplaceAll(values[i], "\n", "\n  "))
					}
				})
			})
		},
	}
}

// NavOptions holds flags for the nav command.
type NavOptions struct {
	*RootOptions
	Date string
	Week string
}

// NewNavCommand creates the nav command.
func NewNavCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NavOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "nav <view> [month]",
		Short: "Record the current view and month",
		Long: `Record where you are in the workbook: home, dashboard, month or yearEnd,
and optionally the current month. Views other than home need a profile.
With a month, --date and --week move that month's daily and weekly cursors.

Examples:
  meworkbook nav dashboard
  meworkbook nav month april --date 2026-04-10 --week week2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := ""
			if len(args) == 2 {
				month = args[1]
			}
			if month == "" && (opts.Date != "" || opts.Week != "") {
				return newFormatter(rootOpts, cmd).Fail(usageError("--date and --week need a month argument"))
			}
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				if err := s.ctl.Navigate(args[0], month); err != nil {
					return err
				}
				if opts.Date != "" || opts.Week != "" {
					if err := s.ctl.SetCursor(month, opts.Date, opts.Week); err != nil {
						return err
					}
				}
				if err := s.commit(); err != nil {
					return err
				}
				ui := s.ctl.UI()
				return f.Result(ui, func(w io.Writer) {
					fmt.Fprintf(w, "View: %s, month: %s\n", ui.CurrentView, ui.CurrentMonth)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "daily cursor date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Week, "week", "", "weekly cursor (week1..week5)")
	return cmd
}

// canonicalMonth returns the display name of a month argument, or the
// argument itself when it does not parse.
func canonicalMonth(name string) string {
	m, err := model.ParseMonth(name)
	if err != nil {
		return name
	}
	return m.String()
}

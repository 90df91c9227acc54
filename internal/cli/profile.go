package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/model"
)

// ProfileOptions holds flags for the init and profile commands.
type ProfileOptions struct {
	*RootOptions
	Name       string
	Birthdate  string
	Birthplace string
}

// ProfileResult is the JSON payload of init and profile.
type ProfileResult struct {
	Profile   *model.Profile        `json:"profile"`
	Title     string                `json:"title"`
	ThemeLine string                `json:"themeLine"`
	Insights  model.DerivedInsights `json:"insights"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create your profile and generate the year's theme",
		Long: `Create the workbook profile. Name and birthdate are required.

The birthdate drives the derived insights (life path, birthday number,
personal year, sun sign, Chinese zodiac) and the generated title, theme
line and month themes. Month themes you already changed are kept.

Example:
  meworkbook init --name "Ada" --birthdate 1990-03-15 --birthplace Lagos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				if err := s.ctl.CreateProfile(opts.Name, opts.Birthdate, opts.Birthplace); err != nil {
					return err
				}
				if err := s.commit(); err != nil {
					return err
				}
				return outputProfile(s, f)
			})
		},
	}

	addProfileFlags(cmd, opts)
	return cmd
}

// NewProfileCommand creates the profile command.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile",
		Long: `Show the profile. With any of --name, --birthdate or --birthplace,
change those fields and regenerate the theme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				flags := cmd.Flags()
				editing := flags.Changed("name") || flags.Changed("birthdate") || flags.Changed("birthplace")
				if editing {
					current := s.ctl.Profile()
					if current == nil {
						current = &model.Profile{}
					}
					p := *current
					if flags.Changed("name") {
						p.Name = opts.Name
					}
					if flags.Changed("birthdate") {
						p.Birthdate = opts.Birthdate
					}
					if flags.Changed("birthplace") {
						p.Birthplace = opts.Birthplace
					}
					if err := s.ctl.EditProfile(p.Name, p.Birthdate, p.Birthplace); err != nil {
						return err
					}
					if err := s.commit(); err != nil {
						return err
					}
				}
				return outputProfile(s, f)
			})
		},
	}

	addProfileFlags(cmd, opts)
	return cmd
}

func addProfileFlags(cmd *cobra.Command, opts *ProfileOptions) {
	cmd.Flags().StringVar(&opts.Name, "name", "", "your name")
	cmd.Flags().StringVar(&opts.Birthdate, "birthdate", "", "birthdate as YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Birthplace, "birthplace", "", "birthplace (optional)")
}

func outputProfile(s *session, f *OutputFormatter) error {
	snap := s.ctl.Snapshot()
	result := ProfileResult{
		Profile:   snap.Profile,
		Title:     snap.Workbook.Title,
		ThemeLine: snap.Workbook.ThemeLine,
		Insights:  snap.Workbook.ProfileInsights,
	}
	return f.Result(result, func(w io.Writer) {
		if result.Profile == nil {
			fmt.Fprintln(w, "No profile yet. Run: meworkbook init --name <name> --birthdate YYYY-MM-DD")
			return
		}
		fmt.Fprintf(w, "Name:       %s\n", result.Profile.Name)
		fmt.Fprintf(w, "Birthdate:  %s\n", result.Profile.Birthdate)
		if result.Profile.Birthplace != "" {
			fmt.Fprintf(w, "Birthplace: %s\n", result.Profile.Birthplace)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, result.Title)
		if result.ThemeLine != "" {
			fmt.Fprintln(w, result.ThemeLine)
		}
	})
}

// NewInsightsCommand creates the insights command.
func NewInsightsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show the derived numerology and zodiac insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				in := s.ctl.Insights()
				return f.Result(in, func(w io.Writer) { writeInsights(w, in) })
			})
		},
	}
}

func writeInsights(w io.Writer, in model.DerivedInsights) {
	if in.LifePath == nil {
		fmt.Fprintln(w, "No insights yet: add a profile with a birthdate.")
		return
	}
	fmt.Fprintf(w, "Life Path:       %d\n", *in.LifePath)
	fmt.Fprintf(w, "Birthday Number: %d\n", *in.BirthdayNumber)
	fmt.Fprintf(w, "Personal Year:   %d\n", *in.PersonalYear)
	fmt.Fprintf(w, "Sun Sign:        %s\n", in.SunSign)
	fmt.Fprintf(w, "Chinese Zodiac:  %s %s\n", in.ChineseZodiac.Element, in.ChineseZodiac.Animal)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/schema"
	"github.com/roach88/meworkbook/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out string
}

// ExportResult is the JSON payload of export --out.
type ExportResult struct {
	Path       string `json:"path"`
	ExportedAt string `json:"exportedAt"`
	Bytes      int    `json:"bytes"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the workbook as a JSON document",
		Long: `Export the profile and workbook as one JSON document stamped with the
current time. The document is checked against the export schema first.

Without --out the document is written to stdout as-is.

Examples:
  meworkbook export > backup.json
  meworkbook export --out ` + model.ExportFilename,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				exp := s.ctl.Export()

				v, err := schema.New()
				if err != nil {
					return err
				}
				if err := v.ValidateExport(exp); err != nil {
					return err
				}

				data, err := model.MarshalIndent(exp)
				if err != nil {
					return fmt.Errorf("encode export: %w", err)
				}
				data = append(data, '\n')

				if opts.Out == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
					return codedError(ExitFailure, ErrCodeWriteFailed, "failed to write export", err)
				}
				s.logger.Info("export written", "path", opts.Out, "bytes", len(data))

				result := ExportResult{Path: opts.Out, ExportedAt: exp.ExportedAt, Bytes: len(data)}
				return f.Result(result, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Exported to %s (%d bytes)\n", result.Path, result.Bytes)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the export to this file instead of stdout")
	return cmd
}

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the workbook and start over",
		Long: `Delete the stored workbook and replace it with a fresh one. The profile,
every month page and the year-end pages are lost. Export first if you
want a copy. Requires --yes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return newFormatter(rootOpts, cmd).Fail(usageError("reset erases all data; pass --yes to confirm"))
			}
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				if err := s.ctl.Reset(cmd.Context()); err != nil {
					return codedError(ExitFailure, ErrCodeStorage, "failed to reset workbook", err)
				}
				if err := s.commit(); err != nil {
					return err
				}
				return f.Result(map[string]string{"database": s.cfg.Storage.Path, "key": s.gateway.Key()}, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Workbook reset: %s\n", describeDB(s))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm erasing all data")
	return cmd
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Kind string
}

// ValidateResult is the JSON payload of a successful validate.
type ValidateResult struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a saved state or export document against the schema",
		Long: `Check a JSON document against the workbook schema. --kind selects the
persisted state record (state) or an export (export).

Exit codes:
  0  document is valid
  1  document failed validation
  2  file not found or bad arguments

Example:
  meworkbook validate --kind export ` + model.ExportFilename,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			path := args[0]

			kind, err := schema.ParseKind(opts.Kind)
			if err != nil {
				return f.Fail(usageError("%v", err))
			}

			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return f.Fail(codedError(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), nil))
				}
				return f.Fail(codedError(ExitCommandError, ErrCodeGeneric, "failed to read file", err))
			}

			v, err := schema.New()
			if err != nil {
				return f.Fail(err)
			}
			f.VerboseLog("validating %s as %s", path, kind)
			if err := v.Validate(kind, data); err != nil {
				var ve *schema.ValidationError
				if errors.As(err, &ve) && f.Format == "text" {
					fmt.Fprintln(f.Writer, "✗ Validation failed")
					for _, issue := range ve.Issues {
						fmt.Fprintf(f.Writer, "  %s\n", issue)
					}
					return WrapExitError(ExitFailure, "validation failed", err)
				}
				return f.Fail(err)
			}

			result := ValidateResult{File: path, Kind: string(kind), Valid: true}
			return f.Result(result, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s is a valid %s document\n", path, kind)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", string(schema.KindState), "document kind (state|export)")
	return cmd
}

// StatusResult is the JSON payload of status.
type StatusResult struct {
	Database   string     `json:"database"`
	Key        string     `json:"key"`
	Stored     bool       `json:"stored"`
	Revision   string     `json:"revision,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Size       int        `json:"size"`
	HasProfile bool       `json:"hasProfile"`
	Title      string     `json:"title"`
	View       string     `json:"view"`
	Month      string     `json:"month"`
	// Set with --verbose.
	Health *store.Health `json:"health,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the workbook is stored and its last save",
		Long: `Show the database path, record key and last save of the workbook.

With --verbose the database journal mode and schema version are included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session, f *OutputFormatter) error {
				info, ok, err := s.gateway.Info(cmd.Context())
				if err != nil {
					return codedError(ExitFailure, ErrCodeStorage, "failed to read record", err)
				}
				snap := s.ctl.Snapshot()
				result := StatusResult{
					Database:   s.cfg.Storage.Path,
					Key:        s.gateway.Key(),
					Stored:     ok,
					Revision:   info.Revision,
					Size:       info.Size,
					HasProfile: snap.Profile != nil,
					Title:      snap.Workbook.Title,
					View:       string(snap.UI.CurrentView),
					Month:      snap.UI.CurrentMonth.String(),
				}
				if ok {
					updated := info.UpdatedAt
					result.UpdatedAt = &updated
				}
				if rootOpts.Verbose {
					health, err := s.store.Health(cmd.Context())
					if err != nil {
						return codedError(ExitFailure, ErrCodeStorage, "failed to read database health", err)
					}
					result.Health = &health
				}

				return f.Result(result, func(w io.Writer) {
					fmt.Fprintf(w, "Database: %s\n", result.Database)
					fmt.Fprintf(w, "Key:      %s\n", result.Key)
					if result.Stored {
						fmt.Fprintf(w, "Revision: %s\n", result.Revision)
						fmt.Fprintf(w, "Updated:  %s\n", result.UpdatedAt.Local().Format(time.RFC1123))
						fmt.Fprintf(w, "Size:     %d bytes\n", result.Size)
					} else {
						fmt.Fprintln(w, "Stored:   no")
					}
					fmt.Fprintf(w, "Profile:  %t\n", result.HasProfile)
					fmt.Fprintf(w, "Title:    %s\n", result.Title)
					fmt.Fprintf(w, "View:     %s (%s)\n", result.View, result.Month)
					if result.Health != nil {
						fmt.Fprintf(w, "Journal:  %s\n", result.Health.JournalMode)
						fmt.Fprintf(w, "Schema:   v%d\n", result.Health.SchemaVersion)
					}
				})
			})
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/engine"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Date string
}

// NewGenerateCommand creates the generate command: one generation run for
// one calendar date, persisted idempotently.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate occurrences for a date",
		Long: `Generate occurrences for a date and upsert them into the store.

Re-running for an already-generated date is a no-op for existing rows:
occurrence identity is derived from (task, variant, date).

Example:
  checklist generate --date 2024-03-18`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "target date (YYYY-MM-DD, default today)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	date, err := e.parseDateFlag(opts.Date)
	if err != nil {
		return err
	}
	tasks, err := e.loadTasks(cmd)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := engine.NewRunner(engine.New(e.cal), st)
	report, err := runner.GenerateForDate(cmd.Context(), tasks, date)
	if err != nil {
		return WrapExitError(ExitCommandError, "generate", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "generated %s: %d new, %d carry-over (%d inserted, %d already present)",
		report.Date, report.New, report.CarryOver, report.Inserted, report.Existing)
	for _, ie := range report.Errors {
		fmt.Fprintf(&b, "\n  item error: %s", ie.Error())
	}
	return formatter(opts.RootOptions, cmd).SuccessText(b.String(), report)
}

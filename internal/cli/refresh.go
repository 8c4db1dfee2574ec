package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/engine"
)

// RefreshOptions holds flags for the refresh command.
type RefreshOptions struct {
	*RootOptions
	Now string
}

// NewRefreshCommand creates the refresh command: one status refresh pass
// over every live occurrence.
func NewRefreshCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RefreshOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute occurrence statuses",
		Long: `Recompute the status and lock flag of every live occurrence at an instant.

Statuses only ever move forward (pending, overdue, missed); completed
occurrences are untouched. The pass is safe to re-run at any time.

Example:
  checklist refresh --now 2024-03-18T23:59:00Z`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Now, "now", "", "evaluation instant (RFC 3339, default current time)")

	return cmd
}

func runRefresh(opts *RefreshOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	now, err := e.parseNowFlag(opts.Now)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := engine.NewRunner(engine.New(e.cal), st)
	report, err := runner.RefreshStatuses(cmd.Context(), now)
	if err != nil {
		return WrapExitError(ExitCommandError, "refresh", err)
	}

	text := fmt.Sprintf("refreshed %d occurrences: %d updated, %d newly locked",
		report.Evaluated, report.Updated, report.Locked)
	return formatter(opts.RootOptions, cmd).SuccessText(text, report)
}

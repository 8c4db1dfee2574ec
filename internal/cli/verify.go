package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/store"
)

// NewVerifyCommand creates the verify command: an audit of the store's
// occurrence-lineage invariant.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Audit the occurrence store invariants",
		Long: `Audit the occurrence store invariants.

Checks that no (task, variant, date) key carries more than one live
occurrence. A violation indicates corruption outside the engine and is
reported, never repaired automatically.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.VerifyLineages(cmd.Context()); err != nil {
		if errors.Is(err, store.ErrDuplicateLineage) {
			f := formatter(opts, cmd)
			_ = f.Error("DUPLICATE_LINEAGE", err.Error(), nil)
			return WrapExitError(ExitFailure, "invariant violation", err)
		}
		return WrapExitError(ExitCommandError, "verify", err)
	}
	return formatter(opts, cmd).SuccessText("store invariants hold", map[string]bool{"ok": true})
}

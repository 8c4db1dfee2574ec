package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/store"
)

// DoneOptions holds flags for the done command.
type DoneOptions struct {
	*RootOptions
	At string
}

// NewDoneCommand creates the done command: the external completion action,
// and the only path by which an occurrence reaches the done status.
func NewDoneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DoneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "done <occurrence-id>",
		Short: "Mark an occurrence as completed",
		Long: `Mark an occurrence as completed.

Completion is idempotent: marking a done occurrence again is a no-op.
Locked occurrences cannot be completed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDone(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "completion instant (RFC 3339, default current time)")

	return cmd
}

func runDone(opts *DoneOptions, id string, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	at, err := e.parseNowFlag(opts.At)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.MarkDone(cmd.Context(), id, at); err != nil {
		switch {
		case errors.Is(err, store.ErrLocked):
			return WrapExitError(ExitFailure, "occurrence is locked and cannot be completed", err)
		case errors.Is(err, store.ErrNotFound):
			return WrapExitError(ExitCommandError, "occurrence not found", err)
		default:
			return WrapExitError(ExitCommandError, "mark done", err)
		}
	}

	text := fmt.Sprintf("occurrence %s marked done", id)
	return formatter(opts.RootOptions, cmd).SuccessText(text, map[string]string{"id": id, "status": "done"})
}

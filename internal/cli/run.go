package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/engine"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/scheduler"
)

// NewRunCommand creates the run command: the scheduler daemon that performs
// the daily generation run and the periodic status refresh pass.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the generation and status-refresh scheduler",
		Long: `Run the scheduler daemon.

Jobs, in the business timezone:
  - daily generation at scheduler.generate_at
  - status refresh every scheduler.refresh_every

Both jobs are idempotent and safe to re-run; a crashed daemon can simply be
restarted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(rootOpts, cmd)
		},
	}
	return cmd
}

func runDaemon(opts *RootOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts)
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := engine.NewRunner(engine.New(e.cal), st)
	sched := scheduler.New(e.loc)

	_, err = sched.Daily(e.cfg.Scheduler.GenerateAt, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		tasks, err := e.loadTasks(cmd)
		if err != nil {
			slog.Error("scheduled generation: load templates failed", "error", err)
			return
		}
		date := time.Now().In(e.loc)
		if _, err := runner.GenerateForDate(ctx, tasks, date); err != nil {
			slog.Error("scheduled generation failed", "error", err)
		}
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "schedule generation job", err)
	}

	_, err = sched.Every(e.cfg.Scheduler.RefreshEvery.Std(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := runner.RefreshStatuses(ctx, time.Now().In(e.loc)); err != nil {
			slog.Error("scheduled status refresh failed", "error", err)
		}
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "schedule refresh job", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "scheduler running (generate daily at %s, refresh every %s)\n",
		e.cfg.Scheduler.GenerateAt, e.cfg.Scheduler.RefreshEvery.Std())
	sched.Start()
	<-ctx.Done()
	sched.Stop()
	fmt.Fprintln(cmd.OutOrStdout(), "scheduler stopped")
	return nil
}

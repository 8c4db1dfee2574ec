package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/config"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/loader"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/store"
)

// env bundles the per-invocation collaborators every command needs: the
// configuration, the calendar snapshot, and the business timezone.
type env struct {
	cfg config.Config
	cal *calendar.Calendar
	loc *time.Location
}

// loadEnv resolves configuration and builds the immutable calendar snapshot
// for this run.
func loadEnv(opts *RootOptions) (*env, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
	}

	cal, err := cfg.BuildCalendar()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "build calendar", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolve timezone", err)
	}
	return &env{cfg: cfg, cal: cal, loc: loc}, nil
}

// loadTasks reads and normalizes the template file, warning about skipped
// tasks on stderr so a bad template never hides the rest of the batch.
func (e *env) loadTasks(cmd *cobra.Command) ([]checklist.MasterTask, error) {
	tasks, problems, err := loader.Load(e.cfg.Templates)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load templates", err)
	}
	for _, p := range problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %s\n", p)
	}
	return tasks, nil
}

// openStore opens the occurrence database configured for this run.
func (e *env) openStore() (*store.Store, error) {
	st, err := store.Open(e.cfg.Store.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}
	return st, nil
}

// parseDateFlag resolves a --date flag, defaulting to today in the business
// timezone.
func (e *env) parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().In(e.loc)
		return checklist.DateOf(now), nil
	}
	d, err := checklist.ParseDate(s)
	if err != nil {
		return time.Time{}, WrapExitError(ExitCommandError, "invalid --date", err)
	}
	return d, nil
}

// parseNowFlag resolves a --now flag (RFC 3339), defaulting to the current
// instant in the business timezone.
func (e *env) parseNowFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now().In(e.loc), nil
	}
	t, err := time.ParseInLocation(time.RFC3339, s, e.loc)
	if err != nil {
		return time.Time{}, WrapExitError(ExitCommandError, "invalid --now (expected RFC 3339)", err)
	}
	return t, nil
}

// formatter builds the output formatter for a command.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

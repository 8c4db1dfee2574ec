package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/status"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Date string
	Now  string
}

// occurrenceView is the JSON shape of one listed occurrence. The field set
// matches what downstream consumers rely on verbatim.
type occurrenceView struct {
	ID           string `json:"id"`
	TaskID       string `json:"task_id"`
	Variant      string `json:"variant"`
	Date         string `json:"date"`
	DueDate      string `json:"due_date"`
	DueTime      string `json:"due_time"`
	Status       string `json:"status"`
	Locked       bool   `json:"locked"`
	IsCarryOver  bool   `json:"is_carry_over"`
	OriginalDate string `json:"original_appearance_date"`
}

// NewListCommand creates the list command showing stored occurrences for a
// date with their status as of an instant.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List occurrences for a date",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "target date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.Now, "now", "", "status evaluation instant (RFC 3339, default current time)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	date, err := e.parseDateFlag(opts.Date)
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

	occs, err := st.ListForDate(cmd.Context(), date)
	if err != nil {
		return WrapExitError(ExitCommandError, "list", err)
	}

	views := make([]occurrenceView, 0, len(occs))
	var b strings.Builder
	fmt.Fprintf(&b, "%d occurrences on %s", len(occs), date.Format(checklist.DateLayout))
	for _, occ := range occs {
		d := status.Evaluate(occ, now)
		views = append(views, occurrenceView{
			ID:           occ.ID,
			TaskID:       occ.TaskID,
			Variant:      occ.Variant.Key(),
			Date:         occ.Date.Format(checklist.DateLayout),
			DueDate:      occ.DueDate.Format(checklist.DateLayout),
			DueTime:      occ.DueTime,
			Status:       string(d.Status),
			Locked:       d.Locked,
			IsCarryOver:  occ.IsCarryOver,
			OriginalDate: occ.OriginalDate.Format(checklist.DateLayout),
		})

		marker := ""
		if occ.IsCarryOver {
			marker = " (carry-over)"
		}
		if d.Locked {
			marker += " [locked]"
		}
		fmt.Fprintf(&b, "\n  %-10s %-28s due %s %s  %s%s",
			d.Status, occ.TaskID, occ.DueDate.Format(checklist.DateLayout), occ.DueTime, occ.Variant, marker)
	}
	return formatter(opts.RootOptions, cmd).SuccessText(b.String(), views)
}

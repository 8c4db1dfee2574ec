package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// CalendarOptions holds flags for the calendar command.
type CalendarOptions struct {
	*RootOptions
	Month string
}

// dayView is the JSON shape of one resolved calendar day.
type dayView struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	WorkingDay bool   `json:"working_day"`
	Holiday    bool   `json:"holiday"`
}

// NewCalendarCommand creates the calendar command: an operator aid that
// prints how the business calendar resolves each day of a month.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalendarOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "calendar",
		Short:         "Show resolved working days for a month",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Month, "month", "", "target month (YYYY-MM, default current month)")

	return cmd
}

func runCalendar(opts *CalendarOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}

	var first time.Time
	if opts.Month == "" {
		now := time.Now().In(e.loc)
		first = checklist.Date(now.Year(), now.Month(), 1)
	} else {
		t, err := time.Parse("2006-01", opts.Month)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --month (expected YYYY-MM)", err)
		}
		first = checklist.Date(t.Year(), t.Month(), 1)
	}
	last := first.AddDate(0, 1, -1)

	var (
		views []dayView
		b     strings.Builder
	)
	fmt.Fprintf(&b, "%s: working days in %s", first.Format("2006-01"), e.cfg.Timezone)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		views = append(views, dayView{
			Date:       d.Format(checklist.DateLayout),
			Weekday:    d.Weekday().String(),
			WorkingDay: e.cal.IsWorkingDay(d),
			Holiday:    e.cal.IsHoliday(d),
		})

		mark := " "
		switch {
		case e.cal.IsHoliday(d):
			mark = "H"
		case !e.cal.IsWorkingDay(d):
			mark = "-"
		}
		fmt.Fprintf(&b, "\n  %s %-9s [%s]", d.Format(checklist.DateLayout), d.Weekday(), mark)
	}
	return formatter(opts.RootOptions, cmd).SuccessText(b.String(), views)
}

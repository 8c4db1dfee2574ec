package checklist

import (
	"fmt"
	"strings"
	"time"
)

// VariantKind identifies one family of frequency rules.
// The set is closed: evaluation dispatches over these kinds only.
type VariantKind string

const (
	// KindOnceOff appears from its first eligible date until marked done.
	KindOnceOff VariantKind = "once_off"

	// KindEveryDay appears on every non-Sunday, non-holiday date.
	KindEveryDay VariantKind = "every_day"

	// KindOnceWeekly anchors to Monday of each week.
	KindOnceWeekly VariantKind = "once_weekly"

	// KindSpecificWeekday anchors to a configured weekday (Mon-Sat).
	KindSpecificWeekday VariantKind = "specific_weekday"

	// KindStartOfMonth anchors to the first working day of each month.
	KindStartOfMonth VariantKind = "start_of_month"

	// KindOnceMonthly shares the start-of-month appearance rule but is due on
	// the month's last Saturday.
	KindOnceMonthly VariantKind = "once_monthly"

	// KindEndOfMonth anchors to the latest Monday with five working days
	// remaining before month end.
	KindEndOfMonth VariantKind = "end_of_month"
)

// Variant is one frequency rule attached to a master task. A task may carry
// several (e.g. "every Monday" + "every Friday").
type Variant struct {
	Kind VariantKind

	// Weekday is the anchor day for specific_weekday variants (Monday-Saturday).
	Weekday time.Weekday

	// Month restricts monthly kinds to a single target month.
	// Zero means every month.
	Month time.Month

	// DueTime optionally overrides the task's default HH:MM due time.
	DueTime string
}

// Key returns the stable identity string for this variant, used in occurrence
// identity hashing and store keys. It must never change for existing data.
func (v Variant) Key() string {
	switch v.Kind {
	case KindSpecificWeekday:
		return string(v.Kind) + ":" + strings.ToLower(v.Weekday.String())
	case KindOnceMonthly, KindEndOfMonth:
		if v.Month != 0 {
			return fmt.Sprintf("%s:%d", v.Kind, int(v.Month))
		}
	}
	return string(v.Kind)
}

// String returns a human-readable form of the variant.
func (v Variant) String() string {
	switch v.Kind {
	case KindSpecificWeekday:
		return "every " + v.Weekday.String()
	case KindOnceMonthly, KindEndOfMonth:
		if v.Month != 0 {
			return fmt.Sprintf("%s (%s only)", strings.ReplaceAll(string(v.Kind), "_", " "), v.Month)
		}
	}
	return strings.ReplaceAll(string(v.Kind), "_", " ")
}

// weekdayAliases maps external weekday identifiers to time.Weekday anchors.
// Sunday is intentionally absent: no variant may anchor to a Sunday.
var weekdayAliases = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var monthAliases = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// kindAliases maps canonical names plus the legacy identifiers still emitted
// by older authoring surfaces onto the closed kind set.
var kindAliases = map[string]VariantKind{
	"once_off": KindOnceOff, "once-off": KindOnceOff, "once": KindOnceOff, "one_off": KindOnceOff,

	"every_day": KindEveryDay, "everyday": KindEveryDay, "daily": KindEveryDay,

	"once_weekly": KindOnceWeekly, "weekly": KindOnceWeekly, "once_a_week": KindOnceWeekly,

	"start_of_month": KindStartOfMonth, "start_of_every_month": KindStartOfMonth, "month_start": KindStartOfMonth,

	"once_monthly": KindOnceMonthly, "monthly": KindOnceMonthly, "once_a_month": KindOnceMonthly,

	"end_of_month": KindEndOfMonth, "end_of_every_month": KindEndOfMonth, "month_end": KindEndOfMonth,
}

// ParseVariant normalizes an external frequency identifier into a Variant.
//
// Accepted forms:
//
//	"daily", "once_weekly", "end_of_month", ...   (kind aliases)
//	"monday" .. "saturday", "tue", ...            (specific weekday)
//	"once_monthly:mar", "end_of_month:12"         (month-restricted monthly)
//
// This is the single point where legacy string identifiers enter the system;
// everything downstream works on the closed kind set.
func ParseVariant(raw string) (Variant, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Variant{}, fmt.Errorf("empty frequency identifier")
	}

	name, qualifier, hasQualifier := strings.Cut(s, ":")

	// Canonical key form produced by Variant.Key, so stored keys round-trip.
	if name == string(KindSpecificWeekday) {
		wd, ok := weekdayAliases[qualifier]
		if !hasQualifier || !ok {
			return Variant{}, fmt.Errorf("frequency %q: specific_weekday requires a Monday-Saturday qualifier", raw)
		}
		return Variant{Kind: KindSpecificWeekday, Weekday: wd}, nil
	}

	if wd, ok := weekdayAliases[name]; ok {
		if hasQualifier {
			return Variant{}, fmt.Errorf("frequency %q: weekday variants take no qualifier", raw)
		}
		return Variant{Kind: KindSpecificWeekday, Weekday: wd}, nil
	}

	kind, ok := kindAliases[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown frequency identifier %q", raw)
	}

	v := Variant{Kind: kind}
	if hasQualifier {
		if kind != KindOnceMonthly && kind != KindEndOfMonth {
			return Variant{}, fmt.Errorf("frequency %q: only monthly variants take a month qualifier", raw)
		}
		m, err := parseMonth(qualifier)
		if err != nil {
			return Variant{}, fmt.Errorf("frequency %q: %w", raw, err)
		}
		v.Month = m
	}
	return v, nil
}

func parseMonth(s string) (time.Month, error) {
	if m, ok := monthAliases[s[:min(3, len(s))]]; ok && len(s) >= 3 {
		return m, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), nil
	}
	return 0, fmt.Errorf("invalid month qualifier %q", s)
}

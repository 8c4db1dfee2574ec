package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		raw  string
		want Variant
	}{
		{"once_off", Variant{Kind: KindOnceOff}},
		{"once-off", Variant{Kind: KindOnceOff}},
		{"daily", Variant{Kind: KindEveryDay}},
		{"everyday", Variant{Kind: KindEveryDay}},
		{"weekly", Variant{Kind: KindOnceWeekly}},
		{"monday", Variant{Kind: KindSpecificWeekday, Weekday: time.Monday}},
		{"tue", Variant{Kind: KindSpecificWeekday, Weekday: time.Tuesday}},
		{"Saturday", Variant{Kind: KindSpecificWeekday, Weekday: time.Saturday}},
		{"start_of_every_month", Variant{Kind: KindStartOfMonth}},
		{"monthly", Variant{Kind: KindOnceMonthly}},
		{"once_monthly:mar", Variant{Kind: KindOnceMonthly, Month: time.March}},
		{"end_of_month:12", Variant{Kind: KindEndOfMonth, Month: time.December}},
		{"end_of_every_month", Variant{Kind: KindEndOfMonth}},
		{"  DAILY  ", Variant{Kind: KindEveryDay}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseVariant(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVariantErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"sunday",            // no Sunday anchors
		"fortnightly",       // unknown kind
		"monday:mar",        // weekday variants take no qualifier
		"daily:mar",         // non-monthly kind with qualifier
		"monthly:13",        // month out of range
		"monthly:notamonth", // unparseable qualifier
		"specific_weekday",  // canonical form requires a weekday
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseVariant(raw)
			assert.Error(t, err)
		})
	}
}

// Stored occurrence keys are produced by Variant.Key and parsed back by
// ParseVariant; the round trip must be lossless for every variant shape.
func TestVariantKeyRoundTrip(t *testing.T) {
	variants := []Variant{
		{Kind: KindOnceOff},
		{Kind: KindEveryDay},
		{Kind: KindOnceWeekly},
		{Kind: KindSpecificWeekday, Weekday: time.Monday},
		{Kind: KindSpecificWeekday, Weekday: time.Saturday},
		{Kind: KindStartOfMonth},
		{Kind: KindOnceMonthly},
		{Kind: KindOnceMonthly, Month: time.June},
		{Kind: KindEndOfMonth},
		{Kind: KindEndOfMonth, Month: time.December},
	}
	for _, v := range variants {
		t.Run(v.Key(), func(t *testing.T) {
			got, err := ParseVariant(v.Key())
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestVariantKey(t *testing.T) {
	assert.Equal(t, "specific_weekday:wednesday", Variant{Kind: KindSpecificWeekday, Weekday: time.Wednesday}.Key())
	assert.Equal(t, "once_monthly:3", Variant{Kind: KindOnceMonthly, Month: time.March}.Key())
	assert.Equal(t, "end_of_month", Variant{Kind: KindEndOfMonth}.Key())
}

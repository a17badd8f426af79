// Copyright 2026 Peter Edge
//
// All rights reserved.

package percent

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestChange(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		desc     string
		oldValue decimal.NullDecimal
		newValue decimal.NullDecimal
		want     string
	}{
		{
			desc:     "simple increase",
			oldValue: value("100"),
			newValue: value("110"),
			want:     "10.00%",
		},
		{
			desc:     "decrease",
			oldValue: value("2000"),
			newValue: value("1900"),
			want:     "-5.00%",
		},
		{
			desc:     "repeating fraction rounds to two places",
			oldValue: value("0.90"),
			newValue: value("0.95"),
			want:     "5.56%",
		},
		{
			desc:     "no change",
			oldValue: value("1.2345"),
			newValue: value("1.2345"),
			want:     "0.00%",
		},
		{
			desc:     "zero old value is undefined",
			oldValue: value("0"),
			newValue: value("50"),
			want:     Unavailable,
		},
		{
			desc:     "missing old value",
			oldValue: decimal.NullDecimal{},
			newValue: value("50"),
			want:     Unavailable,
		},
		{
			desc:     "missing new value",
			oldValue: value("50"),
			newValue: decimal.NullDecimal{},
			want:     Unavailable,
		},
		{
			desc:     "both missing",
			oldValue: decimal.NullDecimal{},
			newValue: decimal.NullDecimal{},
			want:     Unavailable,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, test.want, Change(test.oldValue, test.newValue))
		})
	}
}

// value builds a valid NullDecimal from a decimal string.
func value(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

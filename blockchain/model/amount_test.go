package model

import (
	"math"
	"testing"
)

func TestAmountString(t *testing.T) {
	tests := []struct {
		sat  uint64
		want string
	}{
		{0, "0.00000000"},
		{1, "0.00000001"},
		{1000189, "0.01000189"},
		{SatoshiPerCoin, "1.00000000"},
		{SatoshiPerCoin + 1, "1.00000001"},
		{21_000_000 * SatoshiPerCoin, "21000000.00000000"},
		// would lose precision as a float64
		{math.MaxUint64, "184467440737.09551615"},
		{9007199254740993, "90071992.54740993"},
	}
	for _, tt := range tests {
		a := Amount(tt.sat)
		if got := a.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %s, want %s", tt.sat, got, tt.want)
		}
		if a.Satoshis() != tt.sat {
			t.Errorf("Amount(%d).Satoshis() = %d", tt.sat, a.Satoshis())
		}
	}
}

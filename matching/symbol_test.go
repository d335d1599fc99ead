package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	testCases := []struct {
		name  string
		sym   Symbol
		valid bool
	}{
		{
			name:  "no limits",
			sym:   NewSymbol("AAPL"),
			valid: true,
		},
		{
			name:  "empty name",
			sym:   NewSymbol(""),
			valid: false,
		},
		{
			name: "valid",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
				lotSizeLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: true,
		},
		{
			name: "price limits only",
			sym: Symbol{name: "AAPL",
				priceLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: true,
		},
		{
			name: "min-max price",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(10), Max: NewUint(10), Step: NewUint(1)},
				lotSizeLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: false,
		},
		{
			name: "min-max lot",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
				lotSizeLimits: Limits{Min: NewUint(10), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: false,
		},
		{
			name: "price big step",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(10)},
				lotSizeLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: false,
		},
		{
			name: "price zero step",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(0)},
				lotSizeLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
			},
			valid: false,
		},
		{
			name: "lot zero step",
			sym: Symbol{name: "AAPL",
				priceLimits:   Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(1)},
				lotSizeLimits: Limits{Min: NewUint(1), Max: NewUint(10), Step: NewUint(0)},
			},
			valid: false,
		},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.valid, tc.sym.Valid(), tc.name)
	}
}

func TestLimitsAllows(t *testing.T) {
	limits := Limits{Min: NewUint(5), Max: NewUint(100), Step: NewUint(5)}

	require.True(t, limits.Allows(NewUint(5)))
	require.True(t, limits.Allows(NewUint(100)))
	require.True(t, limits.Allows(NewUint(55)))
	require.False(t, limits.Allows(NewUint(0)))
	require.False(t, limits.Allows(NewUint(56)))
	require.False(t, limits.Allows(NewUint(105)))

	require.True(t, Limits{}.Allows(NewUint(7)))
	require.Equal(t, "50", ApplySteps(NewUint(54), NewUint(5)).String())
}

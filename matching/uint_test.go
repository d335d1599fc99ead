package matching

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewUintFromFloatString(t *testing.T) {
	tc := []struct {
		number   string
		expected string
	}{
		{
			number:   "10",
			expected: "10000000000000",
		},
		{
			number:   "0.000000000001",
			expected: "1",
		},
		{
			number:   "1.000000000000",
			expected: "1000000000000",
		},
		{
			number:   "0.000000000100",
			expected: "100",
		},
		{
			number:   "1.0000000001",
			expected: "1000000000100",
		},
		{
			number:   "0.999999999999",
			expected: "999999999999",
		},
		{
			number:   "0.9999999999990000000000000",
			expected: "999999999999",
		},
		{
			number:   "0.0",
			expected: "0",
		},
	}

	for _, v := range tc {
		expected, err := NewUintFromStr(v.expected)
		require.NoError(t, err, v.expected)
		result, err := NewUintFromFloatString(v.number)
		require.NoError(t, err, v.number)

		require.Equal(t, expected.String(), result.String())
	}
}

func TestNewUintFromFloatStringInvalid(t *testing.T) {
	for _, number := range []string{"", "abc", "-1", "-0.5", "1e40"} {
		_, err := NewUintFromFloatString(number)
		require.ErrorIs(t, err, ErrInvalidNumber, number)
	}
}

func TestUintToFloatString(t *testing.T) {
	tc := []struct {
		number   string
		expected string
	}{
		{
			number:   "1000000000000",
			expected: "1",
		},
		{
			number:   "100000000000",
			expected: "0.1",
		},
		{
			number:   "10000000000000",
			expected: "10",
		},
		{
			number:   "10000000000100",
			expected: "10.0000000001",
		},
		{
			number:   "999999999999",
			expected: "0.999999999999",
		},
		{
			number:   "10",
			expected: "0.00000000001",
		},
		{
			number:   "0",
			expected: "0",
		},
	}

	for _, v := range tc {
		uintForm, err := NewUintFromStr(v.number)
		require.NoError(t, err)

		floatForm := uintForm.ToFloatString()
		require.Equal(t, v.expected, floatForm)
	}
}

func TestNewUintFromFloat(t *testing.T) {
	v, err := NewUintFromFloat(101.25)
	require.NoError(t, err)
	require.Equal(t, "101.25", v.ToFloatString())
	require.InDelta(t, 101.25, v.ToFloat64(), 1e-9)

	v, err = NewUintFromFloat(0.1)
	require.NoError(t, err)
	require.Equal(t, "100000000000", v.String())

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -3} {
		_, err := NewUintFromFloat(f)
		require.ErrorIs(t, err, ErrInvalidNumber)
	}
}

func TestUintDecimalRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("48.000000000125")
	v, err := NewUintFromDecimal(d)
	require.NoError(t, err)
	require.True(t, d.Equal(v.ToDecimal()))
}

func TestUintQuoRem(t *testing.T) {
	tc := []struct {
		number            Uint
		div               uint64
		expectedInteger   string
		expectedRemainder string
	}{
		{
			number:            NewUint(10000),
			div:               100,
			expectedInteger:   "100",
			expectedRemainder: "0",
		},
		{
			number:            NewUint(10001),
			div:               100,
			expectedInteger:   "100",
			expectedRemainder: "1",
		},
		{
			number:            NewUint(10099),
			div:               100,
			expectedInteger:   "100",
			expectedRemainder: "99",
		},
	}

	for _, v := range tc {
		integer, remainder := v.number.QuoRem(NewUint(v.div))

		require.Equal(t, v.expectedInteger, integer.String())
		require.Equal(t, v.expectedRemainder, remainder.String())
	}
}

func TestUintAddOverflows(t *testing.T) {
	require.False(t, NewUint(1).AddOverflows(NewUint(2)))
	require.False(t, NewMaxUint().Sub(NewUint(2)).AddOverflows(NewUint(2)))
	require.True(t, NewMaxUint().Sub(NewUint(1)).AddOverflows(NewUint(2)))
	require.True(t, NewMaxUint().AddOverflows(NewUint(1)))
	require.False(t, NewMaxUint().AddOverflows(NewZeroUint()))
}

func TestUintJSON(t *testing.T) {
	v := NewUint(100).Mul64(UintPrecision).Add(NewUint(UintPrecision / 2))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `"100.5"`, string(data))

	var quoted, bare Uint
	require.NoError(t, json.Unmarshal([]byte(`"100.5"`), &quoted))
	require.NoError(t, json.Unmarshal([]byte(`100.5`), &bare))
	require.True(t, v.Equals(quoted))
	require.True(t, v.Equals(bare))

	require.Error(t, json.Unmarshal([]byte(`"-1"`), &bare))
}

func TestFloatEdges(t *testing.T) {
	const postfix = "999999999999"
	testCases := []struct {
		number   string
		expected string
	}{
		{number: "1.13" + postfix, expected: "1.139999999999"},
		{number: "7", expected: "7"},
	}

	for _, tc := range testCases {
		v, err := NewUintFromFloatString(tc.number)
		require.NoError(t, err)
		require.Equal(t, tc.expected, v.ToFloatString())
	}
}

func BenchmarkNewUintFromFloatString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = NewUintFromFloatString("123.00100")
	}
}

package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		// 半数远离零，不是银行家舍入
		{2.005, 2.01},
		{-2.005, -2.01},
		{2.675, 2.68},
		{1.004, 1.0},
		{0, 0},
		{123.456, 123.46},
		{-123.454, -123.45},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Round2(c.in), "Round2(%v)", c.in)
	}

	// 非有限值一律归0
	require.Equal(t, 0.0, Round2(math.NaN()))
	require.Equal(t, 0.0, Round2(math.Inf(1)))
	require.Equal(t, 0.0, Round2(math.Inf(-1)))
}

func TestFormatCurrency(t *testing.T) {
	require.Equal(t, "$ 200.00", FormatCurrency(200))
	require.Equal(t, "$ 1234.50", FormatCurrency(1234.5))
	require.Equal(t, "$ -90.25", FormatCurrency(-90.25))
	require.Equal(t, "$ 0.00", FormatCurrency(math.NaN()))
	require.Equal(t, "$ 0.00", FormatCurrency(math.Inf(1)))
}

func TestFormatLeverage(t *testing.T) {
	require.Equal(t, "0.20 x", FormatLeverage(0.2))
	require.Equal(t, "10.00 x", FormatLeverage(10))
	require.Equal(t, "0 x", FormatLeverage(math.NaN()))
	require.Equal(t, "0 x", FormatLeverage(math.Inf(-1)))
}

func TestFormatLots(t *testing.T) {
	require.Equal(t, "20.00 手", FormatLots(20))
	// 0.01手以下放大到6位小数
	require.Equal(t, "0.009900 手", FormatLots(0.0099))
	require.Equal(t, "0.01 手", FormatLots(0.01))
	require.Equal(t, "0.00 手", FormatLots(0))
	require.Equal(t, "0.00 手", FormatLots(math.NaN()))
}

func TestDisplayStrings(t *testing.T) {
	eng := New()
	eng.UpdateInputs(validPatch())
	res, err := eng.Calculate()
	require.NoError(t, err)

	display := DisplayStrings(res)
	require.Len(t, display, 17)
	require.Equal(t, "$ 200.00", display["open_margin"])
	require.Equal(t, "0.20 x", display["actual_leverage"])
	require.Equal(t, "20.00 手", display["open_quantity"])
	require.Equal(t, "$ 120.00", display["long_profit_price"])
	require.Equal(t, "$ 90.00", display["long_loss_price"])

	require.Nil(t, DisplayStrings(nil))
}

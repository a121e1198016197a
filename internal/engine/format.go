package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// 数值取整与展示格式化。
// 用decimal做半数远离零取整：float64直接乘100再math.Round会在2.005这类
// 值上掉进二进制误差（2.005*100 = 200.4999...），NewFromFloat先还原出
// 最短十进制表示再取整，结果是精确的

// Round2 保留两位小数，半数远离零；NaN和±Inf一律归0
func Round2(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatCurrency 金额展示，如 "$ 1234.50"
func FormatCurrency(v float64) string {
	if !isFinite(v) {
		return "$ 0.00"
	}
	return "$ " + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatLeverage 杠杆倍数展示，如 "0.20 x"
func FormatLeverage(v float64) string {
	if !isFinite(v) {
		return "0 x"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " x"
}

// FormatLots 手数展示；小于0.01手时放大到6位小数，避免小仓位显示成0
func FormatLots(v float64) string {
	if !isFinite(v) {
		return "0.00 手"
	}
	if v > 0 && v < 0.01 {
		return decimal.NewFromFloat(v).StringFixed(6) + " 手"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + " 手"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DisplayStrings 十七项结果的展示文案，键名与json字段一致
func DisplayStrings(r *Results) map[string]string {
	if r == nil {
		return nil
	}
	return map[string]string{
		"open_margin":     FormatCurrency(r.OpenMargin),
		"actual_leverage": FormatLeverage(r.ActualLeverage),
		"open_quantity":   FormatLots(r.OpenQuantity),

		"long_liquidation_space": FormatCurrency(r.LongLiquidationSpace),
		"long_profit_space":      FormatCurrency(r.LongProfitSpace),
		"long_loss_space":        FormatCurrency(r.LongLossSpace),
		"long_profit_price":      FormatCurrency(r.LongProfitPrice),
		"long_loss_price":        FormatCurrency(r.LongLossPrice),
		"long_profit_amount":     FormatCurrency(r.LongProfitAmount),
		"long_loss_amount":       FormatCurrency(r.LongLossAmount),

		"short_liquidation_space": FormatCurrency(r.ShortLiquidationSpace),
		"short_profit_space":      FormatCurrency(r.ShortProfitSpace),
		"short_loss_space":        FormatCurrency(r.ShortLossSpace),
		"short_profit_price":      FormatCurrency(r.ShortProfitPrice),
		"short_loss_price":        FormatCurrency(r.ShortLossPrice),
		"short_profit_amount":     FormatCurrency(r.ShortProfitAmount),
		"short_loss_amount":       FormatCurrency(r.ShortLossAmount),
	}
}

package engine

import (
	"fmt"
	"marginflow/internal/consts"
	"marginflow/pkg/errors"
	"marginflow/pkg/errors/ecode"

	"github.com/spf13/cast"
	"go.uber.org/multierr"
)

// 仓位计算引擎：六个输入 -> 十七个输出
// 引擎实例不做并发保护，多个调用方并发使用时每一方持有自己的实例

// Inputs 六个计算输入，构造时全部为零值
type Inputs struct {
	TotalFunds      float64 `json:"total_funds"`       // 总资金
	RValue          float64 `json:"r_value"`           // 单笔风险比例R值，(0, 100]
	ProfitLossRatio float64 `json:"profit_loss_ratio"` // 盈亏比 1:N
	LotDefinition   float64 `json:"lot_definition"`    // 一手的定义（合约乘数）
	NominalLeverage float64 `json:"nominal_leverage"`  // 名义杠杆
	OpenPrice       float64 `json:"open_price"`        // 开仓价格
}

// InputsPatch 部分更新：nil字段保持原值不动，更新阶段不做校验
type InputsPatch struct {
	TotalFunds      *float64 `json:"total_funds"`
	RValue          *float64 `json:"r_value"`
	ProfitLossRatio *float64 `json:"profit_loss_ratio"`
	LotDefinition   *float64 `json:"lot_definition"`
	NominalLeverage *float64 `json:"nominal_leverage"`
	OpenPrice       *float64 `json:"open_price"`
}

// Results 十七个计算结果，全部保留两位小数
type Results struct {
	OpenMargin     float64 `json:"open_margin"`     // 开仓保证金
	ActualLeverage float64 `json:"actual_leverage"` // 实际杠杆
	OpenQuantity   float64 `json:"open_quantity"`   // 开仓手数

	// 多头
	LongLiquidationSpace float64 `json:"long_liquidation_space"` // 多头强平空间
	LongProfitSpace      float64 `json:"long_profit_space"`      // 多头止盈空间
	LongLossSpace        float64 `json:"long_loss_space"`        // 多头止损空间
	LongProfitPrice      float64 `json:"long_profit_price"`      // 多头止盈价
	LongLossPrice        float64 `json:"long_loss_price"`        // 多头止损价
	LongProfitAmount     float64 `json:"long_profit_amount"`     // 多头止盈金额
	LongLossAmount       float64 `json:"long_loss_amount"`       // 多头止损金额

	// 空头
	ShortLiquidationSpace float64 `json:"short_liquidation_space"` // 空头强平空间
	ShortProfitSpace      float64 `json:"short_profit_space"`      // 空头止盈空间
	ShortLossSpace        float64 `json:"short_loss_space"`        // 空头止损空间
	ShortProfitPrice      float64 `json:"short_profit_price"`      // 空头止盈价
	ShortLossPrice        float64 `json:"short_loss_price"`        // 空头止损价
	ShortProfitAmount     float64 `json:"short_profit_amount"`     // 空头止盈金额
	ShortLossAmount       float64 `json:"short_loss_amount"`       // 空头止损金额
}

// 多空两侧强平空间的默认安全系数，两侧不对称是既有口径
const (
	DefaultLongLiquidationFactor  = 0.9
	DefaultShortLiquidationFactor = 0.8
)

type Engine struct {
	inputs  Inputs
	results *Results

	longLiqFactor  float64
	shortLiqFactor float64
}

type Option func(*Engine)

// WithLiquidationFactors 覆盖多空强平空间的安全系数，非正值保持默认
func WithLiquidationFactors(long, short float64) Option {
	return func(e *Engine) {
		if long > 0 {
			e.longLiqFactor = long
		}
		if short > 0 {
			e.shortLiqFactor = short
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		longLiqFactor:  DefaultLongLiquidationFactor,
		shortLiqFactor: DefaultShortLiquidationFactor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UpdateInputs 合并一次部分更新，nil字段不变
func (e *Engine) UpdateInputs(p InputsPatch) {
	if p.TotalFunds != nil {
		e.inputs.TotalFunds = *p.TotalFunds
	}
	if p.RValue != nil {
		e.inputs.RValue = *p.RValue
	}
	if p.ProfitLossRatio != nil {
		e.inputs.ProfitLossRatio = *p.ProfitLossRatio
	}
	if p.LotDefinition != nil {
		e.inputs.LotDefinition = *p.LotDefinition
	}
	if p.NominalLeverage != nil {
		e.inputs.NominalLeverage = *p.NominalLeverage
	}
	if p.OpenPrice != nil {
		e.inputs.OpenPrice = *p.OpenPrice
	}
}

func (e *Engine) Inputs() Inputs {
	return e.inputs
}

// Results 上一次成功计算的快照，没有算过则为nil
func (e *Engine) Results() *Results {
	return e.results
}

// Reset 六个输入全部归零并清掉结果快照
func (e *Engine) Reset() {
	e.inputs = Inputs{}
	e.results = nil
}

// Validate 逐条检查六个输入，所有违反项一次性收集返回，不短路
func (e *Engine) Validate() error {
	var err error
	in := e.inputs
	if !(in.TotalFunds > 0) {
		err = multierr.Append(err, fmt.Errorf("总资金必须大于0"))
	}
	if !(in.RValue > 0 && in.RValue <= 100) {
		err = multierr.Append(err, fmt.Errorf("R值必须大于0且不超过100"))
	}
	if !(in.ProfitLossRatio > 0) {
		err = multierr.Append(err, fmt.Errorf("盈亏比必须大于0"))
	}
	if !(in.LotDefinition > 0) {
		err = multierr.Append(err, fmt.Errorf("一手定义必须大于0"))
	}
	if !(in.NominalLeverage > 0) {
		err = multierr.Append(err, fmt.Errorf("名义杠杆必须大于0"))
	}
	if !(in.OpenPrice > 0) {
		err = multierr.Append(err, fmt.Errorf("开仓价格必须大于0"))
	}
	return err
}

// ValidationMessages 把Validate收集到的错误拆成逐条提示
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}
	errs := multierr.Errors(err)
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// Calculate 校验通过后按固定公式推导十七项结果并覆盖快照；
// 校验失败时返回收集到的错误且不动快照，计算期间的panic被包装成单条错误返回
func (e *Engine) Calculate() (res *Results, err error) {
	if verr := e.Validate(); verr != nil {
		return nil, verr
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.WithCode(ecode.CalcErr, "计算过程发生异常: %v", r)
		}
	}()

	in := e.inputs

	openMargin := in.TotalFunds * in.RValue / 100
	actualLeverage := openMargin * in.NominalLeverage / in.TotalFunds
	openQuantity := openMargin * in.NominalLeverage / (in.OpenPrice * in.LotDefinition)
	profitSpace := openMargin * in.ProfitLossRatio / (openQuantity * in.LotDefinition)
	lossSpace := openMargin / (openQuantity * in.LotDefinition)

	longLiquidationSpace := (in.OpenPrice - in.OpenPrice*(1-1/actualLeverage)) * e.longLiqFactor
	shortLiquidationSpace := in.OpenPrice * (1 / actualLeverage) * e.shortLiqFactor

	profitAmount := openQuantity * profitSpace * in.LotDefinition
	lossAmount := openQuantity * lossSpace * in.LotDefinition

	r := &Results{
		OpenMargin:     Round2(openMargin),
		ActualLeverage: Round2(actualLeverage),
		OpenQuantity:   Round2(openQuantity),

		LongLiquidationSpace: Round2(longLiquidationSpace),
		LongProfitSpace:      Round2(profitSpace),
		LongLossSpace:        Round2(lossSpace),
		LongProfitPrice:      Round2(in.OpenPrice + profitSpace),
		LongLossPrice:        Round2(in.OpenPrice - lossSpace),
		LongProfitAmount:     Round2(profitAmount),
		LongLossAmount:       Round2(lossAmount),

		ShortLiquidationSpace: Round2(shortLiquidationSpace),
		ShortProfitSpace:      Round2(profitSpace),
		ShortLossSpace:        Round2(lossSpace),
		ShortProfitPrice:      Round2(in.OpenPrice - profitSpace),
		ShortLossPrice:        Round2(in.OpenPrice + lossSpace),
		ShortProfitAmount:     Round2(profitAmount),
		ShortLossAmount:       Round2(lossAmount),
	}

	e.results = r
	return r, nil
}

// PatchFromStrings 把客户端的字符串键值对转成部分更新，
// 未知键忽略，解析失败的值按0处理（与前端parseFloat失败的口径一致）
func PatchFromStrings(values map[string]string) InputsPatch {
	var p InputsPatch
	for key, raw := range values {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			v = 0
		}
		val := v
		switch key {
		case consts.FieldTotalFunds:
			p.TotalFunds = &val
		case consts.FieldRValue:
			p.RValue = &val
		case consts.FieldProfitLossRatio:
			p.ProfitLossRatio = &val
		case consts.FieldLotDefinition:
			p.LotDefinition = &val
		case consts.FieldNominalLeverage:
			p.NominalLeverage = &val
		case consts.FieldOpenPrice:
			p.OpenPrice = &val
		}
	}
	return p
}

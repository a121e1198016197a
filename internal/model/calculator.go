package model

import "marginflow/internal/engine"

// 仓位计算的请求，六个字段都可选，缺省字段保持上次录入的值
type CalculateReq struct {
	TotalFunds      *float64 `json:"total_funds" form:"total_funds"`
	RValue          *float64 `json:"r_value" form:"r_value"`
	ProfitLossRatio *float64 `json:"profit_loss_ratio" form:"profit_loss_ratio"`
	LotDefinition   *float64 `json:"lot_definition" form:"lot_definition"`
	NominalLeverage *float64 `json:"nominal_leverage" form:"nominal_leverage"`
	OpenPrice       *float64 `json:"open_price" form:"open_price"`
}

// 计算响应：成功带十七项结果和展示文案，失败带逐条错误提示
type CalculateRes struct {
	Success bool              `json:"success"`
	Results *engine.Results   `json:"results,omitempty"`
	Display map[string]string `json:"display,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
}

// 最近一次录入的原始值（未校验的回显）
type InputsRes struct {
	Inputs map[string]string `json:"inputs"`
}

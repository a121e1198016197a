package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// 输入快照在redis中的key前缀
	CalcInputsPrefix = "Calc_Inputs_list:"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5
)

const (
	LanguageId    = "T-Language-Id"
	PlatformType  = "T-Platform-Type"
	ClientId      = "T-App-Id"
	ClientVersion = "T-App-Version"
	DeviceId      = "T-D-Id"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// 六个输入项在快照和展示结果中的键名
const (
	FieldTotalFunds      = "total_funds"
	FieldRValue          = "r_value"
	FieldProfitLossRatio = "profit_loss_ratio"
	FieldLotDefinition   = "lot_definition"
	FieldNominalLeverage = "nominal_leverage"
	FieldOpenPrice       = "open_price"
)

// InputFields 快照中允许出现的键，按校验顺序排列
var InputFields = []string{
	FieldTotalFunds,
	FieldRValue,
	FieldProfitLossRatio,
	FieldLotDefinition,
	FieldNominalLeverage,
	FieldOpenPrice,
}

const (
	PlatformIOS     = "iOS"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

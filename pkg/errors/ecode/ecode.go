package ecode

// 错误码定义，0表示成功
const (
	Success = 0

	Unknown            = 10001
	ValidateErr        = 10002
	TooManyRequestsErr = 10003

	// 计算引擎相关
	CalcErr  = 20001
	StoreErr = 20002
)

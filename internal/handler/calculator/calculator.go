package calculator

import (
	"marginflow/internal/consts"
	"marginflow/internal/model"
	"marginflow/internal/service"
	"marginflow/pkg/errors"
	"marginflow/pkg/errors/ecode"
	"marginflow/pkg/response"
	"marginflow/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.CalculatorService
}

func NewHandler(service service.CalculatorService) *Handler {
	return &Handler{service: service}
}

// 快照按设备维度隔离，请求头没有设备id时退化成按客户端IP隔离
func deviceIdOf(ctx *gin.Context) string {
	deviceId := ctx.GetString(consts.DeviceId)
	if deviceId == "" {
		deviceId = ctx.ClientIP()
	}
	return deviceId
}

// CalculateExec 合并本次录入并计算，返回十七项结果和展示文案
func (h *Handler) CalculateExec() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CalculateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.Translate(err)), nil)
			return
		}

		res, err := h.service.Calculate(ctx, deviceIdOf(ctx), req)
		response.JSON(ctx, err, res)
	}
}

// InputsGet 回显最近一次录入的原始值
func (h *Handler) InputsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := h.service.InputsGet(ctx, deviceIdOf(ctx))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// InputsUpdate 合并录入并持久化，不做校验
func (h *Handler) InputsUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CalculateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.Translate(err)), nil)
			return
		}

		res, err := h.service.InputsUpdate(ctx, deviceIdOf(ctx), req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// ResetExec 清空录入，六个输入回到零值
func (h *Handler) ResetExec() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		err := h.service.Reset(ctx, deviceIdOf(ctx))
		response.JSON(ctx, err, nil)
	}
}

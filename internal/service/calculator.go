package service

import (
	"context"
	"marginflow/conf"
	"marginflow/internal/consts"
	"marginflow/internal/dao"
	"marginflow/internal/engine"
	"marginflow/internal/model"
	"marginflow/pkg/errors"
	"marginflow/pkg/errors/ecode"
	"strconv"
)

var _ CalculatorService = (*calculatorService)(nil)

type CalculatorService interface {
	// NewEngine 创建一个按服务配置初始化的独立引擎实例
	NewEngine() *engine.Engine
	// Calculate 合并本次录入并持久化后执行计算；
	// 校验失败时res.Errors携带逐条提示，err携带ValidateErr错误码
	Calculate(ctx context.Context, deviceId string, req model.CalculateReq) (model.CalculateRes, error)
	// InputsGet 回显最近一次录入的原始值，可能不全或为空
	InputsGet(ctx context.Context, deviceId string) (model.InputsRes, error)
	// InputsUpdate 合并录入并持久化，这一步不做校验
	InputsUpdate(ctx context.Context, deviceId string, req model.CalculateReq) (model.InputsRes, error)
	// Reset 清空录入快照，六个输入回到零值
	Reset(ctx context.Context, deviceId string) error
}

type calculatorService struct {
	d dao.InputsStore

	longLiqFactor  float64
	shortLiqFactor float64
}

func NewCalculatorService(d dao.InputsStore, cfg conf.CalculatorConfig) *calculatorService {
	return &calculatorService{
		d:              d,
		longLiqFactor:  cfg.LongLiquidationFactor,
		shortLiqFactor: cfg.ShortLiquidationFactor,
	}
}

// NewEngine 按服务配置的安全系数创建一个独立的引擎实例
func (s *calculatorService) NewEngine() *engine.Engine {
	return engine.New(engine.WithLiquidationFactors(s.longLiqFactor, s.shortLiqFactor))
}

func (s *calculatorService) Calculate(ctx context.Context, deviceId string, req model.CalculateReq) (res model.CalculateRes, err error) {
	values, err := s.mergeAndSave(ctx, deviceId, req)
	if err != nil {
		return res, err
	}

	// 每次请求构造独立的引擎实例，实例之间不共享状态
	eng := s.NewEngine()
	eng.UpdateInputs(engine.PatchFromStrings(values))

	results, err := eng.Calculate()
	if err != nil {
		msgs := engine.ValidationMessages(err)
		res.Success = false
		res.Errors = msgs
		if errors.IsCode(err, ecode.CalcErr) {
			// 计算期间的运行时异常，单条消息
			res.Errors = []string{err.Error()}
			return res, err
		}
		return res, errors.WithCode(ecode.ValidateErr, "参数校验失败")
	}

	res.Success = true
	res.Results = results
	res.Display = engine.DisplayStrings(results)
	return res, nil
}

func (s *calculatorService) InputsGet(ctx context.Context, deviceId string) (res model.InputsRes, err error) {
	values, err := s.d.InputsLoad(ctx, deviceId)
	if err != nil {
		return res, errors.Wrap(err, ecode.StoreErr, "读取输入快照失败")
	}
	res.Inputs = values
	return res, nil
}

func (s *calculatorService) InputsUpdate(ctx context.Context, deviceId string, req model.CalculateReq) (res model.InputsRes, err error) {
	values, err := s.mergeAndSave(ctx, deviceId, req)
	if err != nil {
		return res, err
	}
	res.Inputs = values
	return res, nil
}

func (s *calculatorService) Reset(ctx context.Context, deviceId string) error {
	if err := s.d.InputsDelete(ctx, deviceId); err != nil {
		return errors.Wrap(err, ecode.StoreErr, "清空输入快照失败")
	}
	return nil
}

// mergeAndSave 读取快照、合并本次录入、原样写回。
// 存的是字符串键值对，和前端本地存储的格式保持一致
func (s *calculatorService) mergeAndSave(ctx context.Context, deviceId string, req model.CalculateReq) (map[string]string, error) {
	values, err := s.d.InputsLoad(ctx, deviceId)
	if err != nil {
		return nil, errors.Wrap(err, ecode.StoreErr, "读取输入快照失败")
	}

	merge := func(key string, v *float64) {
		if v != nil {
			values[key] = strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}
	merge(consts.FieldTotalFunds, req.TotalFunds)
	merge(consts.FieldRValue, req.RValue)
	merge(consts.FieldProfitLossRatio, req.ProfitLossRatio)
	merge(consts.FieldLotDefinition, req.LotDefinition)
	merge(consts.FieldNominalLeverage, req.NominalLeverage)
	merge(consts.FieldOpenPrice, req.OpenPrice)

	if err := s.d.InputsSave(ctx, deviceId, values); err != nil {
		return nil, errors.Wrap(err, ecode.StoreErr, "保存输入快照失败")
	}
	return values, nil
}

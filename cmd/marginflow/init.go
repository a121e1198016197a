package main

import (
	"marginflow/conf"
	"marginflow/internal/dao"
	"marginflow/internal/handler/calculator"
	"marginflow/internal/router"
	"marginflow/internal/service"
	"marginflow/pkg/cache"
	"marginflow/pkg/logger"
	"time"
)

func InitRouter() Router {
	appCfg := conf.AppConfig

	var store dao.InputsStore
	if appCfg.Redis.Addr != "" {
		cache.InitRedis(appCfg.Redis)
		ttl := time.Duration(appCfg.Calculator.SnapshotTTL) * time.Second
		store = dao.NewRedisInputsDao(cache.GetRedisClient(), ttl)
	} else {
		// 未配置redis时使用进程内存储，快照随进程丢失
		logger.Warnf("redis未配置，输入快照使用进程内存储")
		store = dao.NewMemoryInputsDao()
	}

	cs := service.NewCalculatorService(store, appCfg.Calculator)
	ch := calculator.NewHandler(cs)

	return router.NewApiRouter(ch)
}

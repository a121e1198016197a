package main

import (
	"flag"
	"log"
	"marginflow/conf"
	"marginflow/pkg/cache"
	"marginflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 启动仓位计算服务
//
/*
测试

curl -X POST http://localhost:8090/api/v1/calculator/calculate \
  -H "Content-Type: application/json" \
  -H "T-D-Id: dev-0001" \
  -d '{"total_funds":10000,"r_value":2,"profit_loss_ratio":2,"lot_definition":1,"nominal_leverage":10,"open_price":100}'

*/

func main() {

	var configPath string
	flag.StringVar(&configPath, "c", "conf/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(conf.AppConfig.Log)
	defer logger.Sync()

	if conf.AppConfig.Mode != "" {
		gin.SetMode(conf.AppConfig.Mode)
	}

	srv := NewServer(&conf.AppConfig)
	srv.RegisterOnShutdown(func() {
		cache.CloseRedis()
	})
	srv.Run(InitRouter())
}

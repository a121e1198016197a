package router

import (
	"marginflow/internal/handler/calculator"
	"marginflow/internal/handler/ping"
	"marginflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	calcHandler *calculator.Handler
}

func NewApiRouter(ch *calculator.Handler) *ApiRouter {
	return &ApiRouter{calcHandler: ch}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	c := base.Group("/calculator", middleware.AntiDuplicateMiddleware())
	{
		// 合并录入并计算
		c.POST("/calculate", api.calcHandler.CalculateExec())
		// 回显最近一次录入
		c.GET("/inputs", api.calcHandler.InputsGet())
		// 合并录入，不计算
		c.POST("/inputs", api.calcHandler.InputsUpdate())
		// 清空录入
		c.POST("/reset", api.calcHandler.ResetExec())
	}

	// 实时计算通道不走防抖中间件
	base.GET("/calculator/ws", api.calcHandler.ServeWS)
}

package middleware

import (
	"marginflow/internal/consts"
	"marginflow/pkg/response"
	"marginflow/utils/uuid"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/gin-gonic/gin"
)

// NoCache 控制客户端不要使用缓存
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, max-age=0, must-revalidate")
		c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
		c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// Options
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToUpper(c.Request.Method) != "OPTIONS" {
			c.Next()
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "authorization, origin, content-type, accept")
			c.Header("Allow", "HEAD,GET,POST,PUT,PATCH,DELETE,OPTIONS")
			c.Header("Content-State", "application/json")
			c.AbortWithStatus(http.StatusOK)
		}
	}
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-State-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// RequestId 用来设置和透传requestId
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.GenUUID16()
		c.Header("X-Request-Id", requestId)

		// 设置requestId到context中，便于后面调用链的透传
		c.Set(consts.RequestId, requestId)
		c.Next()
	}
}

func ApiBaseHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientId := c.Request.Header.Get(consts.ClientId)
		c.Set(consts.ClientId, clientId)

		clientVersion := c.Request.Header.Get(consts.ClientVersion)
		c.Set(consts.ClientVersion, clientVersion)

		// 设置设备id
		deviceId := c.Request.Header.Get(consts.DeviceId)
		c.Set(consts.DeviceId, deviceId)

		c.Next()
	}
}

// 限制缓存的最大大小为 500，且是并发安全的 LRU 缓存
var reqCache, _ = lru.New(500)

// 前端输入是逐键触发的，防抖窗口不能太大，否则正常的连续计算会被拦掉
var duplicateThreshold = 300 * time.Millisecond

// AntiDuplicateMiddleware 防止单个客户端 IP 在窗口期内重复发送同一请求
// 只应用于常规 HTTP API 路由，不应该用于websocket等实时性高的连接
func AntiDuplicateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 使用IP + 接口路径 作为key 防抖动
		key := c.ClientIP() + c.Request.URL.Path
		if value, ok := reqCache.Get(key); ok {
			lastRequestTime := value.(time.Time)

			if time.Since(lastRequestTime) < duplicateThreshold {
				// 如果是重复请求，直接返回
				response.TooManyRequests(c)
				c.Abort()
				return
			}
		}

		// 更新时间戳 (Hit 或 Miss 都会更新)
		reqCache.Add(key, time.Now())
		c.Next()
	}
}

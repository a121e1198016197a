package calculator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marginflow/conf"
	"marginflow/internal/dao"
	"marginflow/internal/handler/calculator"
	"marginflow/internal/middleware"
	"marginflow/internal/router"
	"marginflow/internal/service"
	"marginflow/pkg/errors/ecode"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	RequestId string `json:"request_id"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      struct {
		Success bool               `json:"success"`
		Results map[string]float64 `json:"results"`
		Display map[string]string  `json:"display"`
		Errors  []string           `json:"errors"`
	} `json:"data"`
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(middleware.ApiBaseHeader())

	cs := service.NewCalculatorService(dao.NewMemoryInputsDao(), conf.CalculatorConfig{})
	router.NewApiRouter(calculator.NewHandler(cs)).Load(g)
	return g
}

// doJSON 按指定的客户端地址发请求。
// 防抖缓存按IP+路径全局共享，各用例用不同地址避免互相挤进对方的窗口
func doJSON(t *testing.T, g *gin.Engine, method, path, addr, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = addr
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("T-D-Id", "dev-test")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCalculateEndpoint(t *testing.T) {
	g := newTestEngine()

	body := `{"total_funds":10000,"r_value":2,"profit_loss_ratio":2,"lot_definition":1,"nominal_leverage":10,"open_price":100}`
	w, env := doJSON(t, g, http.MethodPost, "/api/v1/calculator/calculate", "10.0.0.1:5000", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, ecode.Success, env.Code)
	require.True(t, env.Data.Success)
	require.Len(t, env.Data.Results, 17)
	require.Equal(t, 200.0, env.Data.Results["open_margin"])
	require.Equal(t, 120.0, env.Data.Results["long_profit_price"])
	require.Equal(t, "$ 200.00", env.Data.Display["open_margin"])
}

func TestCalculateEndpoint_ValidationFailure(t *testing.T) {
	g := newTestEngine()

	w, env := doJSON(t, g, http.MethodPost, "/api/v1/calculator/calculate", "10.0.0.2:5000", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, ecode.ValidateErr, env.Code)
	require.False(t, env.Data.Success)
	require.Len(t, env.Data.Errors, 6)
}

func TestInputsRoundTrip(t *testing.T) {
	g := newTestEngine()

	_, env := doJSON(t, g, http.MethodPost, "/api/v1/calculator/inputs", "10.0.0.3:5000", `{"total_funds":10000}`)
	require.Equal(t, ecode.Success, env.Code)

	// 快照按设备号隔离，换个地址读同一份快照
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calculator/inputs", nil)
	req.RemoteAddr = "10.0.0.4:5000"
	req.Header.Set("T-D-Id", "dev-test")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Code int `json:"code"`
		Data struct {
			Inputs map[string]string `json:"inputs"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "10000", out.Data.Inputs["total_funds"])
}

func TestAntiDuplicate(t *testing.T) {
	g := newTestEngine()

	body := `{"total_funds":10000}`
	w1, _ := doJSON(t, g, http.MethodPost, "/api/v1/calculator/inputs", "10.0.0.5:5000", body)
	require.Equal(t, http.StatusOK, w1.Code)

	// 同地址同路径、窗口期内的重复请求被拒掉
	w2, env2 := doJSON(t, g, http.MethodPost, "/api/v1/calculator/inputs", "10.0.0.5:5000", body)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.Equal(t, ecode.TooManyRequestsErr, env2.Code)
}

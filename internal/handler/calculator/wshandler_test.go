package calculator_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// 回推消息的结构，和HTTP接口的CalculateRes一致
type wsCalcReply struct {
	Success bool               `json:"success"`
	Results map[string]float64 `json:"results"`
	Display map[string]string  `json:"display"`
	Errors  []string           `json:"errors"`
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/calculator/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, action string, inputs map[string]string) {
	t.Helper()
	msg := map[string]interface{}{"action": action}
	if inputs != nil {
		msg["inputs"] = inputs
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func readReply(t *testing.T, conn *websocket.Conn) wsCalcReply {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply wsCalcReply
	require.NoError(t, json.Unmarshal(data, &reply))
	return reply
}

func TestServeWS_CalculateFlow(t *testing.T) {
	srv := httptest.NewServer(newTestEngine())
	defer srv.Close()

	conn := dialWS(t, srv)

	// 逐键录入：先推一部分，再补齐剩下的并触发计算
	sendWS(t, conn, "update", map[string]string{
		"total_funds": "10000",
		"r_value":     "2",
		"open_price":  "100",
	})
	sendWS(t, conn, "calculate", map[string]string{
		"profit_loss_ratio": "2",
		"lot_definition":    "1",
		"nominal_leverage":  "10",
	})

	reply := readReply(t, conn)
	require.True(t, reply.Success)
	require.Len(t, reply.Results, 17)
	require.Equal(t, 200.0, reply.Results["open_margin"])
	require.Equal(t, 120.0, reply.Results["long_profit_price"])
	require.Equal(t, 400.0, reply.Results["short_liquidation_space"])
	require.Equal(t, "$ 200.00", reply.Display["open_margin"])
	require.Empty(t, reply.Errors)
}

func TestServeWS_ResetClearsInputs(t *testing.T) {
	srv := httptest.NewServer(newTestEngine())
	defer srv.Close()

	conn := dialWS(t, srv)

	sendWS(t, conn, "calculate", map[string]string{
		"total_funds":       "10000",
		"r_value":           "2",
		"profit_loss_ratio": "2",
		"lot_definition":    "1",
		"nominal_leverage":  "10",
		"open_price":        "100",
	})
	require.True(t, readReply(t, conn).Success)

	// 重置后六个输入回到零值，再算就全部校验不过
	sendWS(t, conn, "reset", nil)
	sendWS(t, conn, "calculate", nil)

	reply := readReply(t, conn)
	require.False(t, reply.Success)
	require.Len(t, reply.Errors, 6)
	require.Nil(t, reply.Results)
}

func TestServeWS_ConnectionIsolation(t *testing.T) {
	srv := httptest.NewServer(newTestEngine())
	defer srv.Close()

	connA := dialWS(t, srv)
	connB := dialWS(t, srv)

	// A连接录满六项，B连接的引擎不受影响
	sendWS(t, connA, "update", map[string]string{
		"total_funds":       "10000",
		"r_value":           "2",
		"profit_loss_ratio": "2",
		"lot_definition":    "1",
		"nominal_leverage":  "10",
		"open_price":        "100",
	})
	sendWS(t, connA, "calculate", nil)
	require.True(t, readReply(t, connA).Success)

	sendWS(t, connB, "calculate", nil)
	replyB := readReply(t, connB)
	require.False(t, replyB.Success)
	require.Len(t, replyB.Errors, 6)
}

func TestServeWS_IgnoresMalformedMessage(t *testing.T) {
	srv := httptest.NewServer(newTestEngine())
	defer srv.Close()

	conn := dialWS(t, srv)

	// 非法JSON直接跳过，连接不断
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	sendWS(t, conn, "calculate", map[string]string{
		"total_funds":       "10000",
		"r_value":           "2",
		"profit_loss_ratio": "2",
		"lot_definition":    "1",
		"nominal_leverage":  "10",
		"open_price":        "100",
	})
	require.True(t, readReply(t, conn).Success)
}

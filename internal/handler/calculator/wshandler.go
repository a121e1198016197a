package calculator

import (
	"log"
	"net/http"
	"time"

	"marginflow/internal/engine"
	"marginflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// 实时计算通道：客户端边录入边推送，服务端即时回推计算结果。
// 每个连接持有自己的引擎实例，连接之间互不影响

// 客户端请求的消息格式
type clientMessage struct {
	Action string            `json:"action"` // update | calculate | reset
	Inputs map[string]string `json:"inputs"` // 六个输入项的字符串键值对，可以只给一部分
}

type clientConn struct {
	conn *websocket.Conn
	send chan []byte // 异步发送通道
	eng  *engine.Engine
}

const (
	// 单条消息的大小上限，六个输入项的键值对用不了1KB
	maxMessageSize = 1024
	// 读超时：窗口内收不到任何消息（含pong）就断开，避免空闲连接挂死协程
	pongWait = 60 * time.Second
	// 心跳间隔，必须小于pongWait
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
}

// ServeWS 用来接收客户端的 WebSocket 消息
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	client := &clientConn{
		conn: conn,
		send: make(chan []byte, 16),
		eng:  h.service.NewEngine(),
	}

	defer func() {
		close(client.send)
		conn.Close()
	}()

	// 不断从 send channel 取消息，然后写入 WebSocket
	go client.writePump()
	// 循环读取客户端发来的消息
	client.readPump()
}

func (c *clientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("write error:", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *clientConn) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var clientMsg clientMessage
		if err := json.Unmarshal(msg, &clientMsg); err != nil {
			log.Println("invalid message:", err)
			continue
		}

		switch clientMsg.Action {
		case "update":
			c.eng.UpdateInputs(engine.PatchFromStrings(clientMsg.Inputs))
		case "calculate":
			c.eng.UpdateInputs(engine.PatchFromStrings(clientMsg.Inputs))
			c.push(c.calculate())
		case "reset":
			c.eng.Reset()
		}
	}
}

func (c *clientConn) calculate() model.CalculateRes {
	results, err := c.eng.Calculate()
	if err != nil {
		return model.CalculateRes{
			Success: false,
			Errors:  engine.ValidationMessages(err),
		}
	}
	return model.CalculateRes{
		Success: true,
		Results: results,
		Display: engine.DisplayStrings(results),
	}
}

func (c *clientConn) push(res model.CalculateRes) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// 队列满就丢掉
	}
}

package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second

	// số sự kiện được xếp hàng cho mỗi client trước khi bị ngắt
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client gói một kết nối với hàng đợi gửi riêng; mọi ghi xuống
// socket đều đi qua writePump nên Broadcast không bao giờ chặn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub giữ các kết nối websocket của màn hình quản trị
// để đẩy đơn hàng mới và thay đổi trạng thái theo thời gian thực.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Handle nâng cấp kết nối, khởi động write pump và giữ kết nối
// đến khi client ngắt
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		util.Logger.Warn("Nâng cấp websocket thất bại", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	go cl.writePump()

	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(cl)
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

// Event là thông điệp đẩy xuống màn hình quản trị
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broadcast xếp một sự kiện vào hàng đợi của mọi client đang kết nối.
// Client đầy hàng đợi (kết nối treo) bị ngắt thay vì làm chậm caller.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		return
	}

	h.mu.Lock()
	var stalled []*client
	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			stalled = append(stalled, cl)
		}
	}
	for _, cl := range stalled {
		delete(h.clients, cl)
		close(cl.send)
		util.Logger.Warn("Ngắt websocket quản trị vì hàng đợi đầy")
	}
	h.mu.Unlock()
}

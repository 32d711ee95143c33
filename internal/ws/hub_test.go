package ws

import (
	"os"
	"testing"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

func TestBroadcastQueuesPerClient(t *testing.T) {
	h := NewHub()
	cl := &client{send: make(chan []byte, sendBuffer)}
	h.clients[cl] = true

	h.Broadcast("order_created", map[string]int{"id": 1})

	select {
	case payload := <-cl.send:
		assert.Contains(t, string(payload), "order_created")
	default:
		t.Fatal("sự kiện không được xếp vào hàng đợi client")
	}
}

func TestBroadcastDropsStalledClient(t *testing.T) {
	h := NewHub()

	// client treo: hàng đợi đã đầy và không ai đọc
	stalled := &client{send: make(chan []byte, 1)}
	stalled.send <- []byte("cu")
	h.clients[stalled] = true

	healthy := &client{send: make(chan []byte, sendBuffer)}
	h.clients[healthy] = true

	done := make(chan struct{})
	go func() {
		h.Broadcast("order_status_changed", map[string]int{"id": 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast bị chặn bởi client treo")
	}

	h.mu.Lock()
	_, stillThere := h.clients[stalled]
	_, healthyThere := h.clients[healthy]
	h.mu.Unlock()
	assert.False(t, stillThere)
	assert.True(t, healthyThere)
}

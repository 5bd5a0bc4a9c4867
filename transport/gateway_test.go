package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot/domain"
)

// fake platform gateway: accepts one connection, pushes inbound frames from
// toClient and forwards whatever the bot sends into fromClient.
func fakeGatewayServer(t *testing.T, toClient <-chan []byte, fromClient chan<- []byte) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		go func() {
			for frame := range toClient {
				if conn.WriteMessage(websocket.TextMessage, frame) != nil {
					return
				}
			}
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fromClient <- data
		}
	}))
}

func TestGateway_RoundTrip(t *testing.T) {
	t.Parallel()

	toClient := make(chan []byte, 4)
	fromClient := make(chan []byte, 4)
	srv := fakeGatewayServer(t, toClient, fromClient)
	defer srv.Close()

	g := NewGateway("ws" + strings.TrimPrefix(srv.URL, "http"))
	received := make(chan domain.IncomingMessage, 4)
	g.OnUpdate(func(_ context.Context, msg domain.IncomingMessage) {
		received <- msg
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- g.Run(ctx) }()

	// Inbound: a message frame reaches the handler, parsed as a command.
	toClient <- []byte(`{"type":"message","message":{"chatId":"chat1","from":{"id":"u1"},"text":"/guess jon snow","ts":1700000000}}`)
	select {
	case msg := <-received:
		assert.Equal(t, "chat1", msg.ChatID)
		assert.Equal(t, "guess", msg.Command)
		assert.Equal(t, "jon snow", msg.Args)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound frame never reached the handler")
	}

	// Garbage and non-message frames are dropped without killing the pump.
	toClient <- []byte(`not json`)
	toClient <- []byte(`{"type":"presence"}`)

	// Outbound: Send goes through the write pump onto the wire.
	require.NoError(t, g.Send(ctx, outboundMessage{ChatID: "chat1", Text: "hello"}))
	select {
	case data := <-fromClient:
		var m outboundMessage
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "chat1", m.ChatID)
		assert.Equal(t, "hello", m.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("outbound frame never reached the server")
	}

	// Cancellation releases Run.
	cancel()
	select {
	case <-runDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestGateway_DialFailure(t *testing.T) {
	t.Parallel()
	g := NewGateway("ws://127.0.0.1:1/gateway")
	err := g.Run(context.Background())
	assert.Error(t, err)
}

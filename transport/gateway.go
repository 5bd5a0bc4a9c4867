package transport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"bot/domain"
)

const pingInterval = time.Second * 30
const writeDeadline = time.Second * 20

// Gateway maintains the websocket connection to the chat platform. Inbound
// frames are dispatched to the update handler in their own goroutine, one slow
// chat never stalls the read pump. Outbound frames go through a buffered
// outbox drained by the write pump under a send rate limit.
type Gateway struct {
	url     string
	handler func(ctx context.Context, msg domain.IncomingMessage)

	outbox  chan outboundMessage
	limiter *rate.Limiter
}

func NewGateway(url string) *Gateway {
	return &Gateway{
		url:     url,
		outbox:  make(chan outboundMessage, 256),
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}
}

func (g *Gateway) OnUpdate(handler func(ctx context.Context, msg domain.IncomingMessage)) {
	g.handler = handler
}

// Send enqueues one outbound frame. It blocks while the outbox is full so
// backpressure reaches the caller instead of silently dropping replies.
func (g *Gateway) Send(ctx context.Context, m outboundMessage) error {
	select {
	case g.outbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run dials the gateway and pumps frames until the connection drops or ctx is
// cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return err
	}

	conn.SetReadDeadline(time.Now().Add(time.Minute))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(time.Minute))
		return nil
	})

	writerDone := make(chan struct{})
	stopWriter := make(chan struct{})
	go g.writePump(ctx, conn, stopWriter, writerDone)
	defer func() {
		close(stopWriter)
		conn.Close()
		<-writerDone
	}()

	log.Info().Str("url", g.url).Msg("gateway connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var event inboundEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Warn().Err(err).Msg("dropping malformed gateway frame")
			continue
		}
		if event.Type != "message" || event.Message == nil || g.handler == nil {
			continue
		}
		go g.handler(ctx, event.Message.toIncoming())
	}
}

func (g *Gateway) writePump(ctx context.Context, conn *websocket.Conn, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case m := <-g.outbox:
			if err := g.limiter.Wait(ctx); err != nil {
				return
			}
			data, err := json.Marshal(m)
			if err != nil {
				log.Error().Err(err).Str("chat_id", m.ChatID).Msg("outbound frame marshal failed")
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

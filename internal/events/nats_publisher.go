package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

const (
	// StreamName is the durable JetStream stream all auction events land on.
	StreamName = "BIDWAR_EVENTS"

	publishTimeout = 5 * time.Second
)

// NATSPublisher publishes events onto a JetStream stream keyed by routing
// key. The connection is established lazily on first publish; after any
// dial or publish failure the connection is torn down and re-dialing is
// deferred until the reconnect backoff has elapsed. Safe for concurrent use.
type NATSPublisher struct {
	url     string
	backoff time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	conn    *nats.Conn
	js      jetstream.JetStream
	retryAt time.Time
	closed  bool
}

func NewNATSPublisher(url string, backoff time.Duration, log *zap.Logger) *NATSPublisher {
	return &NATSPublisher{
		url:     url,
		backoff: backoff,
		log:     log,
	}
}

// Publish marshals payload and publishes it under routingKey. Failures are
// logged and swallowed: the auction store write that preceded this call is
// the durability boundary, event delivery is best-effort notification.
func (p *NATSPublisher) Publish(ctx context.Context, routingKey string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("event_marshal_failed", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}

	js, err := p.stream()
	if err != nil {
		p.log.Warn("event_bus_unavailable",
			zap.String("routing_key", routingKey),
			zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if _, err := js.Publish(pubCtx, routingKey, data); err != nil {
		p.log.Warn("event_publish_failed",
			zap.String("routing_key", routingKey),
			zap.Error(err))
		p.teardown()
		return
	}

	p.log.Debug("event_published", zap.String("routing_key", routingKey))
}

// Close shuts the connection down; subsequent publishes are dropped.
func (p *NATSPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.js = nil
	}
}

// stream returns a live JetStream context, dialing if necessary. Only one
// caller dials at a time; while the backoff window is open every caller
// fails fast instead of piling up connection attempts.
func (p *NATSPublisher) stream() (jetstream.JetStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nats.ErrConnectionClosed
	}
	if p.js != nil && p.conn != nil && p.conn.IsConnected() {
		return p.js, nil
	}
	if time.Now().Before(p.retryAt) {
		return nil, nats.ErrConnectionReconnecting
	}

	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.js = nil
	}

	conn, err := nats.Connect(p.url,
		nats.RetryOnFailedConnect(false),
		nats.Timeout(publishTimeout),
	)
	if err != nil {
		p.retryAt = time.Now().Add(p.backoff)
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		p.retryAt = time.Now().Add(p.backoff)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Auction lifecycle and bid events",
		Subjects:    []string{"auction.>", "bid.>"},
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		conn.Close()
		p.retryAt = time.Now().Add(p.backoff)
		return nil, err
	}

	p.conn = conn
	p.js = js
	p.log.Info("event_bus_connected", zap.String("url", p.url), zap.String("stream", StreamName))
	return p.js, nil
}

func (p *NATSPublisher) teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		p.conn.Close()
	}
	p.conn = nil
	p.js = nil
	p.retryAt = time.Now().Add(p.backoff)
}

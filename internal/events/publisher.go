// Package events publishes turn analytics to NATS JetStream. Publishing
// is best-effort and optional: a nil *Publisher is a valid no-op, and a
// failed publish never fails the turn that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

const (
	// StreamName is the name of the turn analytics stream.
	StreamName = "SHOP_TURNS"

	// SubjectPrefix is the prefix for all turn subjects.
	SubjectPrefix = "shop.turns"
)

// Config holds NATS connection configuration.
type Config struct {
	URL   string
	Token string
}

// Publisher wraps a NATS connection and JetStream context.
type Publisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
	log  *logger.Logger
}

// Connect establishes a connection to NATS and ensures the turn stream
// exists.
func Connect(ctx context.Context, cfg Config, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{conn: nc, js: js, log: log}
	if err := p.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	if _, err := p.js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Shopping assistant turn analytics",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// PublishTurn publishes a turn event. Safe on a nil publisher.
func (p *Publisher) PublishTurn(ctx context.Context, ev *model.TurnEvent) {
	if p == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("failed to marshal turn event", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("%s.%s", SubjectPrefix, ev.Type)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		p.log.Warn("failed to publish turn event", zap.String("subject", subject), zap.Error(err))
	}
}

// IsConnected reports whether the underlying connection is up.
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close closes the NATS connection. Safe on a nil publisher.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"teamsync/internal/config"
	"teamsync/internal/util/logger"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("event bus is not connected")

// Bus publishes JSON encoded events over a core NATS connection.
type Bus struct {
	conn *nats.Conn
}

var (
	bus     *Bus
	busOnce sync.Once
)

// GetBus connects on first use. It returns nil when NATS_URL is empty or the
// server cannot be reached, in which case events are dropped.
func GetBus() *Bus {
	busOnce.Do(func() {
		url := config.GetEnv().NatsURL
		if url == "" {
			return
		}

		connected, err := New(url, nats.Name("teamsync"), nats.MaxReconnects(-1), nats.ReconnectWait(2*time.Second))
		if err != nil {
			logger.GetLogger().Warn("Failed to connect to NATS, team events will not be published", "error", err)
			return
		}

		bus = connected
	})

	return bus
}

func New(url string, opts ...nats.Option) (*Bus, error) {
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &Bus{conn: conn}, nil
}

func (b *Bus) Close() {
	if b == nil {
		return
	}

	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

func (b *Bus) Publish(ctx context.Context, subject string, v any) error {
	if b == nil {
		return ErrNotConnected
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return b.conn.Publish(subject, data)
}

// Ping round-trips to the server so a stale connection is reported.
func (b *Bus) Ping(timeout time.Duration) error {
	if b == nil {
		return ErrNotConnected
	}

	if !b.conn.IsConnected() {
		return ErrNotConnected
	}

	return b.conn.FlushTimeout(timeout)
}

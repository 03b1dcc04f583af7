package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// PGListener subscribes to a postgres NOTIFY channel fed by the products trigger.
type PGListener struct {
	DSN     string
	Channel string
}

func NewPGListener(dsn, channel string) *PGListener {
	return &PGListener{DSN: dsn, Channel: channel}
}

func (p *PGListener) Name() string { return SourcePostgres }

func (p *PGListener) Run(ctx context.Context, out chan<- Event) error {
	l := logging.FromContext(ctx).With("source", SourcePostgres, "channel", p.Channel)

	listener := pq.NewListener(p.DSN, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.Warn("pg_listener_event", "event", int(ev), "error", err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(p.Channel); err != nil {
		return fmt.Errorf("listen %s: %w", p.Channel, err)
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect: notifications may have been lost, so refetch.
			if n == nil {
				emit(out, Event{Source: SourcePostgres, Op: "RECONNECT"})
				continue
			}
			emit(out, parseNotification(n.Extra))
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					l.Warn("pg_listener_ping_failed", "error", err)
				}
			}()
		}
	}
}

func parseNotification(payload string) Event {
	var body struct {
		Op string `json:"op"`
		ID string `json:"id"`
	}
	ev := Event{Source: SourcePostgres}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return ev
	}
	ev.Op = normalizeOp(body.Op)
	ev.ProductID = body.ID
	return ev
}

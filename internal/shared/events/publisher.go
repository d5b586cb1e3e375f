package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"

	"github.com/nats-io/nats.go"
)

// Event types
const (
	Created = "created"
	Updated = "updated"
	Status  = "status"
	Deleted = "deleted"
)

// Event is the payload published after a committed write.
type Event struct {
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
	Actor      string    `json:"actor,omitempty"`
}

// Publisher emits lifecycle events. Implementations never fail the caller's write:
// delivery problems are logged.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close()
}

// Subject returns the subject event is published on: {prefix}.{entity}.{type}
func Subject(prefix string, event Event) string {
	return strings.Join([]string{prefix, event.Entity, event.Type}, ".")
}

// Stamp fills the time and the request id and actor carried by ctx, keeping values already set.
func Stamp(ctx context.Context, event Event) Event {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = logger.RequestID(ctx)
	}
	if event.Actor == "" {
		event.Actor = logger.Actor(ctx)
	}
	return event
}

// NATSPublisher publishes events as JSON on a NATS connection.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("budget-admin-api"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS 연결 끊김", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS 재연결", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("NATS 연결 실패: %w", err)
	}

	slog.Info("NATS 연결 성공", "url", nc.ConnectedUrl(), "prefix", prefix)
	return &NATSPublisher{nc: nc, prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) {
	log := logger.FromContext(ctx)

	event = Stamp(ctx, event)
	subject := Subject(p.prefix, event)

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("이벤트 직렬화 실패", "subject", subject, "error", err)
		return
	}

	if err := p.nc.Publish(subject, data); err != nil {
		log.Warn("이벤트 발행 실패", "subject", subject, "error", err)
		return
	}
	log.Debug("이벤트 발행", "subject", subject, "id", event.ID)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		slog.Warn("NATS drain 실패", "error", err)
		p.nc.Close()
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
func (Nop) Close()                         {}

// New returns a NATS publisher when url is set, otherwise Nop.
func New(url, prefix string) (Publisher, error) {
	if url == "" {
		slog.Info("NATS_URL 미설정 - 이벤트 발행 비활성화")
		return Nop{}, nil
	}
	p, err := NewNATSPublisher(url, prefix)
	if err != nil {
		return nil, err
	}
	return p, nil
}

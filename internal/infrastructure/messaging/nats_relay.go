package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/pkg/retry"
)

// NATS subject layout. Each domain event type maps to its own subject so
// downstream services can subscribe to exactly what they need.
const (
	// SubjectEventPrefix is prepended to the event type, e.g.
	// "roomie.events.profile.registered".
	SubjectEventPrefix = "roomie.events."

	// SubjectEventWildcard matches every relayed domain event.
	SubjectEventWildcard = "roomie.events.>"
)

// SubjectFor returns the NATS subject for an event type.
func SubjectFor(eventType shared.EventType) string {
	return SubjectEventPrefix + string(eventType)
}

// NATSRelayConfig holds NATS connection settings for the event relay.
type NATSRelayConfig struct {
	URL           string
	Name          string
	ReconnectWait time.Duration

	// MaxReconnects is the reconnect attempt limit (-1 for infinite).
	MaxReconnects int

	Logger *slog.Logger
}

// DefaultNATSRelayConfig returns sensible defaults.
func DefaultNATSRelayConfig() NATSRelayConfig {
	return NATSRelayConfig{
		URL:           nats.DefaultURL,
		Name:          "roomie-hub",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

// eventEnvelope is the wire format for relayed events.
type eventEnvelope struct {
	InstanceID  string                 `json:"instance_id"`
	EventType   shared.EventType       `json:"event_type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload"`
}

// NATSRelay mirrors domain events between the in-process bus and NATS.
// Outbound: every local event is published to its subject. Inbound: events
// relayed by other instances are replayed on the local bus, with this
// instance's own messages filtered out.
type NATSRelay struct {
	conn       *nats.Conn
	instanceID string
	logger     *slog.Logger
	retrier    *retry.Retrier

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATSRelay connects to NATS and returns a ready relay.
func NewNATSRelay(config NATSRelayConfig) (*NATSRelay, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	logger := config.Logger

	opts := []nats.Option{
		nats.Name(config.Name),
		nats.ReconnectWait(config.ReconnectWait),
		nats.MaxReconnects(config.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("nats connection closed")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Info("nats connected", "url", nc.ConnectedUrl())

	return &NATSRelay{
		conn:       nc,
		instanceID: uuid.NewString(),
		logger:     logger,
		retrier:    retry.PublishRetrier(),
	}, nil
}

// AttachTo starts relaying the bus's events to NATS.
func (r *NATSRelay) AttachTo(bus shared.EventBus) error {
	return bus.SubscribeAll(r.relay)
}

// relay publishes one domain event to its NATS subject.
func (r *NATSRelay) relay(event shared.Event) error {
	envelope := eventEnvelope{
		InstanceID:  r.instanceID,
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event.Payload(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	subject := SubjectFor(event.EventType())
	return r.retrier.Do(context.Background(), func(_ context.Context) error {
		return r.conn.Publish(subject, data)
	})
}

// ListenRemote replays events relayed by other instances onto bus. Events
// that originated here are skipped so local handlers do not run twice.
func (r *NATSRelay) ListenRemote(bus shared.EventBus) error {
	sub, err := r.conn.Subscribe(SubjectEventWildcard, func(msg *nats.Msg) {
		var envelope eventEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			r.logger.Error("bad event envelope", "subject", msg.Subject, "error", err)
			return
		}
		if envelope.InstanceID == r.instanceID {
			return
		}

		event := &remoteEvent{
			eventType:   envelope.EventType,
			aggregateID: envelope.AggregateID,
			occurredAt:  envelope.OccurredAt,
			payload:     envelope.Payload,
		}
		if err := bus.Publish(event); err != nil && !errors.Is(err, ErrEventBusClosed) {
			r.logger.Error("replay remote event", "event_type", envelope.EventType, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", SubjectEventWildcard, err)
	}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()
	return nil
}

// Close drains subscriptions and the connection.
func (r *NATSRelay) Close() {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	r.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Drain(); err != nil && !strings.Contains(err.Error(), "invalid subscription") {
			r.logger.Warn("nats drain subscription", "error", err)
		}
	}
	if err := r.conn.Drain(); err != nil {
		r.logger.Warn("nats drain connection", "error", err)
	}
}

// remoteEvent reconstructs an event received over NATS.
type remoteEvent struct {
	eventType   shared.EventType
	aggregateID string
	occurredAt  time.Time
	payload     map[string]interface{}
}

func (e *remoteEvent) EventType() shared.EventType     { return e.eventType }
func (e *remoteEvent) AggregateID() string             { return e.aggregateID }
func (e *remoteEvent) OccurredAt() time.Time           { return e.occurredAt }
func (e *remoteEvent) Payload() map[string]interface{} { return e.payload }

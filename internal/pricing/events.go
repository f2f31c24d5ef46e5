package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
)

const (
	EventConfigurationSaved = "pricing_configuration.saved"
	defaultPublishTimeout   = 5 * time.Second
)

// EventPublisher announces configuration changes.
type EventPublisher interface {
	PublishConfigurationSaved(ctx context.Context, cfg PricingConfiguration) error
}

// ConfigurationSavedEvent is the JSON payload of a saved-configuration message.
type ConfigurationSavedEvent struct {
	EventID       string               `json:"eventId"`
	EventType     string               `json:"eventType"`
	OccurredAt    time.Time            `json:"occurredAt"`
	Configuration PricingConfiguration `json:"configuration"`
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type pubsubPublisher struct {
	pub     publisher
	timeout time.Duration
	now     func() time.Time
}

// NewPubSubPublisher wraps a Pub/Sub topic publisher. A nil publisher yields nil.
func NewPubSubPublisher(p *gcppubsub.Publisher) EventPublisher {
	if p == nil {
		return nil
	}
	return newPublisher(&gcpPublisher{Publisher: p})
}

func newPublisher(pub publisher) *pubsubPublisher {
	return &pubsubPublisher{pub: pub, timeout: defaultPublishTimeout, now: time.Now}
}

func (p *pubsubPublisher) PublishConfigurationSaved(ctx context.Context, cfg PricingConfiguration) error {
	event := ConfigurationSavedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventConfigurationSaved,
		OccurredAt:    p.now().UTC(),
		Configuration: cfg,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", EventConfigurationSaved, err)
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":    event.EventID,
			"event_type":  event.EventType,
			"property_id": cfg.PropertyID,
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	result := p.pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish %s: %w", EventConfigurationSaved, err)
	}
	return nil
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}

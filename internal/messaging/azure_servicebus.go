package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/config"
	"example.com/fleet/services/rental/internal/models"
)

// Rental event types published on the queue
const (
	EventRentalCreated  = "rental.created"
	EventRentalReplaced = "rental.replaced"
	EventRentalDeleted  = "rental.deleted"
)

// RentalEvent is the message body published for rental lifecycle changes
type RentalEvent struct {
	ID       uuid.UUID          `json:"id"`
	Type     string             `json:"type"`
	RentalID uint               `json:"rental_id"`
	Occurred time.Time          `json:"occurred"`
	Rental   *models.RentalView `json:"rental,omitempty"`
}

// NewRentalEvent builds an event for a rental change
func NewRentalEvent(eventType string, rentalID uint, view *models.RentalView) *RentalEvent {
	return &RentalEvent{
		ID:       uuid.New(),
		Type:     eventType,
		RentalID: rentalID,
		Occurred: time.Now().UTC(),
		Rental:   view,
	}
}

// ServiceBusClient is an interface for Azure Service Bus operations
type ServiceBusClient interface {
	SendEvent(ctx context.Context, event *RentalEvent) error
	ProcessMessages(ctx context.Context, handler func(ctx context.Context, event *RentalEvent) error) error
	Close() error
}

// serviceBusClient implements the ServiceBusClient interface
type serviceBusClient struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	queueName string
}

// NewServiceBusClient creates a new Azure Service Bus client
func NewServiceBusClient(cfg config.AzureConfig) (ServiceBusClient, error) {
	if cfg.QueueConnStr == "" {
		return nil, fmt.Errorf("Azure Service Bus connection string is empty")
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.QueueConnStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus client: %w", err)
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus sender: %w", err)
	}

	return &serviceBusClient{
		client:    client,
		sender:    sender,
		queueName: cfg.QueueName,
	}, nil
}

// SendEvent sends a rental event to the Service Bus queue
func (s *serviceBusClient) SendEvent(ctx context.Context, event *RentalEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	msg := &azservicebus.Message{
		Body: data,
		ApplicationProperties: map[string]interface{}{
			"type": event.Type,
			"time": event.Occurred.Format(time.RFC3339),
		},
	}

	return s.sender.SendMessage(ctx, msg, nil)
}

// ProcessMessages receives rental events from the queue and dispatches
// them to the handler until the context is cancelled. Messages the
// handler rejects are abandoned so the queue can redeliver them.
func (s *serviceBusClient) ProcessMessages(ctx context.Context, handler func(ctx context.Context, event *RentalEvent) error) error {
	receiver, err := s.client.NewReceiverForQueue(s.queueName, &azservicebus.ReceiverOptions{
		ReceiveMode: azservicebus.ReceiveModePeekLock,
	})
	if err != nil {
		return fmt.Errorf("failed to create receiver for queue %s: %w", s.queueName, err)
	}
	defer receiver.Close(context.Background())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		messages, err := receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to receive messages: %w", err)
		}

		for _, msg := range messages {
			var event RentalEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Error().Err(err).Msg("Discarding malformed rental event")
				_ = receiver.DeadLetterMessage(ctx, msg, nil)
				continue
			}

			if err := handler(ctx, &event); err != nil {
				log.Error().Err(err).Str("event_type", event.Type).Uint("rental_id", event.RentalID).
					Msg("Failed to process rental event")
				_ = receiver.AbandonMessage(ctx, msg, nil)
				continue
			}

			if err := receiver.CompleteMessage(ctx, msg, nil); err != nil {
				log.Error().Err(err).Msg("Failed to complete rental event message")
			}
		}
	}
}

// Close closes the Service Bus client
func (s *serviceBusClient) Close() error {
	if s.sender != nil {
		if err := s.sender.Close(context.Background()); err != nil {
			return err
		}
	}

	if s.client != nil {
		return s.client.Close(context.Background())
	}

	return nil
}

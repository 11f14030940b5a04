package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/allin1appd-sys/zenchair/internal/logger"
	"github.com/allin1appd-sys/zenchair/internal/metrics"
)

const queueKey = "booking_events"

const (
	TypeBookingCreated   = "booking_created"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

// Event is the booking-state-changed payload consumed by the
// notification collaborator.
type Event struct {
	ShopID    int       `json:"shop_id"`
	BookingID int       `json:"booking_id"`
	EventType string    `json:"event_type"`
	Created   time.Time `json:"created"`
}

type Emitter struct {
	redis *redis.Client
}

func NewEmitter(redisAddr string) *Emitter {
	return &Emitter{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

// NewEmitterWithClient is used by tests to inject a mock client.
func NewEmitterWithClient(client *redis.Client) *Emitter {
	return &Emitter{redis: client}
}

// Publish queues a booking state change. Failures are reported to the
// caller but bookings must not be rolled back over them; the booking
// service logs and continues.
func (e *Emitter) Publish(ctx context.Context, shopID, bookingID int, eventType string) error {
	event := Event{
		ShopID:    shopID,
		BookingID: bookingID,
		EventType: eventType,
		Created:   time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		metrics.RecordBookingEvent(eventType, "error")
		return err
	}

	if err := e.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordBookingEvent(eventType, "error")
		logger.Errorf("Failed to queue %s event for booking %d: %v", eventType, bookingID, err)
		return err
	}

	metrics.RecordBookingEvent(eventType, "queued")
	logger.Info("Booking event queued",
		"event_type", eventType,
		"shop_id", shopID,
		"booking_id", bookingID,
	)
	return nil
}

func (e *Emitter) Close() error {
	return e.redis.Close()
}

// HandlerFunc receives dequeued events. The default consumer in this
// process just logs; a push/socket collaborator would register its own.
type HandlerFunc func(ctx context.Context, event Event)

type Consumer struct {
	redis   *redis.Client
	handler HandlerFunc
}

func NewConsumer(redisAddr string, handler HandlerFunc) *Consumer {
	if handler == nil {
		handler = func(ctx context.Context, event Event) {
			logger.Info("Booking event",
				"event_type", event.EventType,
				"shop_id", event.ShopID,
				"booking_id", event.BookingID,
			)
		}
	}
	return &Consumer{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		handler: handler,
	}
}

// Start blocks on the queue until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	logger.Info("Booking event consumer started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Booking event consumer stopped")
			return
		default:
			c.processNext(ctx)
		}
	}
}

func (c *Consumer) processNext(ctx context.Context) {
	result, err := c.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var event Event
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		logger.Errorf("Bad booking event data: %v", err)
		return
	}

	c.handler(ctx, event)
}

func (c *Consumer) Close() error {
	return c.redis.Close()
}

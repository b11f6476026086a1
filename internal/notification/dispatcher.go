package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/metrics"
)

// DefaultSendTimeout bounds a single delivery attempt
const DefaultSendTimeout = 10 * time.Second

// Dispatcher hands status changes to an async bus subscriber which fans
// them out to every sender. Each change gets at most one attempt per sender.
type Dispatcher struct {
	bus     EventBus.Bus
	senders []Sender
	timeout time.Duration
}

// NewDispatcher subscribes a dispatcher to bus.
func NewDispatcher(bus EventBus.Bus, timeout time.Duration, senders ...Sender) (*Dispatcher, error) {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	d := &Dispatcher{bus: bus, senders: senders, timeout: timeout}
	if err := bus.SubscribeAsync(StatusChangedTopic, d.handle, false); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", StatusChangedTopic, err)
	}
	return d, nil
}

// NotifyStatusChanged queues event and returns immediately.
func (d *Dispatcher) NotifyStatusChanged(event StatusChanged) {
	d.bus.Publish(StatusChangedTopic, event)
}

// Wait blocks until every queued event has been handled.
func (d *Dispatcher) Wait() {
	d.bus.WaitAsync()
}

func (d *Dispatcher) handle(event StatusChanged) {
	for _, s := range d.senders {
		d.send(s, event)
	}
}

func (d *Dispatcher) send(s Sender, event StatusChanged) {
	logger := log.WithFields(log.Fields{
		"error_type":     "notification",
		"sender":         s.Name(),
		"application_id": event.ApplicationID,
	})
	defer func() {
		if r := recover(); r != nil {
			metrics.NotificationsSent.WithLabelValues(s.Name(), "failed").Inc()
			logger.Errorf("notification sender panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := s.Send(ctx, event); err != nil {
		metrics.NotificationsSent.WithLabelValues(s.Name(), "failed").Inc()
		logger.Errorf("failed to deliver status change: %v", err)
		return
	}
	metrics.NotificationsSent.WithLabelValues(s.Name(), "sent").Inc()
}

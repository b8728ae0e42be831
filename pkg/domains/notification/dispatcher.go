package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/restobook/pkg/dtos"
	"github.com/rs/zerolog/log"
)

// Channel delivers a rendered message to one medium.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

type Options struct {
	Template    string
	Workers     int
	QueueSize   int
	Location    *time.Location
	SendTimeout time.Duration
}

// Dispatcher renders and sends confirmations on its own workers so callers
// never wait on delivery. Failures are logged and counted, never returned.
type Dispatcher struct {
	templates TemplateRepository
	channels  []Channel
	opts      Options

	queue  chan dtos.ReservationDetails
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(templates TemplateRepository, channels []Channel, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 30 * time.Second
	}

	d := &Dispatcher{
		templates: templates,
		channels:  channels,
		opts:      opts,
		queue:     make(chan dtos.ReservationDetails, opts.QueueSize),
	}
	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Notify enqueues details without blocking. A full or closed queue drops it.
func (d *Dispatcher) Notify(details dtos.ReservationDetails) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Uint("reservation_id", details.ReservationID).Msg("notification dispatcher closed, dropping confirmation")
		notificationsTotal.WithLabelValues("queue", resultDropped).Inc()
		return
	}

	select {
	case d.queue <- details:
	default:
		log.Warn().Uint("reservation_id", details.ReservationID).Msg("notification queue full, dropping confirmation")
		notificationsTotal.WithLabelValues("queue", resultDropped).Inc()
	}
}

// Close stops accepting work and waits for queued confirmations to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for details := range d.queue {
		d.deliver(details)
	}
}

func (d *Dispatcher) deliver(details dtos.ReservationDetails) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opts.SendTimeout)
	defer cancel()

	tpl, err := d.templates.FindByName(ctx, d.opts.Template)
	if err != nil {
		log.Error().Err(err).
			Uint("reservation_id", details.ReservationID).
			Str("template", d.opts.Template).
			Msg("confirmation template unavailable")
		notificationsTotal.WithLabelValues("template", resultFailed).Inc()
		return
	}

	msg := Render(tpl, details, d.opts.Location)
	msg.ID = uuid.NewString()

	for _, ch := range d.channels {
		if err := ch.Send(ctx, msg); err != nil {
			log.Error().Err(err).
				Str("notification_id", msg.ID).
				Str("channel", ch.Name()).
				Uint("reservation_id", msg.ReservationID).
				Msg("failed to send confirmation")
			notificationsTotal.WithLabelValues(ch.Name(), resultFailed).Inc()
			continue
		}
		notificationsTotal.WithLabelValues(ch.Name(), resultSent).Inc()
	}
}

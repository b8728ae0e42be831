package notification

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/restobook/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const (
	ChannelLog      = "log"
	ChannelSMTP     = "smtp"
	ChannelWhatsApp = "whatsapp"
)

// BuildChannels constructs the configured channels once at startup. The
// returned cleanup releases whatever the channels hold open.
func BuildChannels(ctx context.Context, cfg config.Notification) ([]Channel, func(), error) {
	var (
		channels []Channel
		closers  []func()
	)
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range cfg.Channels {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ChannelLog:
			channels = append(channels, LogChannel{})
		case ChannelSMTP:
			ch, err := NewSMTPChannel(cfg.SMTP)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			channels = append(channels, ch)
		case ChannelWhatsApp:
			ch, err := NewWhatsAppChannel(ctx, cfg.WhatsApp)
			if err != nil {
				log.Warn().Err(err).Msg("whatsapp channel disabled")
				continue
			}
			channels = append(channels, ch)
			closers = append(closers, ch.Close)
		default:
			cleanup()
			return nil, nil, fmt.Errorf("unknown notification channel %q", name)
		}
	}
	return channels, cleanup, nil
}

// LogChannel writes the rendered confirmation to the structured log.
type LogChannel struct{}

func (LogChannel) Name() string { return ChannelLog }

func (LogChannel) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("notification_id", msg.ID).
		Uint("reservation_id", msg.ReservationID).
		Str("to", msg.Email).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("reservation confirmation")
	return nil
}

// SMTPChannel mails the confirmation to the reservation e-mail address. Each
// send dials its own connection bounded by the caller's deadline.
type SMTPChannel struct {
	host string
	from string
	opts []mail.Option
}

func NewSMTPChannel(cfg config.SMTP) (*SMTPChannel, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp channel needs host and from address")
	}
	port := 587
	if cfg.Port != "" {
		p, err := strconv.Atoi(cfg.Port)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp port %q: %w", cfg.Port, err)
		}
		port = p
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(dialWithDeadline),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}

	ch := &SMTPChannel{host: cfg.Host, from: cfg.From, opts: opts}
	// surface bad options at startup rather than on the first booking
	if _, err := mail.NewClient(ch.host, ch.opts...); err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return ch, nil
}

func (c *SMTPChannel) Name() string { return ChannelSMTP }

func (c *SMTPChannel) Send(ctx context.Context, msg Message) error {
	if msg.Email == "" {
		return fmt.Errorf("reservation %d has no e-mail address", msg.ReservationID)
	}
	m, err := c.compose(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(c.host, c.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (c *SMTPChannel) compose(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat("Restaurant", c.from); err != nil {
		return nil, fmt.Errorf("smtp from %q: %w", c.from, err)
	}
	if err := m.To(msg.Email); err != nil {
		return nil, fmt.Errorf("smtp recipient %q: %w", msg.Email, err)
	}
	m.Subject(msg.Subject)
	if msg.ID != "" {
		m.SetGenHeader(mail.Header("X-Notification-Id"), msg.ID)
	}
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// dialWithDeadline applies the context deadline to the connection itself so a
// server that accepts and then goes quiet cannot hold a worker.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/restobook/pkg/config"
	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

var ErrWhatsAppNotPaired = errors.New("whatsapp session has not been paired")

var nonDigits = regexp.MustCompile(`[^\d]`)

// WhatsAppChannel sends the confirmation body to the reservation phone through
// a session that was paired ahead of time and stored in a sqlite file.
type WhatsAppChannel struct {
	client *whatsmeow.Client
}

func NewWhatsAppChannel(ctx context.Context, cfg config.WhatsApp) (*WhatsAppChannel, error) {
	if cfg.SessionPath == "" {
		return nil, fmt.Errorf("whatsapp session_path is not configured")
	}

	clientLog := waLog.Stdout("WhatsApp", "INFO", true)
	container, err := sqlstore.New(ctx, "sqlite", "file:"+cfg.SessionPath+"?_pragma=foreign_keys(1)", clientLog)
	if err != nil {
		return nil, fmt.Errorf("open whatsapp session store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load whatsapp device: %w", err)
	}
	if device.ID == nil {
		return nil, ErrWhatsAppNotPaired
	}

	client := whatsmeow.NewClient(device, clientLog)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect whatsapp: %w", err)
	}

	log.Info().Str("device", device.ID.String()).Msg("whatsapp channel connected")
	return &WhatsAppChannel{client: client}, nil
}

func (c *WhatsAppChannel) Name() string { return ChannelWhatsApp }

func (c *WhatsAppChannel) Send(ctx context.Context, msg Message) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("whatsapp websocket not connected")
	}

	recipient, err := PhoneToJID(msg.Phone)
	if err != nil {
		return err
	}

	resp, err := c.client.SendMessage(ctx, recipient, &waProto.Message{
		Conversation: proto.String(msg.Subject + "\n\n" + msg.Body),
	})
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}

	log.Debug().
		Str("notification_id", msg.ID).
		Str("message_id", resp.ID).
		Msg("whatsapp confirmation sent")
	return nil
}

func (c *WhatsAppChannel) Close() {
	c.client.Disconnect()
}

// PhoneToJID turns a free-form phone number into a WhatsApp user JID. The
// number must carry its country code, so at least 10 digits are required.
func PhoneToJID(phone string) (waTypes.JID, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(phone), "")
	if len(digits) < 10 {
		return waTypes.JID{}, fmt.Errorf("invalid phone number %q: too short", phone)
	}
	return waTypes.NewJID(digits, waTypes.DefaultUserServer), nil
}

package notification

import (
	"strconv"
	"strings"
	"time"

	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/entities"
)

const (
	DateLayout = "1/2/2006"
	TimeLayout = "03:04 PM"
)

// Message is a rendered confirmation ready for any channel.
type Message struct {
	ID            string
	ReservationID uint
	Email         string
	Phone         string
	Subject       string
	Body          string
}

// Render fills the template placeholders. Only the first occurrence of each
// placeholder is replaced; later ones are left as written.
func Render(tpl entities.EmailTemplate, d dtos.ReservationDetails, loc *time.Location) Message {
	if loc == nil {
		loc = time.UTC
	}
	local := d.ReservationTime.In(loc)

	body := tpl.Body
	body = strings.Replace(body, "{name}", d.Name, 1)
	body = strings.Replace(body, "{party_size}", strconv.Itoa(d.PartySize), 1)
	body = strings.Replace(body, "{date}", local.Format(DateLayout), 1)
	body = strings.Replace(body, "{time}", local.Format(TimeLayout), 1)

	return Message{
		ReservationID: d.ReservationID,
		Email:         d.Email,
		Phone:         d.Phone,
		Subject:       tpl.Subject,
		Body:          body,
	}
}

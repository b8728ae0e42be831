package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/auth"
	"github.com/restobook/pkg/domains/reservation"
	"github.com/restobook/pkg/domains/settings"
	"github.com/rs/zerolog/log"
)

// fail maps domain errors to status codes. Anything unrecognised is a 500
// carrying the error text.
func fail(c *gin.Context, err error) {
	status, message := 500, err.Error()

	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		status, message = 409, constant.EMAIL_IN_USE
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, message = 401, constant.INVALID_CREDENTIALS
	case errors.Is(err, reservation.ErrInvalidPartySize):
		status, message = 400, constant.INVALID_PARTY_SIZE
	case errors.Is(err, reservation.ErrInvalidTime):
		status, message = 400, constant.INVALID_RESERVATION_TIME
	case errors.Is(err, reservation.ErrMissingPhone):
		status, message = 400, constant.MISSING_PHONE
	case errors.Is(err, reservation.ErrInvalidRange):
		status, message = 400, constant.INVALID_DATE_RANGE
	case errors.Is(err, reservation.ErrSlotFull):
		status, message = 409, constant.SLOT_FULL
	case errors.Is(err, reservation.ErrUserNotFound):
		message = constant.USER_DETAILS_UNAVAILABLE
	case errors.Is(err, settings.ErrSettingNotFound), errors.Is(err, settings.ErrSettingInvalid):
		message = constant.SETTINGS_UNAVAILABLE
	}

	if status >= 500 {
		log.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

// bindFailed answers a binding error: missing required fields get
// requiredMsg, malformed dates get INVALID_DATE, anything else is a generic
// invalid payload.
func bindFailed(c *gin.Context, err error, requiredMsg string) {
	message := constant.INVALID_REQUEST

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				c.JSON(400, gin.H{"error": requiredMsg})
				return
			case "isdate":
				message = constant.INVALID_DATE
			}
		}
	}
	c.JSON(400, gin.H{"error": message})
}

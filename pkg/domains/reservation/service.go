package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/availability"
	"github.com/restobook/pkg/domains/settings"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/entities"
	"github.com/restobook/pkg/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("could not retrieve user details")
	ErrMissingPhone     = errors.New("user profile is missing a phone number")
	ErrInvalidTime      = errors.New("reservation time could not be parsed")
	ErrInvalidPartySize = errors.New("party size must be positive")
	ErrInvalidRange     = errors.New("end date is before start date")
)

// UserFinder is the part of the credential store the write path needs.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (entities.User, error)
}

// Notifier receives a booking once it is stored. Implementations must not
// block the caller.
type Notifier interface {
	Notify(details dtos.ReservationDetails)
}

type Options struct {
	Location *time.Location
	// EnforceCapacity re-checks the availability rule inside the insert
	// transaction. Off by default, which lets concurrent or uninformed
	// bookings exceed max_reservations.
	EnforceCapacity bool
}

type Service interface {
	Create(ctx context.Context, userID uint, req dtos.DTOForReservationCreate) (uint, error)
	MyReservations(ctx context.Context, userID uint) ([]entities.Reservation, error)
	ForDay(ctx context.Context, date time.Time) ([]entities.Reservation, error)
	Report(ctx context.Context, start, end time.Time) (entities.Report, error)
}

type service struct {
	repository Repository
	users      UserFinder
	settings   settings.Repository
	notifier   Notifier
	opts       Options
}

func NewService(r Repository, users UserFinder, s settings.Repository, n Notifier, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &service{
		repository: r,
		users:      users,
		settings:   s,
		notifier:   n,
		opts:       opts,
	}
}

func (s *service) Create(ctx context.Context, userID uint, req dtos.DTOForReservationCreate) (uint, error) {
	if req.PartySize <= 0 {
		return 0, ErrInvalidPartySize
	}
	at, err := utils.ParseReservationTime(req.ReservationTime, s.opts.Location)
	if err != nil {
		return 0, ErrInvalidTime
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	if user.Phone == "" {
		return 0, ErrMissingPhone
	}

	res := entities.Reservation{
		UserID:          &user.ID,
		Name:            user.Name,
		Phone:           user.Phone,
		Email:           user.Email,
		PartySize:       req.PartySize,
		ReservationTime: at,
		SpecialOccasion: req.SpecialOccasion,
	}

	if s.opts.EnforceCapacity {
		err = s.repository.CreateWithinCapacity(ctx, &res, availability.ConflictWindow, func(tx *gorm.DB) (int, error) {
			return s.settings.LockInt(ctx, tx, constant.SETTING_MAX_RESERVATIONS)
		})
	} else {
		err = s.repository.Create(ctx, &res)
	}
	if err != nil {
		if errors.Is(err, ErrSlotFull) || errors.Is(err, settings.ErrSettingNotFound) || errors.Is(err, settings.ErrSettingInvalid) {
			return 0, err
		}
		return 0, fmt.Errorf("create reservation: %w", err)
	}

	log.Ctx(ctx).Info().
		Uint("reservation_id", res.ID).
		Uint("user_id", user.ID).
		Int("party_size", res.PartySize).
		Time("reservation_time", res.ReservationTime).
		Msg("reservation created")

	s.notifier.Notify(dtos.ReservationDetails{
		ReservationID:   res.ID,
		Name:            res.Name,
		Email:           res.Email,
		Phone:           res.Phone,
		PartySize:       res.PartySize,
		ReservationTime: res.ReservationTime,
	})

	return res.ID, nil
}

func (s *service) MyReservations(ctx context.Context, userID uint) ([]entities.Reservation, error) {
	return s.repository.ListByUser(ctx, userID)
}

func (s *service) ForDay(ctx context.Context, date time.Time) ([]entities.Reservation, error) {
	from, to := utils.DayBounds(date, s.opts.Location)
	return s.repository.ListBetween(ctx, from, to)
}

// Report aggregates reservations whose local date falls in [start, end].
func (s *service) Report(ctx context.Context, start, end time.Time) (entities.Report, error) {
	from, _ := utils.DayBounds(start, s.opts.Location)
	endDay, to := utils.DayBounds(end, s.opts.Location)
	if endDay.Before(from) {
		return entities.Report{}, ErrInvalidRange
	}
	return s.repository.Report(ctx, from, to)
}

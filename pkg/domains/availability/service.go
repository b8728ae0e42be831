package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/settings"
	"github.com/restobook/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/restobook/pkg/domains/availability")

// ReservationTimes is the slice of the reservation store the engine reads.
type ReservationTimes interface {
	ReservationTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type Service interface {
	AvailableSlots(ctx context.Context, date time.Time) ([]string, error)
}

type service struct {
	settings     settings.Repository
	reservations ReservationTimes
	loc          *time.Location
}

func NewService(s settings.Repository, r ReservationTimes, loc *time.Location) Service {
	return &service{
		settings:     s,
		reservations: r,
		loc:          loc,
	}
}

// AvailableSlots fails as a whole when max_reservations cannot be read.
func (s *service) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	ctx, span := tracer.Start(ctx, "availability.compute", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	maxPerSlot, err := s.settings.GetInt(ctx, constant.SETTING_MAX_RESERVATIONS)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "settings")
		return nil, err
	}

	from, to := utils.DayBounds(date, s.loc)
	times, err := s.reservations.ReservationTimesBetween(ctx, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reservations")
		return nil, fmt.Errorf("load reservations for %s: %w", from.Format(utils.DateLayout), err)
	}

	slots := ComputeAvailableSlots(from, s.loc, times, maxPerSlot)
	span.SetAttributes(
		attribute.String("date", from.Format(utils.DateLayout)),
		attribute.Int("max_per_slot", maxPerSlot),
		attribute.Int("reservations", len(times)),
		attribute.Int("available", len(slots)),
	)
	return slots, nil
}

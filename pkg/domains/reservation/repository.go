package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/restobook/pkg/entities"
	"gorm.io/gorm"
)

var ErrSlotFull = errors.New("time slot is fully booked")

// CapacityFunc reads the per-slot limit inside the booking transaction.
type CapacityFunc func(tx *gorm.DB) (int, error)

type Repository interface {
	Create(ctx context.Context, r *entities.Reservation) error
	// CreateWithinCapacity inserts r only if fewer than limit reservations
	// start within window of r.ReservationTime.
	CreateWithinCapacity(ctx context.Context, r *entities.Reservation, window time.Duration, limit CapacityFunc) error
	ListByUser(ctx context.Context, userID uint) ([]entities.Reservation, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entities.Reservation, error)
	ReservationTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	Report(ctx context.Context, from, to time.Time) (entities.Report, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, res *entities.Reservation) error {
	res.ReservationTime = res.ReservationTime.UTC()
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) CreateWithinCapacity(ctx context.Context, res *entities.Reservation, window time.Duration, limit CapacityFunc) error {
	res.ReservationTime = res.ReservationTime.UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		capacity, err := limit(tx)
		if err != nil {
			return err
		}

		var conflicts int64
		err = tx.Model(&entities.Reservation{}).
			Where("reservation_time >= ? AND reservation_time <= ?",
				res.ReservationTime.Add(-window), res.ReservationTime.Add(window)).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("count conflicting reservations: %w", err)
		}
		if conflicts >= int64(capacity) {
			return ErrSlotFull
		}

		return tx.Create(res).Error
	})
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]entities.Reservation, error) {
	reservations := []entities.Reservation{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reservation_time desc").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]entities.Reservation, error) {
	reservations := []entities.Reservation{}
	err := r.between(ctx, from, to).
		Order("reservation_time asc").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) ReservationTimesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.between(ctx, from, to).
		Model(&entities.Reservation{}).
		Pluck("reservation_time", &times).Error
	return times, err
}

func (r *repository) Report(ctx context.Context, from, to time.Time) (entities.Report, error) {
	var report entities.Report
	err := r.between(ctx, from, to).
		Model(&entities.Reservation{}).
		Select("COUNT(*) AS total_reservations, COALESCE(SUM(party_size), 0) AS total_guests").
		Scan(&report).Error
	return report, err
}

// between selects reservations starting in [from, to).
func (r *repository) between(ctx context.Context, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("reservation_time >= ? AND reservation_time < ?", from.UTC(), to.UTC())
}

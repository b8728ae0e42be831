package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/restobook/pkg/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrSettingInvalid  = errors.New("setting is not a number")
)

// Repository is a read-only view over the restaurant settings table.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	GetInt(ctx context.Context, key string) (int, error)
	// LockInt reads an integer setting with a row lock held until tx ends.
	LockInt(ctx context.Context, tx *gorm.DB, key string) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	return find(r.db.WithContext(ctx), key)
}

func (r *repository) GetInt(ctx context.Context, key string) (int, error) {
	value, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return parseInt(key, value)
}

func (r *repository) LockInt(ctx context.Context, tx *gorm.DB, key string) (int, error) {
	value, err := find(tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), key)
	if err != nil {
		return 0, err
	}
	return parseInt(key, value)
}

func find(db *gorm.DB, key string) (string, error) {
	var setting entities.RestaurantSetting
	err := db.Where("setting = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("load setting %s: %w", key, err)
	}
	return setting.Value, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrSettingInvalid, key, value)
	}
	return n, nil
}

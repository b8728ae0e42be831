package testutil

import (
	"testing"
	"time"

	"github.com/restobook/pkg/config"
	"github.com/restobook/pkg/database"
	"github.com/restobook/pkg/entities"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TestSecret = "test-secret"

// SetupTestDB returns a migrated and seeded in-memory sqlite database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.Database{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateTestUser inserts a user whose password is "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, email string, role entities.Role) entities.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := entities.User{
		Name:     "Test " + string(role),
		Email:    email,
		Phone:    "555-0100",
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestReservation books partySize guests at at for user.
func CreateTestReservation(t *testing.T, db *gorm.DB, user entities.User, at time.Time, partySize int) entities.Reservation {
	t.Helper()

	userID := user.ID
	r := entities.Reservation{
		UserID:          &userID,
		Name:            user.Name,
		Phone:           user.Phone,
		Email:           user.Email,
		PartySize:       partySize,
		ReservationTime: at.UTC(),
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("Failed to create test reservation: %v", err)
	}
	return r
}

// SetSetting overwrites a restaurant setting value.
func SetSetting(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()

	if err := db.Model(&entities.RestaurantSetting{}).Where("setting = ?", key).Update("value", value).Error; err != nil {
		t.Fatalf("Failed to update setting %s: %v", key, err)
	}
}

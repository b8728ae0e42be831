package entities

import "time"

// Reservation keeps a copy of the guest's contact details as they were when
// the booking was made.
type Reservation struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          *uint     `json:"user_id" gorm:"index"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone           string    `json:"phone" gorm:"type:varchar(32);not null"`
	Email           string    `json:"email" gorm:"type:varchar(255);not null"`
	PartySize       int       `json:"party_size" gorm:"not null"`
	ReservationTime time.Time `json:"reservation_time" gorm:"not null;index"`
	SpecialOccasion *string   `json:"special_occasion"`
	CreatedAt       time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// Report is the staff dashboard aggregate over a date range.
type Report struct {
	TotalReservations int64 `json:"total_reservations"`
	TotalGuests       int64 `json:"total_guests"`
}

package dtos

import "time"

type DTOForReservationCreate struct {
	PartySize       int     `json:"party_size" binding:"required"`
	ReservationTime string  `json:"reservation_time" binding:"required"`
	SpecialOccasion *string `json:"special_occasion"`
}

type ReservationCreated struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type DateQuery struct {
	Date string `form:"date" binding:"required,isdate"`
}

type ReportQuery struct {
	StartDate string `form:"startDate" binding:"required,isdate"`
	EndDate   string `form:"endDate" binding:"required,isdate"`
}

// ReservationDetails is what the confirmation message is rendered from.
type ReservationDetails struct {
	ReservationID   uint
	Name            string
	Email           string
	Phone           string
	PartySize       int
	ReservationTime time.Time
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/reservation"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/state"
)

// ReservationRoutes expects r to already require authentication.
func ReservationRoutes(r *gin.RouterGroup, s reservation.Service) {
	r.POST("/reservations", createReservation(s))
	r.GET("/my-reservations", myReservations(s))
}

// @Summary Book a table
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dtos.DTOForReservationCreate true "booking"
// @Success 201 {object} dtos.ReservationCreated
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 401 {object} dtos.ErrorResponse
// @Failure 409 {object} dtos.ErrorResponse
// @Router /reservations [post]
func createReservation(s reservation.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForReservationCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err, constant.RESERVATION_FIELDS)
			return
		}

		id, err := s.Create(c, state.CurrentUser(c), req)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(201, dtos.ReservationCreated{ID: id, Message: constant.RESERVATION_CREATED})
	}
}

// @Summary The caller's reservations, newest first
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} entities.Reservation
// @Failure 401 {object} dtos.ErrorResponse
// @Router /my-reservations [get]
func myReservations(s reservation.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		list, err := s.MyReservations(c, state.CurrentUser(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, list)
	}
}

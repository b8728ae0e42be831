package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/reservation"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/utils"
)

// DashboardRoutes expects r to already require a staff or manager role.
func DashboardRoutes(r *gin.RouterGroup, s reservation.Service, loc *time.Location) {
	r.GET("/reservations", dayReservations(s, loc))
	r.GET("/reports", report(s, loc))
}

// @Summary Reservations for one day, earliest first
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} entities.Reservation
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 403 {object} dtos.ErrorResponse
// @Router /dashboard/reservations [get]
func dayReservations(s reservation.Service, loc *time.Location) func(c *gin.Context) {
	return func(c *gin.Context) {
		var q dtos.DateQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindFailed(c, err, constant.DATE_REQUIRED)
			return
		}
		date, err := utils.ParseDate(q.Date, loc)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_DATE})
			return
		}

		list, err := s.ForDay(c, date)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, list)
	}
}

// @Summary Reservation and guest totals for an inclusive date range
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} entities.Report
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 403 {object} dtos.ErrorResponse
// @Router /dashboard/reports [get]
func report(s reservation.Service, loc *time.Location) func(c *gin.Context) {
	return func(c *gin.Context) {
		var q dtos.ReportQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindFailed(c, err, constant.DATE_RANGE_REQUIRED)
			return
		}
		start, err := utils.ParseDate(q.StartDate, loc)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_DATE})
			return
		}
		end, err := utils.ParseDate(q.EndDate, loc)
		if err != nil {
			c.JSON(400, gin.H{"error": constant.INVALID_DATE})
			return
		}

		totals, err := s.Report(c, start, end)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, totals)
	}
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/availability"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/utils"
)

func AvailabilityRoutes(r *gin.RouterGroup, s availability.Service, loc *time.Location) {
	r.GET("/availability", availableSlots(s, loc))
}

// @Summary Free dinner slots for a date
// @Tags availability
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} string
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 500 {object} dtos.ErrorResponse
// @Router /availability [get]
func availableSlots(s availability.Service, loc *time.Location) func(c *gin.Context) {
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

		slots, err := s.AvailableSlots(c, date)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(200, slots)
	}
}

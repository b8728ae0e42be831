package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/domains/auth"
	"github.com/restobook/pkg/dtos"
)

func AuthRoutes(r *gin.RouterGroup, s auth.Service) {
	r.POST("/register", register(s))
	r.POST("/login", login(s))
}

// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dtos.DTOForUserCreate true "registration"
// @Success 201 {object} dtos.IDResponse
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 409 {object} dtos.ErrorResponse
// @Router /register [post]
func register(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForUserCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err, constant.REGISTER_FIELDS_REQUIRED)
			return
		}

		id, err := s.Register(c, req)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(201, dtos.IDResponse{ID: id})
	}
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dtos.DTOForUserLogin true "credentials"
// @Success 200 {object} dtos.TokenResponse
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 401 {object} dtos.ErrorResponse
// @Router /login [post]
func login(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForUserLogin
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err, constant.LOGIN_FIELDS_REQUIRED)
			return
		}

		token, err := s.Login(c, req)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(200, dtos.TokenResponse{Token: token})
	}
}

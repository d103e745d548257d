package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/middleware"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	session, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if field, msg, ok := service.ValidationField(err); ok {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
				Error:  "validation failed",
				Errors: []dto.ValidationError{{Field: field, Message: msg}},
			})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(service.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

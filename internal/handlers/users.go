package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/service"
)

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var in service.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	token, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h *Handler) Current(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	user, err := h.svc.CurrentUser(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

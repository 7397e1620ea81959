package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/service"
)

func (h *Handler) CurrentProfile(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	profile, err := h.svc.ProfileForUser(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.svc.ListProfiles(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) ProfileByHandle(c *gin.Context) {
	profile, err := h.svc.ProfileByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) ProfileByUser(c *gin.Context) {
	profile, err := h.svc.ProfileForUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile creates or updates the caller's profile.
func (h *Handler) UpsertProfile(c *gin.Context) {
	startedAt := time.Now()
	var in service.ProfileInput
	if !bindJSON(c, &in) {
		return
	}

	profile, err := h.svc.UpsertProfile(c.Request.Context(), middleware.ActorFromContext(c).ID, in)
	track("upsert-profile", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes the caller's profile together with the account.
func (h *Handler) DeleteProfile(c *gin.Context) {
	startedAt := time.Now()

	summary, err := h.svc.DeleteAccount(c.Request.Context(), middleware.ActorFromContext(c).ID)
	track("delete-account", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

func (h *Handler) AddExperience(c *gin.Context) {
	startedAt := time.Now()
	var in service.ExperienceInput
	if !bindJSON(c, &in) {
		return
	}

	profile, err := h.svc.AddExperience(c.Request.Context(), middleware.ActorFromContext(c).ID, in)
	track("add-experience", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeleteExperience(c *gin.Context) {
	startedAt := time.Now()

	profile, err := h.svc.DeleteExperience(c.Request.Context(), middleware.ActorFromContext(c).ID, c.Param("exp_id"))
	track("delete-experience", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) AddEducation(c *gin.Context) {
	startedAt := time.Now()
	var in service.EducationInput
	if !bindJSON(c, &in) {
		return
	}

	profile, err := h.svc.AddEducation(c.Request.Context(), middleware.ActorFromContext(c).ID, in)
	track("add-education", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeleteEducation(c *gin.Context) {
	startedAt := time.Now()

	profile, err := h.svc.DeleteEducation(c.Request.Context(), middleware.ActorFromContext(c).ID, c.Param("edu_id"))
	track("delete-education", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

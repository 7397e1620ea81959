package handlers

import (
	"crypto/subtle"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) checkMonitoringToken(c *gin.Context) bool {
	expected := strings.TrimSpace(h.monitoringKey)
	if expected == "" || h.monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "monitoring_disabled", "message": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "invalid_monitoring_key", "message": "Invalid monitoring key"})
		return false
	}
	return true
}

func (h *Handler) MonitorStatus(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.StatusText(c.Request.Context())})
}

func (h *Handler) MonitorConnections(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.ConnectionsText()})
}

func (h *Handler) MonitorUsers(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.UsersText(c.Request.Context())})
}

func (h *Handler) MonitorAll(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.AllText(c.Request.Context())})
}

func (h *Handler) MonitorRuntime(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.RuntimeText()})
}

func (h *Handler) MonitorSnapshot(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, h.monitor.Snapshot(c.Request.Context()))
}

// MonitorProfilesList pages through profiles for operators.
func (h *Handler) MonitorProfilesList(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 8)
	if limit > 50 {
		limit = 50
	}
	params := parseListQueryParams(strconv.Itoa(limit), strconv.Itoa((page-1)*limit), c.Query("search"), 50)

	ctx := c.Request.Context()
	counts, err := h.monitor.ContentCounts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	profiles, err := h.svc.ListProfiles(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}

	type monitorProfileItem struct {
		UserID      string    `json:"user_id"`
		Name        string    `json:"name"`
		Handle      string    `json:"handle"`
		Experiences int       `json:"experiences"`
		Educations  int       `json:"educations"`
		CreatedAt   time.Time `json:"created_at"`
	}

	items := make([]monitorProfileItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, monitorProfileItem{
			UserID:      p.UserID,
			Name:        p.User.Name,
			Handle:      p.Handle,
			Experiences: len(p.Experience),
			Educations:  len(p.Education),
			CreatedAt:   p.CreatedAt,
		})
	}

	totalPages := 0
	if counts.Profiles > 0 {
		totalPages = int(math.Ceil(float64(counts.Profiles) / float64(limit)))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":           page,
		"limit":          limit,
		"total_profiles": counts.Profiles,
		"total_pages":    totalPages,
		"profiles":       items,
	})
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

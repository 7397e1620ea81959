package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/service"
)

// ListPosts returns posts newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.svc.Post(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreatePost(c *gin.Context) {
	startedAt := time.Now()
	var in service.PostInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), middleware.ActorFromContext(c), in)
	track("create-post", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	startedAt := time.Now()

	err := h.svc.DeletePost(c.Request.Context(), middleware.ActorFromContext(c).ID, c.Param("id"))
	track("delete-post", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) LikePost(c *gin.Context) {
	startedAt := time.Now()

	post, err := h.svc.LikePost(c.Request.Context(), middleware.ActorFromContext(c).ID, c.Param("id"))
	track("like-post", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) UnlikePost(c *gin.Context) {
	startedAt := time.Now()

	post, err := h.svc.UnlikePost(c.Request.Context(), middleware.ActorFromContext(c).ID, c.Param("id"))
	track("unlike-post", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) AddComment(c *gin.Context) {
	startedAt := time.Now()
	var in service.CommentInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.svc.AddComment(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), in)
	track("add-comment", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	startedAt := time.Now()

	post, err := h.svc.DeleteComment(
		c.Request.Context(),
		middleware.ActorFromContext(c).ID,
		c.Param("id"),
		c.Param("comment_id"),
	)
	track("delete-comment", startedAt, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

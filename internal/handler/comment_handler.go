package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("/entry/:entry_id", h.ListByEntry)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:comment_id", requireAuth, h.Update)
	rg.DELETE("/:comment_id", requireAuth, h.Delete)
}

func (h *CommentHandler) ListByEntry(c *gin.Context) {
	resp, err := h.svc.ListByEntry(c.Request.Context(), c.Param("entry_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.CreateComment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.UpdateComment(c.Request.Context(), actor, c.Param("comment_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.svc.DeleteComment(c.Request.Context(), actor, c.Param("comment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

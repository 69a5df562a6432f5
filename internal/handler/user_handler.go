package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", requireAuth, middleware.RequireAdmin(), h.List)
	rg.GET("/me/metadata", requireAuth, h.MyMetadata)
	rg.GET("/:user_id", requireAuth, h.Get)
	rg.PUT("/:user_id", requireAuth, h.Update)
	rg.GET("/:user_id/metadata", requireAuth, h.Metadata)
}

func (h *UserHandler) List(c *gin.Context) {
	skip, limit := parseSkipLimit(c)
	users, total, err := h.svc.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"skip":  skip,
		"limit": limit,
		"items": users,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	resp, err := h.svc.GetUser(c.Request.Context(), actor, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.UpdateUser(c.Request.Context(), actor, c.Param("user_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Metadata(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	resp, err := h.svc.GetMetadata(c.Request.Context(), actor, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MyMetadata is the self-service variant of Metadata.
func (h *UserHandler) MyMetadata(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	resp, err := h.svc.GetMetadata(c.Request.Context(), actor, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type SourceHandler struct {
	svc service.SourceService
}

func NewSourceHandler(svc service.SourceService) *SourceHandler {
	return &SourceHandler{svc: svc}
}

func (h *SourceHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:source_id", h.Get)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:source_id", requireAuth, middleware.RequireElevated(), h.Update)
}

func (h *SourceHandler) List(c *gin.Context) {
	skip, limit := parseSkipLimit(c)
	sources, total, err := h.svc.ListSources(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"skip":  skip,
		"limit": limit,
		"items": sources,
	})
}

func (h *SourceHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetSource(c.Request.Context(), c.Param("source_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SourceHandler) Create(c *gin.Context) {
	var req dto.CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp, err := h.svc.CreateSource(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SourceHandler) Update(c *gin.Context) {
	var req dto.UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp, err := h.svc.UpdateSource(c.Request.Context(), c.Param("source_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

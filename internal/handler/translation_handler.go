package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type TranslationHandler struct {
	svc service.TranslationService
}

func NewTranslationHandler(svc service.TranslationService) *TranslationHandler {
	return &TranslationHandler{svc: svc}
}

func (h *TranslationHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("/entry/:entry_id", optionalAuth, h.ListByEntry)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:translation_id", requireAuth, h.Update)
	rg.DELETE("/:translation_id", requireAuth, h.Delete)
}

func (h *TranslationHandler) ListByEntry(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	resp, err := h.svc.ListByEntry(c.Request.Context(), viewer, c.Param("entry_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TranslationHandler) Create(c *gin.Context) {
	var req dto.CreateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.CreateTranslation(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TranslationHandler) Update(c *gin.Context) {
	var req dto.UpdateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.UpdateTranslation(c.Request.Context(), actor, c.Param("translation_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TranslationHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.svc.DeleteTranslation(c.Request.Context(), actor, c.Param("translation_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Translation deleted"})
}

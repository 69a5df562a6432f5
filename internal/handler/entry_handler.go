package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/repository"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	svc service.EntryService
}

func NewEntryHandler(svc service.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

func (h *EntryHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/metadata", h.Metadata)
	rg.GET("/:entry_id", optionalAuth, h.Get)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/bulk", requireAuth, h.BulkUpdate)
	rg.PUT("/:entry_id", requireAuth, h.Update)
	rg.DELETE("/:entry_id", requireAuth, h.Delete)
	rg.POST("/:entry_id/verify", requireAuth, middleware.RequireElevated(), h.Verify)

	rg.GET("/:entry_id/relationships", h.ListRelationships)
	rg.POST("/:entry_id/relationships", requireAuth, h.CreateRelationship)
	rg.GET("/:entry_id/history", requireAuth, middleware.RequireElevated(), h.History)
}

// RegisterRelationshipRoutes covers the standalone relationship endpoint.
func (h *EntryHandler) RegisterRelationshipRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.DELETE("/:relationship_id", requireAuth, h.DeleteRelationship)
}

func (h *EntryHandler) List(c *gin.Context) {
	skip, limit := parseSkipLimit(c)
	filter := repository.EntryFilter{
		LanguageCode:        c.Query("language_code"),
		OtherLanguageCode:   c.Query("other_language_code"),
		EntryType:           c.Query("entry_type"),
		Search:              c.Query("search"),
		FuzzySearch:         c.Query("fuzzy_search"),
		SortedBy:            c.Query("sorted_by"),
		SortDirection:       c.Query("sort_direction"),
		Skip:                skip,
		Limit:               limit,
		IncludeTranslations: c.Query("include_translations") == "true",
	}

	resp, err := h.svc.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) Metadata(c *gin.Context) {
	resp, err := h.svc.GetMetadata(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) Get(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	resp, err := h.svc.GetEntry(c.Request.Context(), viewer, c.Param("entry_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.CreateEntry(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntryHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.UpdateEntry(c.Request.Context(), actor, c.Param("entry_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	entries, err := h.svc.BulkUpdateEntries(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.svc.DeleteEntry(c.Request.Context(), actor, c.Param("entry_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

func (h *EntryHandler) Verify(c *gin.Context) {
	var req dto.VerifyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.VerifyEntry(c.Request.Context(), actor, c.Param("entry_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) ListRelationships(c *gin.Context) {
	resp, err := h.svc.ListRelationships(c.Request.Context(), c.Param("entry_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntryHandler) CreateRelationship(c *gin.Context) {
	var req dto.CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.CreateRelationship(c.Request.Context(), actor, c.Param("entry_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntryHandler) DeleteRelationship(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.svc.DeleteRelationship(c.Request.Context(), actor, c.Param("relationship_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted"})
}

func (h *EntryHandler) History(c *gin.Context) {
	resp, err := h.svc.ListHistory(c.Request.Context(), c.Param("entry_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

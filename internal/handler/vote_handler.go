package handler

import (
	"net/http"

	"lexihub/internal/dto"
	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc service.VoteService
}

func NewVoteHandler(svc service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// RegisterRoutes hangs the vote endpoints off the translations group.
func (h *VoteHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/:translation_id/vote", requireAuth, h.Cast)
	rg.GET("/:translation_id/vote", requireAuth, h.Get)
	rg.DELETE("/:translation_id/vote", requireAuth, h.Remove)
	rg.POST("/:translation_id/recalculate-votes", requireAuth, middleware.RequireAdmin(), h.Recalculate)
}

func (h *VoteHandler) Cast(c *gin.Context) {
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	resp, err := h.svc.CastVote(c.Request.Context(), actor, c.Param("translation_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoteHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	resp, err := h.svc.GetVote(c.Request.Context(), actor, c.Param("translation_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoteHandler) Remove(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.svc.RemoveVote(c.Request.Context(), actor, c.Param("translation_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

func (h *VoteHandler) Recalculate(c *gin.Context) {
	resp, err := h.svc.RecalculateVotes(c.Request.Context(), c.Param("translation_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

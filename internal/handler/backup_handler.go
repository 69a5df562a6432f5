package handler

import (
	"net/http"

	"lexihub/internal/middleware"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	svc service.BackupService
}

func NewBackupHandler(svc service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.Use(requireAuth, middleware.RequireAdmin())
	rg.POST("/create", h.Create)
	rg.GET("/list", h.List)
	rg.GET("/download/:filename", h.Download)
	rg.DELETE("/delete/:filename", h.Delete)
}

func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.svc.CreateBackup(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.svc.ListBackups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": backups})
}

func (h *BackupHandler) Download(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.svc.ResolveBackupPath(filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filename)
}

func (h *BackupHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBackup(c.Param("filename")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Backup deleted"})
}

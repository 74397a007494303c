package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscal-ops-backend/internal/services/fiscalfile"
)

type FiscalFileHandler struct {
	service *fiscalfile.Service
}

func NewFiscalFileHandler(s *fiscalfile.Service) *FiscalFileHandler {
	return &FiscalFileHandler{service: s}
}

func (h *FiscalFileHandler) ListAll(c *gin.Context) {
	configs, err := h.service.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *FiscalFileHandler) ListPending(c *gin.Context) {
	configs, err := h.service.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (h *FiscalFileHandler) ListRuns(c *gin.Context) {
	runs, err := h.service.ListRuns()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *FiscalFileHandler) ListRunsByCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	runs, err := h.service.RunsByCompany(companyID, c.Query("competence"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *FiscalFileHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config ID"})
		return
	}
	var payload struct {
		Responsible *string `json:"responsible"`
		Observation *string `json:"observation"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	cfg, err := h.service.Update(id, payload.Responsible, payload.Observation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *FiscalFileHandler) MarkGenerated(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config ID"})
		return
	}
	var payload struct {
		Responsible string `json:"responsible"`
		Notes       string `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	run, err := h.service.MarkGenerated(id, payload.Responsible, payload.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *FiscalFileHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config ID"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

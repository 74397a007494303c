package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscal-ops-backend/internal/services/fiscalbatch"
)

type FiscalBatchHandler struct {
	service *fiscalbatch.Service
}

func NewFiscalBatchHandler(s *fiscalbatch.Service) *FiscalBatchHandler {
	return &FiscalBatchHandler{service: s}
}

func (h *FiscalBatchHandler) List(c *gin.Context) {
	var companyID *uuid.UUID
	if raw := c.Query("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		companyID = &id
	}
	batches, err := h.service.List(companyID, c.Query("competence"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (h *FiscalBatchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}
	batch, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *FiscalBatchHandler) Create(c *gin.Context) {
	var payload struct {
		CompanyID   string `json:"companyId" binding:"required"`
		Competence  string `json:"competence" binding:"required"`
		Type        string `json:"type" binding:"required"`
		Quantity    int    `json:"quantity"`
		Notes       string `json:"notes"`
		LaunchDone  bool   `json:"launchDone"`
		BillingDone bool   `json:"billingDone"`
		CreatedBy   string `json:"createdBy"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	companyID, err := uuid.Parse(payload.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	batch, err := h.service.CreateOrMerge(fiscalbatch.CreateInput{
		CompanyID:   companyID,
		Competence:  payload.Competence,
		Type:        payload.Type,
		Quantity:    payload.Quantity,
		Notes:       payload.Notes,
		LaunchDone:  payload.LaunchDone,
		BillingDone: payload.BillingDone,
		CreatedBy:   payload.CreatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *FiscalBatchHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}
	var payload struct {
		Quantity    *int    `json:"quantity"`
		Notes       *string `json:"notes"`
		LaunchDone  *bool   `json:"launchDone"`
		BillingDone *bool   `json:"billingDone"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	batch, err := h.service.Update(id, fiscalbatch.Patch{
		Quantity:    payload.Quantity,
		Notes:       payload.Notes,
		LaunchDone:  payload.LaunchDone,
		BillingDone: payload.BillingDone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *FiscalBatchHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *FiscalBatchHandler) Summary(c *gin.Context) {
	rows, err := h.service.SummaryForCompetence(c.Query("competence"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *FiscalBatchHandler) Pending(c *gin.Context) {
	rows, err := h.service.PendingSummary(c.Query("competence"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *FiscalBatchHandler) Finished(c *gin.Context) {
	groups, err := h.service.Finished(c.Query("competence"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *FiscalBatchHandler) Finalize(c *gin.Context) {
	var payload struct {
		CompanyID  string `json:"companyId" binding:"required"`
		Competence string `json:"competence" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	companyID, err := uuid.Parse(payload.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	batches, err := h.service.Finalize(companyID, payload.Competence)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

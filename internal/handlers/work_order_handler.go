package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscal-ops-backend/internal/services/workorder"
)

type WorkOrderHandler struct {
	service *workorder.Service
}

func NewWorkOrderHandler(s *workorder.Service) *WorkOrderHandler {
	return &WorkOrderHandler{service: s}
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	orders, err := h.service.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return
	}
	order, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var payload struct {
		Number      string `json:"number"`
		CompanyID   string `json:"companyId" binding:"required"`
		Type        string `json:"type" binding:"required"`
		Responsible string `json:"responsible"`
		DueDate     string `json:"dueDate" binding:"required"`
		Priority    string `json:"priority"`
		Status      string `json:"status"`
		Description string `json:"description"`
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
	dueDate, err := parseDate(payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected YYYY-MM-DD"})
		return
	}
	order, err := h.service.Create(workorder.CreateInput{
		Number:      payload.Number,
		CompanyID:   companyID,
		Type:        payload.Type,
		Responsible: payload.Responsible,
		DueDate:     dueDate,
		Priority:    payload.Priority,
		Status:      payload.Status,
		Description: payload.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return
	}
	var payload struct {
		Number      *string `json:"number"`
		CompanyID   *string `json:"companyId"`
		Type        *string `json:"type"`
		Responsible *string `json:"responsible"`
		DueDate     *string `json:"dueDate"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		Description *string `json:"description"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	update := workorder.UpdateInput{
		Number:      payload.Number,
		Type:        payload.Type,
		Responsible: payload.Responsible,
		Priority:    payload.Priority,
		Status:      payload.Status,
		Description: payload.Description,
	}
	if payload.CompanyID != nil {
		companyID, err := uuid.Parse(*payload.CompanyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		update.CompanyID = &companyID
	}
	if payload.DueDate != nil {
		dueDate, err := parseDate(*payload.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected YYYY-MM-DD"})
			return
		}
		update.DueDate = &dueDate
	}

	order, err := h.service.Update(id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WorkOrderHandler) AddHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return
	}
	var payload struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	order, err := h.service.AddHistory(id, payload.Title, payload.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

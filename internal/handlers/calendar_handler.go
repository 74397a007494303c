package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

type CalendarHandler struct {
	events    *repository.CalendarRepository
	companies *repository.CompanyRepository
}

func NewCalendarHandler(events *repository.CalendarRepository, companies *repository.CompanyRepository) *CalendarHandler {
	return &CalendarHandler{events: events, companies: companies}
}

func (h *CalendarHandler) List(c *gin.Context) {
	var companyID *uuid.UUID
	if raw := c.Query("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		companyID = &id
	}
	var from, to *time.Time
	if raw := c.Query("dateFrom"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateFrom"})
			return
		}
		from = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateTo"})
			return
		}
		to = &t
	}

	events, err := h.events.List(companyID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *CalendarHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	event, err := h.events.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *CalendarHandler) Create(c *gin.Context) {
	var payload struct {
		Type        string `json:"type" binding:"required"`
		CompanyID   string `json:"companyId" binding:"required"`
		Date        string `json:"date" binding:"required"`
		Time        string `json:"time"`
		Location    string `json:"location"`
		Responsible string `json:"responsible"`
		Notes       string `json:"notes"`
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
	if _, err := h.companies.ByID(companyID); err != nil {
		respondError(c, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	event := &models.CalendarEvent{
		ID:          uuid.New(),
		Type:        payload.Type,
		CompanyID:   companyID,
		Date:        date,
		Time:        payload.Time,
		Location:    payload.Location,
		Responsible: payload.Responsible,
		Notes:       payload.Notes,
	}
	if err := h.events.Create(event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	event, err := h.events.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Type        *string `json:"type"`
		CompanyID   *string `json:"companyId"`
		Date        *string `json:"date"`
		Time        *string `json:"time"`
		Location    *string `json:"location"`
		Responsible *string `json:"responsible"`
		Notes       *string `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Type != nil {
		event.Type = *payload.Type
	}
	if payload.CompanyID != nil {
		companyID, err := uuid.Parse(*payload.CompanyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
			return
		}
		event.CompanyID = companyID
		event.Company = nil
	}
	if payload.Date != nil {
		date, err := parseDate(*payload.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		event.Date = date
	}
	if payload.Time != nil {
		event.Time = *payload.Time
	}
	if payload.Location != nil {
		event.Location = *payload.Location
	}
	if payload.Responsible != nil {
		event.Responsible = *payload.Responsible
	}
	if payload.Notes != nil {
		event.Notes = *payload.Notes
	}

	if err := h.events.Save(event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	if _, err := h.events.ByID(id); err != nil {
		respondError(c, err)
		return
	}
	if err := h.events.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

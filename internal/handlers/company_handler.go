package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

type CompanyHandler struct {
	companies *repository.CompanyRepository
}

func NewCompanyHandler(companies *repository.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companies.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	company, err := h.companies.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type companyPayload struct {
	Name                      string `json:"name" binding:"required"`
	LegalName                 string `json:"razaoSocial"`
	TradeName                 string `json:"nomeFantasia"`
	CNPJ                      string `json:"cnpj"`
	TaxpayerType              string `json:"tipoContribuinte"`
	StateRegistration         string `json:"ie"`
	PostalCode                string `json:"cep"`
	Street                    string `json:"rua"`
	Number                    string `json:"numero"`
	District                  string `json:"bairro"`
	City                      string `json:"cidade"`
	State                     string `json:"estado"`
	Email                     string `json:"email"`
	Phone                     string `json:"phone"`
	Contact                   string `json:"contact"`
	AccountingName            string `json:"contabilidadeNome"`
	AccountingEmail           string `json:"contabilidadeEmail"`
	AccountingPhone           string `json:"contabilidadeTelefone"`
	Status                    string `json:"status"`
	GeneratesFiscalFiles      bool   `json:"generatesFiscalFiles"`
	GeneratesFiscalProduction bool   `json:"generatesFiscalProduction"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var payload companyPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	status := payload.Status
	if status == "" {
		status = models.CompanyStatusActive
	}
	company := &models.Company{
		ID:                        uuid.New(),
		Name:                      payload.Name,
		LegalName:                 payload.LegalName,
		TradeName:                 payload.TradeName,
		CNPJ:                      payload.CNPJ,
		TaxpayerType:              payload.TaxpayerType,
		StateRegistration:         payload.StateRegistration,
		PostalCode:                payload.PostalCode,
		Street:                    payload.Street,
		Number:                    payload.Number,
		District:                  payload.District,
		City:                      payload.City,
		State:                     payload.State,
		Email:                     payload.Email,
		Phone:                     payload.Phone,
		Contact:                   payload.Contact,
		AccountingName:            payload.AccountingName,
		AccountingEmail:           payload.AccountingEmail,
		AccountingPhone:           payload.AccountingPhone,
		Status:                    status,
		GeneratesFiscalFiles:      payload.GeneratesFiscalFiles,
		GeneratesFiscalProduction: payload.GeneratesFiscalProduction,
	}
	if err := h.companies.Create(company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	company, err := h.companies.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var patch map[string]any
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	applyCompanyPatch(company, patch)
	if err := h.companies.Save(company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// applyCompanyPatch keeps untouched fields; only keys present in the body
// are written.
func applyCompanyPatch(company *models.Company, patch map[string]any) {
	setString := func(key string, dst *string) {
		if v, ok := patch[key].(string); ok {
			*dst = v
		}
	}
	setString("name", &company.Name)
	setString("razaoSocial", &company.LegalName)
	setString("nomeFantasia", &company.TradeName)
	setString("cnpj", &company.CNPJ)
	setString("tipoContribuinte", &company.TaxpayerType)
	setString("ie", &company.StateRegistration)
	setString("cep", &company.PostalCode)
	setString("rua", &company.Street)
	setString("numero", &company.Number)
	setString("bairro", &company.District)
	setString("cidade", &company.City)
	setString("estado", &company.State)
	setString("email", &company.Email)
	setString("phone", &company.Phone)
	setString("contact", &company.Contact)
	setString("contabilidadeNome", &company.AccountingName)
	setString("contabilidadeEmail", &company.AccountingEmail)
	setString("contabilidadeTelefone", &company.AccountingPhone)
	setString("status", &company.Status)
	if v, ok := patch["generatesFiscalFiles"].(bool); ok {
		company.GeneratesFiscalFiles = v
	}
	if v, ok := patch["generatesFiscalProduction"].(bool); ok {
		company.GeneratesFiscalProduction = v
	}
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}
	if _, err := h.companies.ByID(id); err != nil {
		respondError(c, err)
		return
	}
	if err := h.companies.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CompanyStatusActive   = "Active"
	CompanyStatusInactive = "Inactive"
)

type Company struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                      string    `gorm:"index" json:"name"`
	LegalName                 string    `json:"razaoSocial"`
	TradeName                 string    `json:"nomeFantasia"`
	CNPJ                      string    `json:"cnpj"`
	TaxpayerType              string    `json:"tipoContribuinte"`
	StateRegistration         string    `json:"ie"`
	PostalCode                string    `json:"cep"`
	Street                    string    `json:"rua"`
	Number                    string    `json:"numero"`
	District                  string    `json:"bairro"`
	City                      string    `json:"cidade"`
	State                     string    `json:"estado"`
	Email                     string    `json:"email"`
	Phone                     string    `json:"phone"`
	Contact                   string    `json:"contact"`
	AccountingName            string    `json:"contabilidadeNome"`
	AccountingEmail           string    `json:"contabilidadeEmail"`
	AccountingPhone           string    `json:"contabilidadeTelefone"`
	Status                    string    `gorm:"index;default:Active" json:"status"`
	GeneratesFiscalFiles      bool      `json:"generatesFiscalFiles"`
	GeneratesFiscalProduction bool      `json:"generatesFiscalProduction"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

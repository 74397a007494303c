// Package monthly materializes the period's obligations: one config per
// file-generating company, two zero-quantity batches per production company,
// one audit log row per run. Re-running within a competence converges, it
// never grows obligation rows.
package monthly

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fiscal-ops-backend/internal/competence"
	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/services/fiscalbatch"
	"fiscal-ops-backend/internal/services/fiscalfile"
)

// ErrAlreadyRunning is returned when a run is triggered while another is
// still in flight (manual trigger racing the schedule).
var ErrAlreadyRunning = errors.New("monthly reconciliation already running")

type CompanyStore interface {
	// ListForGeneration returns the active companies opted into either
	// recurring engine.
	ListForGeneration() ([]models.Company, error)
}

type LogStore interface {
	Create(entry *models.SystemLog) error
}

type Failure struct {
	CompanyID   uuid.UUID `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Error       string    `json:"error"`
}

type Result struct {
	Competence     string    `json:"competence"`
	Companies      int       `json:"companies"`
	ConfigsCreated int       `json:"configsCreated"`
	BatchesSeeded  int       `json:"batchesSeeded"`
	Failures       []Failure `json:"failures,omitempty"`
}

type Service struct {
	mu        sync.Mutex
	clock     *competence.Clock
	companies CompanyStore
	files     *fiscalfile.Service
	batches   *fiscalbatch.Service
	logs      LogStore
	log       *logrus.Logger
}

func NewService(clock *competence.Clock, companies CompanyStore, files *fiscalfile.Service, batches *fiscalbatch.Service, logs LogStore, log *logrus.Logger) *Service {
	return &Service{
		clock:     clock,
		companies: companies,
		files:     files,
		batches:   batches,
		logs:      logs,
		log:       log,
	}
}

// Run executes one reconciliation pass for the current competence. Each
// company is processed independently; a failing company is recorded in the
// result and does not abort its siblings. Exactly one SystemLog row is
// written per invocation.
func (s *Service) Run() (*Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer s.mu.Unlock()

	comp := s.clock.Competence()
	result := &Result{Competence: comp}
	s.log.WithField("competence", comp).Info("monthly reconciliation started")

	companies, err := s.companies.ListForGeneration()
	if err != nil {
		return nil, err
	}
	result.Companies = len(companies)

	for _, company := range companies {
		if err := s.reconcileCompany(company, comp, result); err != nil {
			result.Failures = append(result.Failures, Failure{
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Error:       err.Error(),
			})
			s.log.WithFields(logrus.Fields{
				"companyId":  company.ID,
				"competence": comp,
			}).WithError(err).Error("monthly reconciliation failed for company")
		}
	}

	if err := s.writeLog(result); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"competence":     comp,
		"companies":      result.Companies,
		"configsCreated": result.ConfigsCreated,
		"batchesSeeded":  result.BatchesSeeded,
		"failures":       len(result.Failures),
	}).Info("monthly reconciliation finished")
	return result, nil
}

func (s *Service) reconcileCompany(company models.Company, comp string, result *Result) error {
	if company.GeneratesFiscalFiles {
		_, created, err := s.files.EnsureConfig(company)
		if err != nil {
			return fmt.Errorf("ensure fiscal file config: %w", err)
		}
		if created {
			result.ConfigsCreated++
		}
	}

	if company.GeneratesFiscalProduction {
		for _, batchType := range []string{models.BatchTypeInbound, models.BatchTypeOutbound} {
			seeded, err := s.batches.Seed(company.ID, comp, batchType)
			if err != nil {
				return fmt.Errorf("seed %s batch: %w", batchType, err)
			}
			if seeded {
				result.BatchesSeeded++
			}
		}
	}
	return nil
}

func (s *Service) writeLog(result *Result) error {
	details, _ := json.Marshal(result)
	return s.logs.Create(&models.SystemLog{
		ID:        uuid.New(),
		Type:      "monthly",
		Message:   fmt.Sprintf("Monthly obligations for %s generated for %d company(ies).", result.Competence, result.Companies),
		Details:   details,
		CreatedAt: s.clock.Now(),
	})
}

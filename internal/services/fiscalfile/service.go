// Package fiscalfile implements the monthly file-generation cycle: one
// config row per company, one run per competence, and the pending/finished
// projection both the HTTP layer and the monthly job read from.
package fiscalfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fiscal-ops-backend/internal/competence"
	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

// DefaultResponsible is the last resort of the generated-by fallback chain.
const DefaultResponsible = "Usuario"

// Store is the persistence surface the engine needs. Implemented by
// repository.FiscalFileRepository; tests use an in-memory fake.
type Store interface {
	ConfigByID(id uuid.UUID) (*models.FiscalFile, error)
	ConfigByCompany(companyID uuid.UUID) (*models.FiscalFile, error)
	CreateConfig(cfg *models.FiscalFile) error
	SaveConfig(cfg *models.FiscalFile) error
	DeleteConfig(id uuid.UUID) error
	ListConfigs(activeOnly bool) ([]models.FiscalFile, error)

	RunByKey(companyID uuid.UUID, comp string) (*models.FiscalFileRun, error)
	CreateRun(run *models.FiscalFileRun) error
	ListRuns(companyID *uuid.UUID, comp string) ([]models.FiscalFileRun, error)
	CompaniesWithRun(comp string) ([]uuid.UUID, error)
}

type Service struct {
	store Store
	clock *competence.Clock
	log   *logrus.Logger
}

func NewService(store Store, clock *competence.Clock, log *logrus.Logger) *Service {
	return &Service{store: store, clock: clock, log: log}
}

// EnsureConfig materializes the config row for a company that generates
// fiscal files. Missing rows are created with the period defaults; existing
// rows have dayOfMonth, nextGeneration and active refreshed to them. The
// monthly refresh intentionally overwrites manual customizations; that
// policy lives here and nowhere else. Returns whether a row was created.
func (s *Service) EnsureConfig(company models.Company) (*models.FiscalFile, bool, error) {
	monthStart := s.clock.MonthStart()

	cfg, err := s.store.ConfigByCompany(company.ID)
	if errors.Is(err, repository.ErrNotFound) {
		cfg = &models.FiscalFile{
			ID:             uuid.New(),
			CompanyID:      company.ID,
			DayOfMonth:     1,
			NextGeneration: monthStart,
			Active:         true,
			CreatedAt:      s.clock.Now(),
		}
		if err := s.store.CreateConfig(cfg); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if cfg.DayOfMonth == 1 && cfg.Active && cfg.NextGeneration.Equal(monthStart) {
		return cfg, false, nil
	}
	cfg.DayOfMonth = 1
	cfg.NextGeneration = monthStart
	cfg.Active = true
	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

func (s *Service) ListAll() ([]models.FiscalFile, error) {
	return s.store.ListConfigs(false)
}

// ListPending returns the active configs whose company has no run recorded
// for the current competence. This is the pending predicate; the finished
// side is ListRuns grouped by company.
func (s *Service) ListPending() ([]models.FiscalFile, error) {
	comp := s.clock.Competence()
	done, err := s.store.CompaniesWithRun(comp)
	if err != nil {
		return nil, err
	}
	doneSet := make(map[uuid.UUID]struct{}, len(done))
	for _, id := range done {
		doneSet[id] = struct{}{}
	}

	configs, err := s.store.ListConfigs(true)
	if err != nil {
		return nil, err
	}
	pending := make([]models.FiscalFile, 0, len(configs))
	for _, cfg := range configs {
		if _, ok := doneSet[cfg.CompanyID]; !ok {
			pending = append(pending, cfg)
		}
	}
	return pending, nil
}

func (s *Service) ListRuns() ([]models.FiscalFileRun, error) {
	return s.store.ListRuns(nil, "")
}

func (s *Service) RunsByCompany(companyID uuid.UUID, comp string) ([]models.FiscalFileRun, error) {
	return s.store.ListRuns(&companyID, comp)
}

// Update applies a partial update; nil fields keep their prior value.
func (s *Service) Update(id uuid.UUID, responsible, observation *string) (*models.FiscalFile, error) {
	cfg, err := s.store.ConfigByID(id)
	if err != nil {
		return nil, fmt.Errorf("fiscal file config %s: %w", id, err)
	}
	if responsible != nil {
		cfg.Responsible = *responsible
	}
	if observation != nil {
		cfg.Observation = *observation
	}
	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MarkGenerated records a generation run for the current competence. When a
// run already exists for (company, competence) the existing run is returned
// unchanged; client retries and double-clicks are therefore safe.
func (s *Service) MarkGenerated(id uuid.UUID, responsible, notes string) (*models.FiscalFileRun, error) {
	cfg, err := s.store.ConfigByID(id)
	if err != nil {
		return nil, fmt.Errorf("fiscal file config %s: %w", id, err)
	}

	comp := s.clock.Competence()
	existing, err := s.store.RunByKey(cfg.CompanyID, comp)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	generatedBy := strings.TrimSpace(responsible)
	if generatedBy == "" {
		generatedBy = cfg.Responsible
	}
	if generatedBy == "" {
		generatedBy = DefaultResponsible
	}
	runNotes := notes
	if runNotes == "" {
		runNotes = cfg.Observation
	}

	run := &models.FiscalFileRun{
		ID:          uuid.New(),
		CompanyID:   cfg.CompanyID,
		Competence:  comp,
		GeneratedAt: s.clock.Now(),
		GeneratedBy: generatedBy,
		Notes:       runNotes,
		Status:      models.RunStatusGenerated,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.store.CreateRun(run); err != nil {
		return nil, err
	}

	cfg.Responsible = generatedBy
	cfg.NextGeneration = s.clock.MonthStart()
	cfg.Active = true
	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"companyId":  cfg.CompanyID,
		"competence": comp,
		"by":         generatedBy,
	}).Info("fiscal file marked generated")
	return run, nil
}

func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.store.ConfigByID(id); err != nil {
		return fmt.Errorf("fiscal file config %s: %w", id, err)
	}
	return s.store.DeleteConfig(id)
}

package monthly

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscal-ops-backend/internal/competence"
	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
	"fiscal-ops-backend/internal/services/fiscalbatch"
	"fiscal-ops-backend/internal/services/fiscalfile"
)

type fileStore struct {
	configs map[uuid.UUID]*models.FiscalFile
	runs    []*models.FiscalFileRun
	failFor uuid.UUID
}

func newFileStore() *fileStore {
	return &fileStore{configs: make(map[uuid.UUID]*models.FiscalFile)}
}

func (f *fileStore) ConfigByID(id uuid.UUID) (*models.FiscalFile, error) {
	cfg, ok := f.configs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (f *fileStore) ConfigByCompany(companyID uuid.UUID) (*models.FiscalFile, error) {
	if companyID == f.failFor {
		return nil, errors.New("connection reset")
	}
	for _, cfg := range f.configs {
		if cfg.CompanyID == companyID {
			cp := *cfg
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fileStore) CreateConfig(cfg *models.FiscalFile) error {
	cp := *cfg
	f.configs[cfg.ID] = &cp
	return nil
}

func (f *fileStore) SaveConfig(cfg *models.FiscalFile) error {
	cp := *cfg
	f.configs[cfg.ID] = &cp
	return nil
}

func (f *fileStore) DeleteConfig(id uuid.UUID) error {
	delete(f.configs, id)
	return nil
}

func (f *fileStore) ListConfigs(activeOnly bool) ([]models.FiscalFile, error) {
	out := make([]models.FiscalFile, 0, len(f.configs))
	for _, cfg := range f.configs {
		if activeOnly && !cfg.Active {
			continue
		}
		out = append(out, *cfg)
	}
	return out, nil
}

func (f *fileStore) RunByKey(companyID uuid.UUID, comp string) (*models.FiscalFileRun, error) {
	for _, run := range f.runs {
		if run.CompanyID == companyID && run.Competence == comp {
			cp := *run
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fileStore) CreateRun(run *models.FiscalFileRun) error {
	cp := *run
	f.runs = append(f.runs, &cp)
	return nil
}

func (f *fileStore) ListRuns(companyID *uuid.UUID, comp string) ([]models.FiscalFileRun, error) {
	out := make([]models.FiscalFileRun, 0, len(f.runs))
	for _, run := range f.runs {
		out = append(out, *run)
	}
	return out, nil
}

func (f *fileStore) CompaniesWithRun(comp string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, run := range f.runs {
		if run.Competence == comp {
			out = append(out, run.CompanyID)
		}
	}
	return out, nil
}

type batchStore struct {
	batches map[uuid.UUID]*models.FiscalBatch
}

func newBatchStore() *batchStore {
	return &batchStore{batches: make(map[uuid.UUID]*models.FiscalBatch)}
}

func (s *batchStore) ByID(id uuid.UUID) (*models.FiscalBatch, error) {
	b, ok := s.batches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *batchStore) ByKey(companyID uuid.UUID, comp, batchType string) (*models.FiscalBatch, error) {
	for _, b := range s.batches {
		if b.CompanyID == companyID && b.Competence == comp && b.Type == batchType {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *batchStore) Create(b *models.FiscalBatch) error {
	cp := *b
	s.batches[b.ID] = &cp
	return nil
}

func (s *batchStore) Save(b *models.FiscalBatch) error {
	cp := *b
	s.batches[b.ID] = &cp
	return nil
}

func (s *batchStore) Delete(id uuid.UUID) error {
	delete(s.batches, id)
	return nil
}

func (s *batchStore) List(companyID *uuid.UUID, comp string) ([]models.FiscalBatch, error) {
	out := make([]models.FiscalBatch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, *b)
	}
	return out, nil
}

func (s *batchStore) CreateIfAbsent(b *models.FiscalBatch) (bool, error) {
	if _, err := s.ByKey(b.CompanyID, b.Competence, b.Type); err == nil {
		return false, nil
	}
	return true, s.Create(b)
}

type companyStore struct {
	companies []models.Company
}

func (s *companyStore) ListForGeneration() ([]models.Company, error) {
	return s.companies, nil
}

func (s *companyStore) ByID(id uuid.UUID) (*models.Company, error) {
	for i := range s.companies {
		if s.companies[i].ID == id {
			return &s.companies[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type logStore struct {
	entries []*models.SystemLog
}

func (s *logStore) Create(entry *models.SystemLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

type fixture struct {
	job     *Service
	files   *fileStore
	batches *batchStore
	logs    *logStore
}

func newFixture(companies ...models.Company) *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := competence.NewFixedClock(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	files := newFileStore()
	batches := newBatchStore()
	logs := &logStore{}
	companyRepo := &companyStore{companies: companies}

	fileService := fiscalfile.NewService(files, clock, log)
	batchService := fiscalbatch.NewService(batches, companyRepo, clock, log)
	job := NewService(clock, companyRepo, fileService, batchService, logs, log)
	return &fixture{job: job, files: files, batches: batches, logs: logs}
}

func company(files, production bool) models.Company {
	return models.Company{
		ID:                        uuid.New(),
		Name:                      "Acme",
		Status:                    models.CompanyStatusActive,
		GeneratesFiscalFiles:      files,
		GeneratesFiscalProduction: production,
	}
}

func TestRunMaterializesObligations(t *testing.T) {
	f := newFixture(company(true, true))

	result, err := f.job.Run()
	require.NoError(t, err)
	assert.Equal(t, "2026-03", result.Competence)
	assert.Equal(t, 1, result.Companies)
	assert.Equal(t, 1, result.ConfigsCreated)
	assert.Equal(t, 2, result.BatchesSeeded)
	assert.Empty(t, result.Failures)

	assert.Len(t, f.files.configs, 1)
	assert.Len(t, f.batches.batches, 2)
}

func TestRunTwiceConverges(t *testing.T) {
	f := newFixture(company(true, true))

	_, err := f.job.Run()
	require.NoError(t, err)

	result, err := f.job.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.ConfigsCreated)
	assert.Equal(t, 0, result.BatchesSeeded)

	assert.Len(t, f.files.configs, 1)
	assert.Len(t, f.batches.batches, 2)
	assert.Len(t, f.logs.entries, 2)
}

func TestRunRespectsCompanyFlags(t *testing.T) {
	f := newFixture(company(true, false), company(false, true))

	result, err := f.job.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConfigsCreated)
	assert.Equal(t, 2, result.BatchesSeeded)
}

func TestRunIsolatesCompanyFailures(t *testing.T) {
	bad := company(true, false)
	good := company(true, true)
	f := newFixture(bad, good)
	f.files.failFor = bad.ID

	result, err := f.job.Run()
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, bad.ID, result.Failures[0].CompanyID)
	assert.Equal(t, 1, result.ConfigsCreated)
	assert.Equal(t, 2, result.BatchesSeeded)
	assert.Len(t, f.logs.entries, 1)
}

func TestRunWritesOneLogRow(t *testing.T) {
	f := newFixture(company(true, true))

	_, err := f.job.Run()
	require.NoError(t, err)
	require.Len(t, f.logs.entries, 1)

	entry := f.logs.entries[0]
	assert.Equal(t, "monthly", entry.Type)
	assert.Contains(t, entry.Message, "2026-03")

	var details Result
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, "2026-03", details.Competence)
	assert.Equal(t, 1, details.ConfigsCreated)
	assert.Equal(t, 2, details.BatchesSeeded)
}

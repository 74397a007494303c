package fiscalbatch

import (
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
)

type memoryStore struct {
	batches map[uuid.UUID]*models.FiscalBatch
}

func newMemoryStore() *memoryStore {
	return &memoryStore{batches: make(map[uuid.UUID]*models.FiscalBatch)}
}

func (m *memoryStore) ByID(id uuid.UUID) (*models.FiscalBatch, error) {
	b, ok := m.batches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memoryStore) ByKey(companyID uuid.UUID, comp, batchType string) (*models.FiscalBatch, error) {
	for _, b := range m.batches {
		if b.CompanyID == companyID && b.Competence == comp && b.Type == batchType {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryStore) Create(b *models.FiscalBatch) error {
	cp := *b
	m.batches[b.ID] = &cp
	return nil
}

func (m *memoryStore) Save(b *models.FiscalBatch) error {
	cp := *b
	m.batches[b.ID] = &cp
	return nil
}

func (m *memoryStore) Delete(id uuid.UUID) error {
	delete(m.batches, id)
	return nil
}

func (m *memoryStore) List(companyID *uuid.UUID, comp string) ([]models.FiscalBatch, error) {
	out := make([]models.FiscalBatch, 0, len(m.batches))
	for _, b := range m.batches {
		if companyID != nil && b.CompanyID != *companyID {
			continue
		}
		if comp != "" && b.Competence != comp {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *memoryStore) CreateIfAbsent(b *models.FiscalBatch) (bool, error) {
	if _, err := m.ByKey(b.CompanyID, b.Competence, b.Type); err == nil {
		return false, nil
	}
	return true, m.Create(b)
}

type memoryCompanies struct {
	companies map[uuid.UUID]*models.Company
}

func (m *memoryCompanies) ByID(id uuid.UUID) (*models.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func newTestService() (*Service, *memoryStore, *models.Company) {
	store := newMemoryStore()
	company := &models.Company{ID: uuid.New(), Name: "Acme", Status: models.CompanyStatusActive}
	companies := &memoryCompanies{companies: map[uuid.UUID]*models.Company{company.ID: company}}

	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := competence.NewFixedClock(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	return NewService(store, companies, clock, log), store, company
}

func TestCreateOrMergeCreates(t *testing.T) {
	svc, store, company := newTestService()

	b, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   10,
		Notes:      "first load",
		CreatedBy:  "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, b.Quantity)
	assert.Equal(t, "Maria", b.CreatedBy)
	assert.Len(t, store.batches, 1)
}

func TestCreateOrMergeSumsQuantities(t *testing.T) {
	svc, store, company := newTestService()

	_, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   10,
		Notes:      "morning",
	})
	require.NoError(t, err)

	merged, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   15,
		Notes:      "afternoon",
	})
	require.NoError(t, err)
	assert.Equal(t, 25, merged.Quantity)
	assert.Equal(t, "morning | afternoon", merged.Notes)
	assert.Len(t, store.batches, 1)
}

func TestCreateOrMergeKeepsTypesSeparate(t *testing.T) {
	svc, store, company := newTestService()

	for _, batchType := range []string{models.BatchTypeInbound, models.BatchTypeOutbound} {
		_, err := svc.CreateOrMerge(CreateInput{
			CompanyID:  company.ID,
			Competence: "2026-03",
			Type:       batchType,
			Quantity:   5,
		})
		require.NoError(t, err)
	}
	assert.Len(t, store.batches, 2)
}

func TestCreateOrMergeIntoSeededBatch(t *testing.T) {
	svc, store, company := newTestService()

	seeded, err := svc.Seed(company.ID, "2026-03", models.BatchTypeInbound)
	require.NoError(t, err)
	require.True(t, seeded)

	b, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   12,
		CreatedBy:  "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, b.Quantity)
	assert.Equal(t, "Maria", b.CreatedBy)

	b, err = svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   8,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, b.Quantity)
	assert.Len(t, store.batches, 1)
}

func TestCreateOrMergeBillingRequiresLaunch(t *testing.T) {
	svc, _, company := newTestService()

	b, err := svc.CreateOrMerge(CreateInput{
		CompanyID:   company.ID,
		Competence:  "2026-03",
		Type:        models.BatchTypeInbound,
		Quantity:    1,
		BillingDone: true,
	})
	require.NoError(t, err)
	assert.False(t, b.BillingDone)

	b, err = svc.CreateOrMerge(CreateInput{
		CompanyID:   company.ID,
		Competence:  "2026-03",
		Type:        models.BatchTypeInbound,
		Quantity:    1,
		LaunchDone:  true,
		BillingDone: true,
	})
	require.NoError(t, err)
	assert.True(t, b.LaunchDone)
	assert.True(t, b.BillingDone)
}

func TestCreateOrMergeDefaultsAuthor(t *testing.T) {
	svc, _, company := newTestService()

	b, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  company.ID,
		Competence: "2026-03",
		Type:       models.BatchTypeOutbound,
		Quantity:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Usuario", b.CreatedBy)
}

func TestCreateOrMergeValidation(t *testing.T) {
	svc, _, company := newTestService()

	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"missing company", CreateInput{Competence: "2026-03", Type: models.BatchTypeInbound}, "companyId"},
		{"bad competence", CreateInput{CompanyID: company.ID, Competence: "03/2026", Type: models.BatchTypeInbound}, "competence"},
		{"bad type", CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: "Sideways"}, "type"},
		{"negative quantity", CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeInbound, Quantity: -1}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrMerge(tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateOrMergeUnknownCompany(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateOrMerge(CreateInput{
		CompanyID:  uuid.New(),
		Competence: "2026-03",
		Type:       models.BatchTypeInbound,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateClearsBillingWhenLaunchCleared(t *testing.T) {
	svc, _, company := newTestService()

	b, err := svc.CreateOrMerge(CreateInput{
		CompanyID:   company.ID,
		Competence:  "2026-03",
		Type:        models.BatchTypeInbound,
		Quantity:    5,
		LaunchDone:  true,
		BillingDone: true,
	})
	require.NoError(t, err)

	off := false
	updated, err := svc.Update(b.ID, Patch{LaunchDone: &off})
	require.NoError(t, err)
	assert.False(t, updated.LaunchDone)
	assert.False(t, updated.BillingDone)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, store, company := newTestService()

	seeded, err := svc.Seed(company.ID, "2026-03", models.BatchTypeInbound)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.Seed(company.ID, "2026-03", models.BatchTypeInbound)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, store.batches, 1)

	for _, b := range store.batches {
		assert.Equal(t, 0, b.Quantity)
		assert.Equal(t, SeededBy, b.CreatedBy)
	}
}

func TestGroupStatus(t *testing.T) {
	launch, billing := GroupStatus(nil)
	assert.False(t, launch)
	assert.False(t, billing)

	group := []models.FiscalBatch{
		{LaunchDone: true, BillingDone: true},
		{LaunchDone: true, BillingDone: false},
	}
	launch, billing = GroupStatus(group)
	assert.True(t, launch)
	assert.False(t, billing)
}

func TestSummaryForCompetence(t *testing.T) {
	svc, _, company := newTestService()

	_, err := svc.CreateOrMerge(CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeInbound, Quantity: 10})
	require.NoError(t, err)
	_, err = svc.CreateOrMerge(CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeOutbound, Quantity: 4})
	require.NoError(t, err)

	rows, err := svc.SummaryForCompetence("2026-03")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Entrada)
	assert.Equal(t, 4, rows[0].Saida)
	assert.Equal(t, 14, rows[0].Total)
	assert.False(t, rows[0].LaunchDone)
}

func TestPendingAndFinishedPartition(t *testing.T) {
	svc, _, company := newTestService()

	_, err := svc.CreateOrMerge(CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeInbound, Quantity: 10})
	require.NoError(t, err)

	pending, err := svc.PendingSummary("2026-03")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	finished, err := svc.Finished("2026-03")
	require.NoError(t, err)
	assert.Empty(t, finished)

	_, err = svc.Finalize(company.ID, "2026-03")
	require.NoError(t, err)
	_, err = svc.Finalize(company.ID, "2026-03")
	require.NoError(t, err)

	pending, err = svc.PendingSummary("2026-03")
	require.NoError(t, err)
	assert.Empty(t, pending)

	finished, err = svc.Finished("2026-03")
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, company.ID, finished[0].CompanyID)
}

func TestFinalizeAdvancesOneStage(t *testing.T) {
	svc, _, company := newTestService()

	_, err := svc.CreateOrMerge(CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeInbound, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.CreateOrMerge(CreateInput{CompanyID: company.ID, Competence: "2026-03", Type: models.BatchTypeOutbound, Quantity: 3})
	require.NoError(t, err)

	group, err := svc.Finalize(company.ID, "2026-03")
	require.NoError(t, err)
	for _, b := range group {
		assert.True(t, b.LaunchDone)
		assert.False(t, b.BillingDone)
	}

	group, err = svc.Finalize(company.ID, "2026-03")
	require.NoError(t, err)
	for _, b := range group {
		assert.True(t, b.LaunchDone)
		assert.True(t, b.BillingDone)
	}
}

func TestFinalizeEmptyGroup(t *testing.T) {
	svc, _, company := newTestService()

	_, err := svc.Finalize(company.ID, "2026-03")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

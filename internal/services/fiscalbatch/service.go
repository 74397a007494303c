// Package fiscalbatch implements the production-batch engine: one logical
// batch per (company, competence, movement type), additive merge on duplicate
// submissions, the launch/billing completion stages and the per-competence
// summary and pending/finished projection.
package fiscalbatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fiscal-ops-backend/internal/competence"
	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

// SeededBy is stamped on the zero-quantity batches the monthly job creates.
const SeededBy = "System"

// ValidationError rejects a write before it happens and names the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store is implemented by repository.FiscalBatchRepository.
type Store interface {
	ByID(id uuid.UUID) (*models.FiscalBatch, error)
	ByKey(companyID uuid.UUID, comp, batchType string) (*models.FiscalBatch, error)
	Create(b *models.FiscalBatch) error
	Save(b *models.FiscalBatch) error
	Delete(id uuid.UUID) error
	List(companyID *uuid.UUID, comp string) ([]models.FiscalBatch, error)
	// CreateIfAbsent inserts unless the (company, competence, type) key
	// already exists, atomically. Returns whether a row was inserted.
	CreateIfAbsent(b *models.FiscalBatch) (bool, error)
}

// CompanyStore resolves batch owners; only the lookup is needed here.
type CompanyStore interface {
	ByID(id uuid.UUID) (*models.Company, error)
}

type Service struct {
	store     Store
	companies CompanyStore
	clock     *competence.Clock
	log       *logrus.Logger
}

func NewService(store Store, companies CompanyStore, clock *competence.Clock, log *logrus.Logger) *Service {
	return &Service{store: store, companies: companies, clock: clock, log: log}
}

type CreateInput struct {
	CompanyID   uuid.UUID
	Competence  string
	Type        string
	Quantity    int
	Notes       string
	LaunchDone  bool
	BillingDone bool
	CreatedBy   string
}

func (in *CreateInput) validate() error {
	if in.CompanyID == uuid.Nil {
		return &ValidationError{Field: "companyId", Reason: "required"}
	}
	if !competence.IsCompetence(in.Competence) {
		return &ValidationError{Field: "competence", Reason: "must be YYYY-MM"}
	}
	if in.Type != models.BatchTypeInbound && in.Type != models.BatchTypeOutbound {
		return &ValidationError{Field: "type", Reason: "must be Inbound or Outbound"}
	}
	if in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return nil
}

// CreateOrMerge inserts a batch, or folds the submission into the existing
// row for the same (company, competence, type): quantity is summed, notes are
// concatenated, author and timestamp follow the incoming write, done flags
// are overwritten with the incoming values. billingDone can never be true
// while launchDone is false.
func (s *Service) CreateOrMerge(in CreateInput) (*models.FiscalBatch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.companies.ByID(in.CompanyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", in.CompanyID, err)
	}

	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = fiscalDefaultAuthor
	}
	billing := in.BillingDone
	if !in.LaunchDone {
		billing = false
	}
	now := s.clock.Now()

	existing, err := s.store.ByKey(in.CompanyID, in.Competence, in.Type)
	if errors.Is(err, repository.ErrNotFound) {
		b := &models.FiscalBatch{
			ID:          uuid.New(),
			CompanyID:   in.CompanyID,
			Competence:  in.Competence,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Notes:       in.Notes,
			LaunchDone:  in.LaunchDone,
			BillingDone: billing,
			CreatedBy:   createdBy,
			CreatedAt:   now,
		}
		if err := s.store.Create(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	if err != nil {
		return nil, err
	}

	existing.Quantity += in.Quantity
	existing.Notes = mergeNotes(existing.Notes, in.Notes)
	existing.LaunchDone = in.LaunchDone
	existing.BillingDone = billing
	existing.CreatedBy = createdBy
	existing.CreatedAt = now
	if err := s.store.Save(existing); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"companyId":  in.CompanyID,
		"competence": in.Competence,
		"type":       in.Type,
		"quantity":   existing.Quantity,
	}).Debug("fiscal batch merged")
	return existing, nil
}

const fiscalDefaultAuthor = "Usuario"

func mergeNotes(existing, incoming string) string {
	switch {
	case incoming == "":
		return existing
	case existing == "":
		return incoming
	default:
		return existing + " | " + incoming
	}
}

type Patch struct {
	Quantity    *int
	Notes       *string
	LaunchDone  *bool
	BillingDone *bool
}

// Update replaces the supplied fields directly; no merge semantics here.
// The billing-after-launch dependency is normalized, never errored: clearing
// launchDone drags billingDone back to false.
func (s *Service) Update(id uuid.UUID, patch Patch) (*models.FiscalBatch, error) {
	b, err := s.store.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("fiscal batch %s: %w", id, err)
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
		}
		b.Quantity = *patch.Quantity
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	nextLaunch := b.LaunchDone
	if patch.LaunchDone != nil {
		nextLaunch = *patch.LaunchDone
	}
	nextBilling := b.BillingDone
	if patch.BillingDone != nil {
		nextBilling = *patch.BillingDone
	}
	b.LaunchDone = nextLaunch
	if nextLaunch {
		b.BillingDone = nextBilling
	} else {
		b.BillingDone = false
	}

	if err := s.store.Save(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(id uuid.UUID) (*models.FiscalBatch, error) {
	b, err := s.store.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("fiscal batch %s: %w", id, err)
	}
	return b, nil
}

func (s *Service) List(companyID *uuid.UUID, comp string) ([]models.FiscalBatch, error) {
	return s.store.List(companyID, comp)
}

func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.store.ByID(id); err != nil {
		return fmt.Errorf("fiscal batch %s: %w", id, err)
	}
	return s.store.Delete(id)
}

// Seed inserts the zero-quantity batch the monthly job materializes for a
// company that generates fiscal production. Existing rows are left alone.
func (s *Service) Seed(companyID uuid.UUID, comp, batchType string) (bool, error) {
	return s.store.CreateIfAbsent(&models.FiscalBatch{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Competence: comp,
		Type:       batchType,
		Quantity:   0,
		CreatedBy:  SeededBy,
		CreatedAt:  s.clock.Now(),
	})
}

// GroupStatus derives the two completion stages of a batch group. An empty
// group is never done: you cannot finish what does not exist.
func GroupStatus(batches []models.FiscalBatch) (launchDone, billingDone bool) {
	if len(batches) == 0 {
		return false, false
	}
	launchDone, billingDone = true, true
	for _, b := range batches {
		launchDone = launchDone && b.LaunchDone
		billingDone = billingDone && b.BillingDone
	}
	return launchDone, billingDone
}

type SummaryRow struct {
	CompanyID   uuid.UUID `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Entrada     int       `json:"entrada"`
	Saida       int       `json:"saida"`
	Total       int       `json:"total"`
	LaunchDone  bool      `json:"launchDone"`
	BillingDone bool      `json:"billingDone"`
}

// SummaryForCompetence groups the competence's batches by company, summing
// inbound and outbound quantities, sorted by company name.
func (s *Service) SummaryForCompetence(comp string) ([]SummaryRow, error) {
	if !competence.IsCompetence(comp) {
		return nil, &ValidationError{Field: "competence", Reason: "must be YYYY-MM"}
	}
	batches, err := s.store.List(nil, comp)
	if err != nil {
		return nil, err
	}

	groups := make(map[uuid.UUID][]models.FiscalBatch)
	for _, b := range batches {
		groups[b.CompanyID] = append(groups[b.CompanyID], b)
	}

	rows := make([]SummaryRow, 0, len(groups))
	for companyID, group := range groups {
		row := SummaryRow{CompanyID: companyID, CompanyName: companyName(group)}
		for _, b := range group {
			if b.Type == models.BatchTypeInbound {
				row.Entrada += b.Quantity
			} else {
				row.Saida += b.Quantity
			}
		}
		row.Total = row.Entrada + row.Saida
		row.LaunchDone, row.BillingDone = GroupStatus(group)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CompanyName < rows[j].CompanyName })
	return rows, nil
}

// PendingSummary keeps the summary rows whose group is not fully done.
// Together with Finished it partitions every group: never both, never neither.
func (s *Service) PendingSummary(comp string) ([]SummaryRow, error) {
	rows, err := s.SummaryForCompetence(comp)
	if err != nil {
		return nil, err
	}
	pending := make([]SummaryRow, 0, len(rows))
	for _, row := range rows {
		if !(row.LaunchDone && row.BillingDone) {
			pending = append(pending, row)
		}
	}
	return pending, nil
}

type FinishedGroup struct {
	CompanyID   uuid.UUID            `json:"companyId"`
	CompanyName string               `json:"companyName"`
	Competence  string               `json:"competence"`
	Batches     []models.FiscalBatch `json:"batches"`
}

// Finished returns the batch groups whose every batch has both stages done,
// grouped by (company, competence). Pass comp="" for all competences.
func (s *Service) Finished(comp string) ([]FinishedGroup, error) {
	if comp != "" && !competence.IsCompetence(comp) {
		return nil, &ValidationError{Field: "competence", Reason: "must be YYYY-MM"}
	}
	batches, err := s.store.List(nil, comp)
	if err != nil {
		return nil, err
	}

	type key struct {
		companyID uuid.UUID
		comp      string
	}
	groups := make(map[key][]models.FiscalBatch)
	for _, b := range batches {
		k := key{b.CompanyID, b.Competence}
		groups[k] = append(groups[k], b)
	}

	finished := make([]FinishedGroup, 0, len(groups))
	for k, group := range groups {
		launch, billing := GroupStatus(group)
		if launch && billing {
			finished = append(finished, FinishedGroup{
				CompanyID:   k.companyID,
				CompanyName: companyName(group),
				Competence:  k.comp,
				Batches:     group,
			})
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		if finished[i].CompanyName != finished[j].CompanyName {
			return finished[i].CompanyName < finished[j].CompanyName
		}
		return finished[i].Competence > finished[j].Competence
	})
	return finished, nil
}

// Finalize advances the company's batch group one stage: the first call marks
// launch done on every batch, the next marks billing done. Safe to call
// repeatedly; the UI exposes it as a single button.
func (s *Service) Finalize(companyID uuid.UUID, comp string) ([]models.FiscalBatch, error) {
	if !competence.IsCompetence(comp) {
		return nil, &ValidationError{Field: "competence", Reason: "must be YYYY-MM"}
	}
	group, err := s.store.List(&companyID, comp)
	if err != nil {
		return nil, err
	}
	if len(group) == 0 {
		return nil, fmt.Errorf("no batches for company %s in %s: %w", companyID, comp, repository.ErrNotFound)
	}

	allLaunched, _ := GroupStatus(group)
	for i := range group {
		if allLaunched {
			group[i].BillingDone = true
		} else {
			group[i].LaunchDone = true
		}
		if err := s.store.Save(&group[i]); err != nil {
			return nil, err
		}
	}
	return group, nil
}

func companyName(group []models.FiscalBatch) string {
	for _, b := range group {
		if b.Company != nil {
			return b.Company.Name
		}
	}
	return ""
}

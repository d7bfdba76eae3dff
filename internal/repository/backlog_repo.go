package repository

import (
	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/domain"
	"gorm.io/gorm"
)

// BacklogPatch carries the mutable backlog fields of a partial update.
// A nil pointer (or nil Tags slice) means "field not supplied".
type BacklogPatch struct {
	Content           *string
	Tags              []string
	EstimatedDuration *int
}

// BacklogRepository is the backlog item data access layer
type BacklogRepository interface {
	Create(item *domain.Backlog) error
	ListByStatus(openid string, status domain.BacklogStatus) ([]*domain.Backlog, error)
	FindByID(openid string, id uint64) (*domain.Backlog, error)
	TransitionStatus(openid string, id uint64, target domain.BacklogStatus) (UpdateOutcome, error)
	UpdateFields(openid string, id uint64, patch BacklogPatch) (UpdateOutcome, error)
}

type backlogRepository struct {
	db *gorm.DB
}

// NewBacklogRepository creates a new BacklogRepository
func NewBacklogRepository(db *gorm.DB) BacklogRepository {
	return &backlogRepository{db: db}
}

// Create inserts a new item. Status is forced to pending regardless of
// whatever the caller put in the struct.
func (r *backlogRepository) Create(item *domain.Backlog) error {
	item.Status = domain.StatusPending
	return r.db.Create(item).Error
}

func (r *backlogRepository) ListByStatus(openid string, status domain.BacklogStatus) ([]*domain.Backlog, error) {
	var items []*domain.Backlog
	err := r.db.Where("openid = ? AND status = ?", openid, status).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Backlog{}
	}
	return items, nil
}

func (r *backlogRepository) FindByID(openid string, id uint64) (*domain.Backlog, error) {
	var item domain.Backlog
	err := r.db.Where("id = ? AND openid = ?", id, openid).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// TransitionStatus applies the forward-only state machine in one guarded
// statement: the UPDATE only matches rows whose current status is a legal
// source for the target. A zero-row result is disambiguated with a single
// follow-up read inside this call.
func (r *backlogRepository) TransitionStatus(openid string, id uint64, target domain.BacklogStatus) (UpdateOutcome, error) {
	sources := domain.TransitionSources(target)
	if len(sources) == 0 {
		return OutcomeUnchanged, common.ErrInvalidTransition
	}

	res := r.db.Model(&domain.Backlog{}).
		Where("id = ? AND openid = ? AND status IN ?", id, openid, sources).
		Update("status", target)
	if res.Error != nil {
		return OutcomeUnchanged, res.Error
	}
	if res.RowsAffected > 0 {
		return OutcomeUpdated, nil
	}

	item, err := r.FindByID(openid, id)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if item == nil {
		return OutcomeNotFound, nil
	}
	if item.Status == target {
		return OutcomeUnchanged, nil
	}
	// Row exists in a state the target is not reachable from (deleted is terminal).
	return OutcomeUnchanged, common.ErrInvalidTransition
}

func (r *backlogRepository) UpdateFields(openid string, id uint64, patch BacklogPatch) (UpdateOutcome, error) {
	values := map[string]interface{}{}
	if patch.Content != nil {
		values["content"] = *patch.Content
	}
	if patch.Tags != nil {
		values["tags_json"] = domain.StringList(patch.Tags)
	}
	if patch.EstimatedDuration != nil {
		values["estimated_duration_min"] = *patch.EstimatedDuration
	}

	if len(values) == 0 {
		return r.existsOutcome(openid, id)
	}

	// Deleted items are immutable; a matching deleted row degrades to "no change".
	res := r.db.Model(&domain.Backlog{}).
		Where("id = ? AND openid = ? AND status <> ?", id, openid, domain.StatusDeleted).
		Updates(values)
	if res.Error != nil {
		return OutcomeUnchanged, res.Error
	}
	if res.RowsAffected > 0 {
		return OutcomeUpdated, nil
	}
	return r.existsOutcome(openid, id)
}

func (r *backlogRepository) existsOutcome(openid string, id uint64) (UpdateOutcome, error) {
	var count int64
	err := r.db.Model(&domain.Backlog{}).Where("id = ? AND openid = ?", id, openid).Count(&count).Error
	if err != nil {
		return OutcomeUnchanged, err
	}
	if count == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeUnchanged, nil
}

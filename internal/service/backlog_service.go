package service

import (
	"fmt"
	"strings"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/domain"
	"github.com/flowlog/flowlog-backend/internal/repository"
)

// CreateBacklogInput is the backlog creation payload. Any caller-supplied
// status is ignored: new items always start pending.
type CreateBacklogInput struct {
	Content           string
	Tags              interface{}
	EstimatedDuration *int
}

// UpdateBacklogInput carries the mutable backlog fields
type UpdateBacklogInput struct {
	Content           *string
	Tags              interface{}
	EstimatedDuration *int
}

// BacklogService validates backlog operations and enforces the
// forward-only status machine ahead of storage
type BacklogService struct {
	repo repository.BacklogRepository
}

// NewBacklogService creates a new BacklogService
func NewBacklogService(repo repository.BacklogRepository) *BacklogService {
	return &BacklogService{repo: repo}
}

// Create inserts a new pending item
func (s *BacklogService) Create(openid string, in CreateBacklogInput) (*domain.Backlog, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: missing required field: content", common.ErrInvalidInput)
	}

	item := &domain.Backlog{
		OpenID:            openid,
		Content:           domain.TruncateRunes(content, domain.MaxBacklogContentLen),
		Tags:              domain.NormalizeTags(in.Tags, domain.MaxBacklogTags),
		EstimatedDuration: clampEstimate(in.EstimatedDuration),
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns the tenant's items in exactly the requested status,
// newest first. An empty status defaults to pending.
func (s *BacklogService) List(openid, status string) ([]*domain.Backlog, error) {
	if status == "" {
		status = string(domain.StatusPending)
	}
	parsed, ok := domain.ParseBacklogStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status", common.ErrInvalidInput)
	}
	return s.repo.ListByStatus(openid, parsed)
}

// FindByID returns a single item or nil (deleted items stay addressable)
func (s *BacklogService) FindByID(openid string, id uint64) (*domain.Backlog, error) {
	return s.repo.FindByID(openid, id)
}

// Transition moves an item to done or deleted. Any other target is
// rejected here, before any storage call. Re-requesting the current
// status reports Unchanged rather than an error.
func (s *BacklogService) Transition(openid string, id uint64, status string) (repository.UpdateOutcome, error) {
	target, ok := domain.ParseBacklogStatus(status)
	if !ok || !domain.IsTransitionTarget(target) {
		return repository.OutcomeUnchanged, fmt.Errorf("%w: status must be 'done' or 'deleted'", common.ErrInvalidInput)
	}
	return s.repo.TransitionStatus(openid, id, target)
}

// Update applies a partial update of content/tags/estimatedDuration
func (s *BacklogService) Update(openid string, id uint64, in UpdateBacklogInput) (repository.UpdateOutcome, error) {
	patch := repository.BacklogPatch{
		EstimatedDuration: clampEstimate(in.EstimatedDuration),
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return repository.OutcomeUnchanged, fmt.Errorf("%w: content must be non-empty", common.ErrInvalidInput)
		}
		content = domain.TruncateRunes(content, domain.MaxBacklogContentLen)
		patch.Content = &content
	}
	if _, ok := in.Tags.([]interface{}); ok {
		patch.Tags = domain.NormalizeTags(in.Tags, domain.MaxBacklogTags)
	}
	return s.repo.UpdateFields(openid, id, patch)
}

// clampEstimate floors a supplied estimate at zero minutes
func clampEstimate(v *int) *int {
	if v == nil {
		return nil
	}
	est := *v
	if est < 0 {
		est = 0
	}
	return &est
}

package service

import (
	"fmt"
	"strings"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/flowlog/flowlog-backend/internal/domain"
	"github.com/flowlog/flowlog-backend/internal/repository"
)

// CreateCardInput is the already-shape-validated card creation payload.
// Tags may be any JSON value; non-lists degrade to an empty tag list.
type CreateCardInput struct {
	Content   string
	Insight   string
	NextPlan  string
	Mood      *int
	StartTime int64
	EndTime   int64
	Tags      interface{}
	DateStr   string
}

// UpdateCardInput carries the mutable card fields. Tags counts as
// supplied only when the client sent an actual JSON array.
type UpdateCardInput struct {
	Insight *string
	Mood    *int
	Tags    interface{}
}

// CardService validates and normalizes card operations before storage
type CardService struct {
	repo repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(repo repository.CardRepository) *CardService {
	return &CardService{repo: repo}
}

// Create validates the input, derives duration and the calendar-day key,
// and inserts the card. Duration is floor((end-start)/60000) minutes and
// is never recomputed afterwards.
func (s *CardService) Create(openid string, in CreateCardInput) (*domain.Card, error) {
	content := strings.TrimSpace(in.Content)
	nextPlan := strings.TrimSpace(in.NextPlan)
	if content == "" || nextPlan == "" || in.StartTime == 0 || in.EndTime == 0 {
		return nil, fmt.Errorf("%w: missing required fields: content/nextPlan/startTime/endTime", common.ErrInvalidInput)
	}
	if in.StartTime <= 0 || in.EndTime <= 0 || in.EndTime < in.StartTime {
		return nil, fmt.Errorf("%w: invalid startTime/endTime", common.ErrInvalidInput)
	}

	mood := 3
	if in.Mood != nil {
		mood = *in.Mood
	}
	dateStr := in.DateStr
	if dateStr == "" {
		dateStr = domain.DateStrFromMillis(in.StartTime)
	}

	card := &domain.Card{
		OpenID:    openid,
		Content:   content,
		Insight:   in.Insight,
		Mood:      mood,
		NextPlan:  nextPlan,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Duration:  domain.DurationMinutes(in.StartTime, in.EndTime),
		Tags:      domain.NormalizeTags(in.Tags, domain.MaxCardTags),
		DateStr:   dateStr,
	}
	if err := s.repo.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

// ListByDate returns the tenant's cards for one calendar day, ascending
// by start time
func (s *CardService) ListByDate(openid, dateStr string) ([]*domain.Card, error) {
	if dateStr == "" {
		return nil, fmt.Errorf("%w: missing query param: date", common.ErrInvalidInput)
	}
	return s.repo.ListByDate(openid, dateStr)
}

// Update applies a partial update of insight/mood/tags
func (s *CardService) Update(openid string, id uint64, in UpdateCardInput) (repository.UpdateOutcome, error) {
	patch := repository.CardPatch{
		Insight: in.Insight,
		Mood:    in.Mood,
	}
	if _, ok := in.Tags.([]interface{}); ok {
		patch.Tags = domain.NormalizeTags(in.Tags, domain.MaxCardTags)
	}
	return s.repo.UpdatePartial(openid, id, patch)
}

// Delete removes the card outright (hard delete)
func (s *CardService) Delete(openid string, id uint64) (bool, error) {
	return s.repo.DeleteByID(openid, id)
}

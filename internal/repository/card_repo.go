package repository

import (
	"github.com/flowlog/flowlog-backend/internal/domain"
	"gorm.io/gorm"
)

// CardPatch carries the mutable card fields of a partial update.
// A nil pointer (or nil Tags slice) means "field not supplied".
type CardPatch struct {
	Insight *string
	Mood    *int
	Tags    []string
}

// CardRepository is the journal card data access layer
type CardRepository interface {
	Create(card *domain.Card) error
	ListByDate(openid, dateStr string) ([]*domain.Card, error)
	FindByID(openid string, id uint64) (*domain.Card, error)
	UpdatePartial(openid string, id uint64, patch CardPatch) (UpdateOutcome, error)
	DeleteByID(openid string, id uint64) (bool, error)
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(card *domain.Card) error {
	return r.db.Create(card).Error
}

func (r *cardRepository) ListByDate(openid, dateStr string) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.Where("openid = ? AND date_str = ?", openid, dateStr).
		Order("start_time_ms ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*domain.Card{}
	}
	return cards, nil
}

func (r *cardRepository) FindByID(openid string, id uint64) (*domain.Card, error) {
	var card domain.Card
	err := r.db.Where("id = ? AND openid = ?", id, openid).First(&card).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) UpdatePartial(openid string, id uint64, patch CardPatch) (UpdateOutcome, error) {
	values := map[string]interface{}{}
	if patch.Insight != nil {
		values["insight"] = *patch.Insight
	}
	if patch.Mood != nil {
		values["mood"] = *patch.Mood
	}
	if patch.Tags != nil {
		values["tags_json"] = domain.StringList(patch.Tags)
	}

	// An empty patch issues no write statement, only the existence read
	// that splits "nothing to do" from "no such card".
	if len(values) == 0 {
		return r.existsOutcome(openid, id)
	}

	res := r.db.Model(&domain.Card{}).
		Where("id = ? AND openid = ?", id, openid).
		Updates(values)
	if res.Error != nil {
		return OutcomeUnchanged, res.Error
	}
	if res.RowsAffected > 0 {
		return OutcomeUpdated, nil
	}
	return r.existsOutcome(openid, id)
}

func (r *cardRepository) DeleteByID(openid string, id uint64) (bool, error) {
	res := r.db.Where("id = ? AND openid = ?", id, openid).Delete(&domain.Card{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *cardRepository) existsOutcome(openid string, id uint64) (UpdateOutcome, error) {
	var count int64
	err := r.db.Model(&domain.Card{}).Where("id = ? AND openid = ?", id, openid).Count(&count).Error
	if err != nil {
		return OutcomeUnchanged, err
	}
	if count == 0 {
		return OutcomeNotFound, nil
	}
	return OutcomeUnchanged, nil
}

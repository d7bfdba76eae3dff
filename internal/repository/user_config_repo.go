package repository

import (
	"time"

	"github.com/flowlog/flowlog-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserConfigPatch carries the profile fields of a partial upsert.
// Nil pointers and nil slices/maps mean "field not supplied".
// ReminderTime is tri-state: ReminderTimeSet false = untouched,
// true with nil pointer = explicit clear, true with value = set.
type UserConfigPatch struct {
	NickName        *string
	AvatarURL       *string
	CurrentTitle    *string
	CurrentTags     []string
	Tags            []string
	ReminderTime    *string
	ReminderTimeSet bool
	Preferences     map[string]interface{}
}

// UserConfigRepository is the per-tenant profile/config data access layer
type UserConfigRepository interface {
	Get(openid string) (*domain.UserConfig, error)
	EnsureAndGet(openid string) (*domain.UserConfig, error)
	UpsertPartial(openid string, patch UserConfigPatch) error
}

type userConfigRepository struct {
	db *gorm.DB
}

// NewUserConfigRepository creates a new UserConfigRepository
func NewUserConfigRepository(db *gorm.DB) UserConfigRepository {
	return &userConfigRepository{db: db}
}

func (r *userConfigRepository) Get(openid string) (*domain.UserConfig, error) {
	var cfg domain.UserConfig
	err := r.db.Where("openid = ?", openid).First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// EnsureAndGet returns the tenant's row, creating an empty default row
// first if none exists, so a brand-new tenant always gets a well-formed
// document and later partial updates have a target.
func (r *userConfigRepository) EnsureAndGet(openid string) (*domain.UserConfig, error) {
	cfg, err := r.Get(openid)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	if err := r.UpsertPartial(openid, UserConfigPatch{}); err != nil {
		return nil, err
	}
	return r.Get(openid)
}

// UpsertPartial creates the row if absent and applies only the supplied
// fields. An entirely empty patch still guarantees row existence without
// touching any field (insert-or-ignore).
func (r *userConfigRepository) UpsertPartial(openid string, patch UserConfigPatch) error {
	row := &domain.UserConfig{OpenID: openid}
	var cols []string

	if patch.NickName != nil {
		row.NickName = *patch.NickName
		cols = append(cols, "nick_name")
	}
	if patch.AvatarURL != nil {
		row.AvatarURL = *patch.AvatarURL
		cols = append(cols, "avatar_url")
	}
	if patch.CurrentTitle != nil {
		row.CurrentTitle = *patch.CurrentTitle
		cols = append(cols, "current_title")
	}
	if patch.CurrentTags != nil {
		row.CurrentTags = domain.StringList(patch.CurrentTags)
		cols = append(cols, "current_tags_json")
	}
	if patch.Tags != nil {
		row.Tags = domain.StringList(patch.Tags)
		cols = append(cols, "tags_json")
	}
	if patch.ReminderTimeSet {
		row.ReminderTime = patch.ReminderTime
		cols = append(cols, "reminder_time")
	}
	if patch.Preferences != nil {
		// Wholesale replace, no deep merge
		row.Preferences = domain.JSONMap(patch.Preferences)
		cols = append(cols, "preferences_json")
	}

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "openid"}}}
	if len(cols) == 0 {
		conflict.DoNothing = true
	} else {
		now := time.Now()
		row.UpdatedAt = now
		conflict.DoUpdates = clause.AssignmentColumns(append(cols, "updated_at"))
	}
	return r.db.Clauses(conflict).Create(row).Error
}

package service

import (
	"encoding/json"

	"github.com/flowlog/flowlog-backend/internal/domain"
	"github.com/flowlog/flowlog-backend/internal/repository"
)

// UpdateProfileInput is the raw profile patch. Every field is optional;
// loosely-typed fields (tags, reminderTime, preferences) are filtered
// here rather than rejected, matching the tolerant client contract.
type UpdateProfileInput struct {
	NickName     *string
	AvatarURL    *string
	CurrentTitle *string
	CurrentTags  interface{}
	Tags         interface{}
	ReminderTime json.RawMessage
	Preferences  interface{}
}

// ProfileService handles the per-tenant profile/config document
type ProfileService struct {
	repo repository.UserConfigRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo repository.UserConfigRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the tenant's profile, lazily creating the default row so a
// brand-new tenant gets a well-formed document instead of an error
func (s *ProfileService) Get(openid string) (*domain.UserConfig, error) {
	return s.repo.EnsureAndGet(openid)
}

// Update merges the supplied fields into the tenant's row, creating it
// if absent. Unsupported value types for a field are ignored, not errors.
func (s *ProfileService) Update(openid string, in UpdateProfileInput) error {
	patch := repository.UserConfigPatch{}

	if in.NickName != nil {
		v := domain.TruncateRunes(*in.NickName, domain.MaxNickNameLen)
		patch.NickName = &v
	}
	if in.AvatarURL != nil {
		v := domain.TruncateRunes(*in.AvatarURL, domain.MaxAvatarURLLen)
		patch.AvatarURL = &v
	}
	if in.CurrentTitle != nil {
		v := domain.TruncateRunes(*in.CurrentTitle, domain.MaxCurrentTitleLen)
		patch.CurrentTitle = &v
	}
	if _, ok := in.CurrentTags.([]interface{}); ok {
		patch.CurrentTags = domain.NormalizeTags(in.CurrentTags, domain.MaxConfigTags)
	}
	if _, ok := in.Tags.([]interface{}); ok {
		patch.Tags = domain.NormalizeTags(in.Tags, domain.MaxConfigTags)
	}
	if prefs, ok := in.Preferences.(map[string]interface{}); ok && prefs != nil {
		patch.Preferences = prefs
	}
	applyReminderTime(&patch, in.ReminderTime)

	return s.repo.UpsertPartial(openid, patch)
}

// applyReminderTime resolves the tri-state reminderTime field: absent
// leaves it untouched, JSON null clears it, a JSON string sets it, and
// any other type is ignored.
func applyReminderTime(patch *repository.UserConfigPatch, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	switch t := v.(type) {
	case nil:
		patch.ReminderTimeSet = true
	case string:
		patch.ReminderTime = &t
		patch.ReminderTimeSet = true
	}
}

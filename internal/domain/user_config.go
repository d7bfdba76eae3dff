package domain

import "time"

// Per-field length caps for the user config row
const (
	MaxNickNameLen     = 64
	MaxAvatarURLLen    = 255
	MaxCurrentTitleLen = 255
)

// UserConfig is the single profile/preferences row per tenant. The row is
// created lazily on first read so partial updates always have a target;
// it is never deleted.
type UserConfig struct {
	OpenID       string     `gorm:"column:openid;type:varchar(64);primaryKey" json:"openid"`
	NickName     string     `gorm:"column:nick_name;type:varchar(64)" json:"nickName"`
	AvatarURL    string     `gorm:"column:avatar_url;type:varchar(255)" json:"avatarUrl"`
	CurrentTitle string     `gorm:"column:current_title;type:varchar(255)" json:"currentTitle"`
	CurrentTags  StringList `gorm:"column:current_tags_json;type:json" json:"currentTags"`
	Tags         StringList `gorm:"column:tags_json;type:json" json:"tags"`
	ReminderTime *string    `gorm:"column:reminder_time;type:varchar(16)" json:"reminderTime"`
	Preferences  JSONMap    `gorm:"column:preferences_json;type:json" json:"preferences"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserConfig) TableName() string { return "user_configs" }

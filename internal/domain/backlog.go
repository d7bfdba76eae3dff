package domain

import "time"

// Backlog represents a todo item with a forward-only status lifecycle.
// Deleted items stay in the table (excluded from listings, still
// addressable by id).
type Backlog struct {
	ID                uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OpenID            string        `gorm:"column:openid;type:varchar(64);index" json:"-"`
	Content           string        `gorm:"column:content;type:varchar(255)" json:"content"`
	Status            BacklogStatus `gorm:"column:status;type:varchar(16);default:'pending'" json:"status"`
	Tags              StringList    `gorm:"column:tags_json;type:json" json:"tags"`
	EstimatedDuration *int          `gorm:"column:estimated_duration_min" json:"estimatedDuration"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Backlog) TableName() string { return "backlogs" }

// MaxBacklogContentLen bounds the content column
const MaxBacklogContentLen = 255

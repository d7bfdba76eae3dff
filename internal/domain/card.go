package domain

import "time"

// Card represents one journaled activity interval. StartTime/EndTime are
// millisecond timestamps; Duration is derived once at creation and never
// recomputed (no update path touches start/end).
type Card struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OpenID    string     `gorm:"column:openid;type:varchar(64);index:idx_cards_openid_date,priority:1" json:"-"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	Insight   string     `gorm:"column:insight;type:text" json:"insight"`
	Mood      int        `gorm:"column:mood;default:3" json:"mood"`
	NextPlan  string     `gorm:"column:next_plan;type:text" json:"nextPlan"`
	StartTime int64      `gorm:"column:start_time_ms" json:"startTime"`
	EndTime   int64      `gorm:"column:end_time_ms" json:"endTime"`
	Duration  int        `gorm:"column:duration_min" json:"duration"`
	Tags      StringList `gorm:"column:tags_json;type:json" json:"tags"`
	DateStr   string     `gorm:"column:date_str;type:varchar(10);index:idx_cards_openid_date,priority:2" json:"dateStr"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Card) TableName() string { return "cards" }

// DurationMinutes derives the stored duration from a valid interval
func DurationMinutes(startMs, endMs int64) int {
	return int((endMs - startMs) / 60000)
}

// DateStrFromMillis formats a millisecond timestamp as the calendar-day
// filter key (server-local time, matching client expectations)
func DateStrFromMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02")
}

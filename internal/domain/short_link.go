package domain

import "time"

// ShortLink maps a random six-character code to an article. Rows are
// never deleted; Clicks is only mutated through atomic increments at the
// storage layer.
type ShortLink struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	ShortID   string    `gorm:"column:short_id;size:16;not null;uniqueIndex:uk_short_links_short_id" json:"short_id"`
	ArticleID string    `gorm:"column:article_id;size:64;not null;index:idx_short_links_article_id" json:"article_id"`
	Clicks    int64     `gorm:"column:clicks;not null;default:0" json:"clicks"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM.
func (ShortLink) TableName() string {
	return "short_links"
}

package domain

import "time"

// ArticleStatusPublished is the only status this service serves.
const ArticleStatusPublished = "published"

// Article is a read-only projection of the publishing platform's article
// directory. The table is owned by the publishing side; this service
// never writes it.
type Article struct {
	ID               string     `gorm:"primaryKey;column:id;size:64" json:"id"`
	Slug             string     `gorm:"column:slug;size:255" json:"slug"`
	Title            string     `gorm:"column:title;size:500" json:"title"`
	TitleLocalized   string     `gorm:"column:title_localized;size:500" json:"title_localized,omitempty"`
	Summary          string     `gorm:"column:summary;type:text" json:"summary,omitempty"`
	SummaryLocalized string     `gorm:"column:summary_localized;type:text" json:"summary_localized,omitempty"`
	ImageURL         string     `gorm:"column:image_url;size:1000" json:"image_url,omitempty"`
	PublishedAt      *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	Status           string     `gorm:"column:status;size:20" json:"status"`
}

// TableName returns the table name for GORM.
func (Article) TableName() string {
	return "articles"
}

// IsPublished reports whether the article is visible to readers.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

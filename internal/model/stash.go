package model

import "time"

// Stash pairs a URL with its AI-generated summary and tags, owned by one user.
type Stash struct {
	URLID     string    `gorm:"column:url_id;primaryKey;size:36" json:"url_id"`
	UserID    string    `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	URL       string    `gorm:"column:url;type:text;not null" json:"url"`
	Summary   string    `gorm:"column:summary;type:text" json:"summary"`
	Tags      string    `gorm:"column:tags;size:255" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func (Stash) TableName() string {
	return "stashed_urls"
}

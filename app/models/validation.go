package models

import "time"

// Validation is one completed idea evaluation. Rows are append-only and
// immutable once written; they are the canonical validation history.
type Validation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UUID              string    `gorm:"uniqueIndex;type:varchar(36);not null" json:"uuid"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	IdeaDescription   string    `gorm:"type:text;not null" json:"idea_description"`
	AnalysisJSON      string    `gorm:"type:longtext;not null" json:"analysis_json"`
	SearchResultsJSON string    `gorm:"type:longtext;not null" json:"search_results_json"`
	Degraded          bool      `gorm:"default:false" json:"degraded"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

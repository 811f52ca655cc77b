package models

import "time"

// Review is a 1-5 score left by one user about another after a project.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;index" json:"to_user_id"`
	ProjectID  *uint     `gorm:"index" json:"project_id,omitempty"`
	Score      int       `gorm:"not null" json:"score"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewSummary is the computed aggregate returned for a user's received
// reviews.
type ReviewSummary struct {
	UserID       uint    `json:"user_id"`
	Count        int64   `json:"count"`
	AverageScore float64 `json:"average_score"`
}

package models

import "time"

// Achievement is a catalog entry users can earn.
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserAchievement records that a user earned an achievement, optionally
// bound to a minted NFT token.
type UserAchievement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint         `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	NFTTokenID    *string      `json:"nft_token_id,omitempty"`
	EarnedAt      time.Time    `json:"earned_at"`
}

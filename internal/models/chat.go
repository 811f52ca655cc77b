package models

import "time"

// Conversation groups messages exchanged between participants, optionally
// scoped to a project.
type Conversation struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	ProjectID    *uint                     `gorm:"index" json:"project_id,omitempty"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// ConversationParticipant links a user into a conversation.
type ConversationParticipant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index;uniqueIndex:idx_conversation_user" json:"conversation_id"`
	UserID         uint      `gorm:"not null;index;uniqueIndex:idx_conversation_user" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Message is immutable after creation except for the unread->read
// transition recorded in ReadAt.
type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID uint       `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint       `gorm:"not null;index" json:"sender_id"`
	Sender         *User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

package models

import "time"

// TransactionStatus is the lifecycle state of a payment transaction.
// Completed, failed and cancelled are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Valid reports whether s is a declared status value.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s TransactionStatus) Terminal() bool {
	return s != TransactionStatusPending && s.Valid()
}

// TransactionType classifies what a transaction moves money for.
type TransactionType string

const (
	TransactionTypePayment       TransactionType = "payment"
	TransactionTypeEscrowDeposit TransactionType = "escrow_deposit"
	TransactionTypeEscrowRelease TransactionType = "escrow_release"
	TransactionTypeRefund        TransactionType = "refund"
)

// Valid reports whether t is a declared type value.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypePayment, TransactionTypeEscrowDeposit,
		TransactionTypeEscrowRelease, TransactionTypeRefund:
		return true
	}
	return false
}

// Transaction records a transfer between two users, keyed by an on-chain
// hash. The hash is unique database-wide.
type Transaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	FromUserID      uint              `gorm:"not null;index" json:"from_user_id"`
	ToUserID        uint              `gorm:"not null;index" json:"to_user_id"`
	ProjectID       *uint             `gorm:"index" json:"project_id,omitempty"`
	Amount          float64           `gorm:"type:numeric(14,2);not null" json:"amount"`
	Currency        string            `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	TransactionHash string            `gorm:"uniqueIndex;not null" json:"transaction_hash"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Type            TransactionType   `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

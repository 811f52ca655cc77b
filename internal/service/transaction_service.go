package service

import (
	"context"
	"fmt"
	"time"

	"offerhub/internal/middleware"
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/validation"

	"github.com/google/uuid"
)

type TransactionService struct {
	txRepo       repository.TransactionRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
}

type CreateTransactionInput struct {
	FromUserID      uint
	ToUserID        uint
	ProjectID       *uint
	Amount          float64
	Currency        string
	TransactionHash string
	Type            models.TransactionType
	Status          models.TransactionStatus
}

type UpdateTransactionInput struct {
	TransactionID uint
	Amount        *float64
	Currency      *string
	ProjectID     *uint
	Type          *models.TransactionType
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityLogRepository,
) *TransactionService {
	return &TransactionService{
		txRepo:       txRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if in.FromUserID == in.ToUserID {
		return nil, models.NewValidationError("Sender and recipient must differ")
	}
	if in.Amount <= 0 {
		return nil, models.NewValidationError("Amount must be positive")
	}
	if !in.Type.Valid() {
		return nil, models.NewValidationError("Transaction type is invalid")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if err := validation.ValidateCurrency(in.Currency); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Status == "" {
		in.Status = models.TransactionStatusPending
	}
	if !in.Status.Valid() {
		return nil, models.NewValidationError("Transaction status is invalid")
	}

	if _, err := s.userRepo.GetByID(ctx, in.FromUserID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.ToUserID); err != nil {
		return nil, err
	}

	if in.TransactionHash == "" {
		in.TransactionHash = uuid.NewString()
	}

	tx := &models.Transaction{
		FromUserID:      in.FromUserID,
		ToUserID:        in.ToUserID,
		ProjectID:       in.ProjectID,
		Amount:          in.Amount,
		Currency:        in.Currency,
		TransactionHash: in.TransactionHash,
		Status:          in.Status,
		Type:            in.Type,
	}
	if tx.Status == models.TransactionStatusCompleted {
		now := time.Now()
		tx.CompletedAt = &now
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, tx.FromUserID, "transaction.created", tx.TransactionHash)
	return tx, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.txRepo.GetByID(ctx, id)
}

// GetTransactionByHash resolves a transfer by its chain hash.
func (s *TransactionService) GetTransactionByHash(ctx context.Context, hash string) (*models.Transaction, error) {
	if hash == "" {
		return nil, models.NewValidationError("Transaction hash is required")
	}

	tx, err := s.txRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, models.NewNotFoundError("Transaction", hash)
	}
	return tx, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]models.Transaction, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.NewValidationError("Transaction status is invalid")
	}
	return s.txRepo.List(ctx, filter, limit, offset)
}

// UpdateStatus moves a transaction through its lifecycle. Terminal statuses
// never transition; re-asserting the current status is a no-op.
func (s *TransactionService) UpdateStatus(ctx context.Context, id uint, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Transaction status is invalid")
	}

	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status == status {
		return tx, nil
	}
	if tx.Status.Terminal() {
		return nil, models.NewConflictError(
			fmt.Sprintf("Transaction is %s and cannot change status", tx.Status))
	}

	tx.Status = status
	if status == models.TransactionStatusCompleted {
		now := time.Now()
		tx.CompletedAt = &now
	}
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, tx.FromUserID, "transaction.status_changed", string(status))
	return tx, nil
}

// UpdateTransaction merges mutable fields. Only pending transactions can be
// edited.
func (s *TransactionService) UpdateTransaction(ctx context.Context, in UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, in.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status.Terminal() {
		return nil, models.NewConflictError(
			fmt.Sprintf("Transaction is %s and cannot be edited", tx.Status))
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, models.NewValidationError("Amount must be positive")
		}
		tx.Amount = *in.Amount
	}
	if in.Currency != nil {
		if err := validation.ValidateCurrency(*in.Currency); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		tx.Currency = *in.Currency
	}
	if in.ProjectID != nil {
		tx.ProjectID = in.ProjectID
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, models.NewValidationError("Transaction type is invalid")
		}
		tx.Type = *in.Type
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uint) error {
	return s.txRepo.Delete(ctx, id)
}

func (s *TransactionService) recordActivity(ctx context.Context, userID uint, action, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry := &models.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		middleware.Logger.WarnContext(ctx, "activity log write failed",
			"action", action, "error", err)
	}
}

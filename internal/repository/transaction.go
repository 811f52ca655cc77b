package repository

import (
	"context"
	"errors"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetByHash(ctx context.Context, hash string) (*models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]models.Transaction, error)
}

// TransactionFilter narrows List results. Zero fields are ignored.
// UserID matches either side of the transfer.
type TransactionFilter struct {
	UserID uint
	Status models.TransactionStatus
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a new TransactionRepository implementation.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := readDB(r.db).WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Transaction", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetByHash(ctx context.Context, hash string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := readDB(r.db).WithContext(ctx).Where("transaction_hash = ?", hash).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tx, nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Transaction with this hash already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Save(tx).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Transaction", id)
	}
	return nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	q := readDB(r.db).WithContext(ctx)
	if filter.UserID != 0 {
		q = q.Where("from_user_id = ? OR to_user_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Limit(limit).Offset(offset).Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return txs, nil
}

package postgres

import (
	"context"

	"market/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements TransactionManager on a gorm connection.
// Checkout, cancellation, and approval decisions run through Execute so their
// multi-table writes commit or roll back as one.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one open
// transaction. A gorm transaction is itself a *gorm.DB, so the repository
// constructors work unchanged against it.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// UserRepo returns a user repository instance bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// SellerRepo returns a seller repository instance bound to the transaction.
func (f *gormRepositoryFactory) SellerRepo() repository.SellerRepository {
	return NewSellerRepository(f.tx)
}

// ProductRepo returns a product repository instance bound to the transaction.
func (f *gormRepositoryFactory) ProductRepo() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

// OrderRepo returns an order repository instance bound to the transaction.
func (f *gormRepositoryFactory) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

// NewTransactionManager wraps the shared connection for Fx.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute opens a transaction, runs fn against repositories bound to it, and
// commits only when fn returns nil. A panic inside fn rolls back before
// re-panicking.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// The business error stays primary; the rollback failure rides along.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	return errors.Wrap(tx.Commit().Error, "failed to commit transaction")
}

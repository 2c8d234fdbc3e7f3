package impl

import (
	"context"
	"io"
	"log/slog"

	"market/config"
	"market/internal/domain/repository"
	mockRepo "market/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrderConfig() *config.Config {
	return &config.Config{
		Order: &config.OrderConfig{
			ShippingCharge:    500,
			TaxRatePercent:    10,
			LowStockThreshold: 5,
		},
	}
}

// passthroughTx makes the transaction manager run the unit of work against the
// given repository factory, mimicking a committed transaction.
func passthroughTx(txManager *mockRepo.MockTransactionManager, factory *mockRepo.MockRepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

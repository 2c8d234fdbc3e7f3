package postgres

import (
	"context"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// Create persists a new product entity to the storage.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product entity in the storage.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productM.ID).
		Updates(map[string]any{
			"name":           productM.Name,
			"description":    productM.Description,
			"price":          productM.Price,
			"discount_price": productM.DiscountPrice,
			"stock":          productM.Stock,
			"is_active":      productM.IsActive,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from the product's stock.
// The stock floor check lives in the WHERE clause so the subtraction either
// applies in full or not at all, even under concurrent checkouts.
func (repo *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		// Either the product is gone or stock fell below the requested quantity.
		var exists int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", productID).
			Count(&exists).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to decrement stock")
		}
		if exists == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// IncrementStock atomically adds quantity back to the product's stock.
func (repo *productRepository) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// CountLowStockBySeller returns how many of the seller's active products
// have stock at or below the given threshold.
func (repo *productRepository) CountLowStockBySeller(ctx context.Context, sellerID uuid.UUID, threshold int) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("owner_id = ? AND is_active = ? AND stock <= ?", sellerID, true, threshold).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count low stock products")
	}

	return count, nil
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
		Stock:         data.Stock,
		IsActive:      data.IsActive,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
		Stock:         data.Stock,
		IsActive:      data.IsActive,
	}
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormKeyPairRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormKeyPairRepository creates a new GORM-based KeyPairRepository implementation
func NewGormKeyPairRepository(db *gorm.DB, logger logger.Logger) (keys.KeyPairRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}

	return &gormKeyPairRepository{
		db:     db,
		logger: logger,
	}, nil
}

// AutoMigrate creates or updates the catalog schema
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KeyPairModel{}); err != nil {
		return fmt.Errorf("failed to migrate key pair schema: %w", err)
	}
	return nil
}

func (r *gormKeyPairRepository) Create(ctx context.Context, record *keys.KeyPairRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.KeyPairModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create key pair: %w", err)
	}

	r.logger.Info("Created key pair with id ", record.ID)
	return nil
}

func (r *gormKeyPairRepository) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairRecord, error) {
	if query == nil {
		query = keys.NewKeyPairQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.KeyPairModel
	dbQuery := r.db.WithContext(ctx).Model(&models.KeyPairModel{})

	if query.BitLength > 0 {
		dbQuery = dbQuery.Where("bit_length = ?", query.BitLength)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch key pairs: %w", err)
	}

	domainList := make([]*keys.KeyPairRecord, len(modelList))
	for i, model := range modelList {
		record, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("key pair %s: %w", model.ID, err)
		}
		domainList[i] = record
	}

	return domainList, nil
}

func (r *gormKeyPairRepository) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairRecord, error) {
	var model models.KeyPairModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyPairID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("key pair with ID %s: %w", keyPairID, keys.ErrKeyPairNotFound)
		}
		return nil, fmt.Errorf("failed to fetch key pair: %w", err)
	}
	return model.ToDomain()
}

func (r *gormKeyPairRepository) DeleteByID(ctx context.Context, keyPairID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", keyPairID).Delete(&models.KeyPairModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key pair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("key pair with ID %s: %w", keyPairID, keys.ErrKeyPairNotFound)
	}

	r.logger.Info("Deleted key pair with id ", keyPairID)
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"loftwork/internal/domain/property"
	"loftwork/internal/infrastructure/persistence/mappers"
	"loftwork/internal/infrastructure/persistence/models"
	db "loftwork/internal/shared/db"
)

type PropertyRepository struct {
	db     *gorm.DB
	mapper mappers.PropertyMapper
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{
		db:     db,
		mapper: mappers.NewPropertyMapper(),
	}
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*property.Property, error) {
	var model models.PropertyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	return r.mapper.PropertyToDomain(&model), nil
}

func (r *PropertyRepository) List(ctx context.Context) ([]*property.Property, error) {
	var propertyModels []models.PropertyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("name ASC").Find(&propertyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	properties := make([]*property.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = r.mapper.PropertyToDomain(&model)
	}

	return properties, nil
}

// AddressesByID returns the id-to-address map used to enrich ticket
// views without loading full property rows.
func (r *PropertyRepository) AddressesByID(ctx context.Context) (map[uint]string, error) {
	type row struct {
		ID      uint
		Address string
	}
	var rows []row

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.PropertyModel{}).
		Select("id", "address").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load property addresses: %w", err)
	}

	addresses := make(map[uint]string, len(rows))
	for _, r := range rows {
		addresses[r.ID] = r.Address
	}
	return addresses, nil
}

type LeaseRepository struct {
	db     *gorm.DB
	mapper mappers.PropertyMapper
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{
		db:     db,
		mapper: mappers.NewPropertyMapper(),
	}
}

func (r *LeaseRepository) ListActive(ctx context.Context) ([]*property.Lease, error) {
	var leaseModels []models.LeaseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("active = ?", true).
		Order("end_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list active leases: %w", err)
	}

	leases := make([]*property.Lease, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = r.mapper.LeaseToDomain(&model)
	}

	return leases, nil
}

func (r *LeaseRepository) ListByProperty(ctx context.Context, propertyID uint) ([]*property.Lease, error) {
	var leaseModels []models.LeaseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("property_id = ?", propertyID).
		Order("end_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}

	leases := make([]*property.Lease, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = r.mapper.LeaseToDomain(&model)
	}

	return leases, nil
}

type CashFlowRepository struct {
	db     *gorm.DB
	mapper mappers.PropertyMapper
}

func NewCashFlowRepository(db *gorm.DB) *CashFlowRepository {
	return &CashFlowRepository{
		db:     db,
		mapper: mappers.NewPropertyMapper(),
	}
}

// ListBetween returns flows dated in [from, to).
func (r *CashFlowRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*property.CashFlow, error) {
	var flowModels []models.CashFlowModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("date >= ? AND date < ?", from.UnixMilli(), to.UnixMilli()).
		Order("date ASC").
		Find(&flowModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list cash flows: %w", err)
	}

	flows := make([]*property.CashFlow, len(flowModels))
	for i, model := range flowModels {
		f, err := r.mapper.CashFlowToDomain(&model)
		if err != nil {
			return nil, err
		}
		flows[i] = f
	}

	return flows, nil
}

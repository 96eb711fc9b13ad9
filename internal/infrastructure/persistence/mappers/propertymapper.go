package mappers

import (
	"fmt"

	"loftwork/internal/domain/property"
	"loftwork/internal/infrastructure/persistence/models"
)

// PropertyMapper converts property, lease and cash flow rows to their
// domain forms. Properties are plain records so the mapping is direct.
type PropertyMapper interface {
	PropertyToDomain(model *models.PropertyModel) *property.Property
	LeaseToDomain(model *models.LeaseModel) *property.Lease
	CashFlowToDomain(model *models.CashFlowModel) (*property.CashFlow, error)
}

type PropertyMapperImpl struct{}

func NewPropertyMapper() PropertyMapper {
	return &PropertyMapperImpl{}
}

func (m *PropertyMapperImpl) PropertyToDomain(model *models.PropertyModel) *property.Property {
	return &property.Property{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Units:     model.Units,
		CreatedAt: convertMillisToTime(model.CreatedAt),
		UpdatedAt: convertMillisToTime(model.UpdatedAt),
	}
}

func (m *PropertyMapperImpl) LeaseToDomain(model *models.LeaseModel) *property.Lease {
	return &property.Lease{
		ID:               model.ID,
		PropertyID:       model.PropertyID,
		TenantName:       model.TenantName,
		MonthlyRentCents: model.MonthlyRentCents,
		StartDate:        convertMillisToTime(model.StartDate),
		EndDate:          convertMillisToTime(model.EndDate),
		Active:           model.Active,
	}
}

func (m *PropertyMapperImpl) CashFlowToDomain(model *models.CashFlowModel) (*property.CashFlow, error) {
	flowType, err := property.NewFlowType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("invalid cash flow type (id=%d): %w", model.ID, err)
	}
	return &property.CashFlow{
		ID:          model.ID,
		PropertyID:  model.PropertyID,
		Type:        flowType,
		AmountCents: model.AmountCents,
		Description: model.Description,
		Date:        convertMillisToTime(model.Date),
	}, nil
}

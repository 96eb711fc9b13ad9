package migration

import (
	"fmt"

	"gorm.io/gorm"

	"loftwork/internal/infrastructure/persistence/models"
	"loftwork/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates the schema from the model structs.
// Development only; production uses versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm automigrate", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	s.logger.Infow("gorm automigrate completed")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels lists every persistence model the schema carries.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.PropertyModel{},
		&models.LeaseModel{},
		&models.CashFlowModel{},
	}
}

package migration

import (
	"fmt"

	"Food-Rescue-Backend/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Models() []any {
	return []any{
		&entities.User{},
		&entities.Food{},
		&entities.Claim{},
		&entities.Waste{},
		&entities.RecyclerRequest{},
	}
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			return fmt.Errorf("create uuid extension: %w", err)
		}
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	// A user may request a given posting only once.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_food_user ON claims (food_id, user_id)`).Error; err != nil {
		return fmt.Errorf("create claim index: %w", err)
	}

	zap.L().Info("database migration complete")
	return nil
}

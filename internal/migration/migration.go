// Package migration keeps the schema in step with the domain models.
package migration

import (
	autodebitdomain "github.com/belifehq/belife/internal/autodebit/domain"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	customerdomain "github.com/belifehq/belife/internal/customer/domain"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	premiumdomain "github.com/belifehq/belife/internal/premium/domain"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted model, migration-ordered (referenced tables
// first). Shared with tests that bootstrap an in-memory database.
func Models() []interface{} {
	return []interface{}{
		&customerdomain.Customer{},
		&customerdomain.Beneficiary{},
		&insurancedomain.Insurance{},
		&insurancedomain.PremiumFee{},
		&subscriptiondomain.Subscription{},
		&contractdomain.Contract{},
		&premiumdomain.Premium{},
		&autodebitdomain.DebitAttempt{},
	}
}

func Run(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Named("migration").Info("schema migrated")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

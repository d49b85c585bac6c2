package migration

import (
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	directorydomain "github.com/smallbiznis/storefront/internal/directory/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Run creates or updates every table on startup so the service is
// usable out of the box for local and self-hosted environments.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogdomain.Product{},
		&customerdomain.Customer{},
		&directorydomain.User{},
		&orderdomain.Order{},
		&orderdomain.Item{},
		&paymentdomain.Payment{},
		&paymentdomain.Refund{},
	)
}

var Module = fx.Module("migrations",
	fx.Invoke(func(db *gorm.DB) error {
		if err := Run(db); err != nil {
			return err
		}
		return seed.Ensure(db)
	}),
)

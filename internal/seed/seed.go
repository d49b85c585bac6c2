package seed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	directorydomain "github.com/smallbiznis/storefront/internal/directory/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ensure loads the development fixtures. Each table is seeded only when
// empty, so restarts and concurrent boots are safe.
func Ensure(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProductsTx(tx); err != nil {
			return err
		}
		if err := ensureCustomersTx(tx); err != nil {
			return err
		}
		if err := ensureDirectoryTx(tx); err != nil {
			return err
		}
		if err := ensureOrdersTx(tx, node); err != nil {
			return err
		}
		return ensurePaymentsTx(tx)
	})
}

func tableEmpty(tx *gorm.DB, model any) (bool, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}

func ensureProductsTx(tx *gorm.DB) error {
	empty, err := tableEmpty(tx, &catalogdomain.Product{})
	if err != nil || !empty {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	products := []catalogdomain.Product{
		{
			ID:                "prod_wireless_headphones",
			Name:              "Wireless Headphones",
			PriceAmount:       7999,
			PriceCurrency:     "usd",
			InventoryQuantity: 42,
			Brand:             "AudioTech",
			Features:          mustJSON([]string{"noise_cancellation", "bluetooth_5", "30h_battery"}),
			RatingAverage:     4.6,
			IsFeatured:        true,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                "prod_laptop_stand",
			Name:              "Laptop Stand",
			PriceAmount:       3499,
			PriceCurrency:     "usd",
			InventoryQuantity: 120,
			Brand:             "ErgoWorks",
			Features:          mustJSON([]string{"aluminum", "adjustable_height"}),
			RatingAverage:     4.2,
			IsFeatured:        false,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                "prod_usb_cable",
			Name:              "USB-C Cable",
			PriceAmount:       1250,
			PriceCurrency:     "usd",
			InventoryQuantity: 300,
			Brand:             "VoltLine",
			Features:          mustJSON([]string{"usb_c", "braided", "2m"}),
			RatingAverage:     4.0,
			IsFeatured:        false,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
	return tx.Create(&products).Error
}

func ensureCustomersTx(tx *gorm.DB) error {
	empty, err := tableEmpty(tx, &customerdomain.Customer{})
	if err != nil || !empty {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	customers := []customerdomain.Customer{
		{
			ID:         "cus_N4qFJ3gTQd8fR2",
			Email:      "jenny.rosen@example.com",
			Name:       "Jenny Rosen",
			Line1:      "510 Townsend St",
			City:       "San Francisco",
			State:      "CA",
			PostalCode: "94103",
			Country:    "US",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "cus_9XK2mPqR7sT4vW",
			Email:      "taylor.moore@example.com",
			Name:       "Taylor Moore",
			Line1:      "77 Summer St",
			City:       "Boston",
			State:      "MA",
			PostalCode: "02110",
			Country:    "US",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	return tx.Create(&customers).Error
}

func ensureDirectoryTx(tx *gorm.DB) error {
	empty, err := tableEmpty(tx, &directorydomain.User{})
	if err != nil || !empty {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	yearOut := now.AddDate(1, 0, 0)
	aliceAvatar := "https://cdn.example.com/avatars/alice.png"
	bobAvatar := "https://cdn.example.com/avatars/bob.png"
	smsOn := true

	users := []directorydomain.User{
		{
			ID:                    1001,
			Username:              "alice",
			Email:                 "alice@example.com",
			Role:                  directorydomain.RoleUser,
			FirstName:             "Alice",
			LastName:              "Johnson",
			Avatar:                &aliceAvatar,
			NotifyEmail:           true,
			NotifyPush:            false,
			NotifySMS:             nil,
			Theme:                 "dark",
			Language:              "en",
			SubscriptionPlan:      "premium",
			SubscriptionStatus:    "active",
			SubscriptionExpiresAt: yearOut,
			SubscriptionFeatures:  mustJSON([]string{"advanced_analytics", "priority_support", "unlimited_projects"}),
			CreatedAt:             now.AddDate(-1, 0, 0),
			LastLoginAt:           now,
			LoginCount:            42,
			IsVerified:            true,
		},
		{
			ID:                    1002,
			Username:              "bob_smith",
			Email:                 "bob@example.com",
			Role:                  directorydomain.RoleUser,
			FirstName:             "Bob",
			LastName:              "Smith",
			Avatar:                &bobAvatar,
			NotifyEmail:           true,
			NotifyPush:            true,
			NotifySMS:             &smsOn,
			Theme:                 "light",
			Language:              "en",
			SubscriptionPlan:      "basic",
			SubscriptionStatus:    "active",
			SubscriptionExpiresAt: yearOut,
			SubscriptionFeatures:  mustJSON([]string{"standard_reports"}),
			CreatedAt:             now.AddDate(0, -6, 0),
			LastLoginAt:           now,
			LoginCount:            17,
			IsVerified:            true,
		},
		{
			ID:                    1003,
			Username:              "carol",
			Email:                 "carol@example.com",
			Role:                  directorydomain.RoleUser,
			FirstName:             "Carol",
			LastName:              "Nguyen",
			Avatar:                nil,
			NotifyEmail:           false,
			NotifyPush:            true,
			NotifySMS:             nil,
			Theme:                 "light",
			Language:              "fr",
			SubscriptionPlan:      "free",
			SubscriptionStatus:    "active",
			SubscriptionExpiresAt: yearOut,
			SubscriptionFeatures:  mustJSON([]string{}),
			CreatedAt:             now.AddDate(0, -2, 0),
			LastLoginAt:           now,
			LoginCount:            3,
			IsVerified:            false,
		},
		{
			ID:                    1004,
			Username:              "dave_ops",
			Email:                 "dave@example.com",
			Role:                  directorydomain.RoleAdmin,
			FirstName:             "Dave",
			LastName:              "Okafor",
			Avatar:                nil,
			NotifyEmail:           true,
			NotifyPush:            true,
			NotifySMS:             nil,
			Theme:                 "dark",
			Language:              "en",
			SubscriptionPlan:      "enterprise",
			SubscriptionStatus:    "active",
			SubscriptionExpiresAt: yearOut,
			SubscriptionFeatures:  mustJSON([]string{"audit_logs", "sso"}),
			CreatedAt:             now.AddDate(-2, 0, 0),
			LastLoginAt:           now,
			LoginCount:            310,
			IsVerified:            true,
		},
		{
			ID:                    1005,
			Username:              "eve_mod",
			Email:                 "eve@example.com",
			Role:                  directorydomain.RoleModerator,
			FirstName:             "Eve",
			LastName:              "Silva",
			Avatar:                nil,
			NotifyEmail:           true,
			NotifyPush:            false,
			NotifySMS:             nil,
			Theme:                 "light",
			Language:              "pt",
			SubscriptionPlan:      "basic",
			SubscriptionStatus:    "active",
			SubscriptionExpiresAt: yearOut,
			SubscriptionFeatures:  mustJSON([]string{"standard_reports"}),
			CreatedAt:             now.AddDate(0, -9, 0),
			LastLoginAt:           now,
			LoginCount:            58,
			IsVerified:            true,
		},
	}
	return tx.Create(&users).Error
}

func ensureOrdersTx(tx *gorm.DB, node *snowflake.Node) error {
	empty, err := tableEmpty(tx, &orderdomain.Order{})
	if err != nil || !empty {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	jenny := customerdomain.Address{
		Line1:      "510 Townsend St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94103",
		Country:    "US",
	}
	taylor := customerdomain.Address{
		Line1:      "77 Summer St",
		City:       "Boston",
		State:      "MA",
		PostalCode: "02110",
		Country:    "US",
	}

	orders := []orderdomain.Order{
		{
			ID:              "order_456789",
			CustomerID:      "cus_N4qFJ3gTQd8fR2",
			CustomerEmail:   "jenny.rosen@example.com",
			Status:          orderdomain.StatusPending,
			Currency:        "usd",
			Total:           2500,
			ShippingAddress: mustJSON(jenny),
			CreatedAt:       now.Add(-time.Hour),
			UpdatedAt:       now.Add(-time.Hour),
		},
		{
			ID:              "order_782134",
			CustomerID:      "cus_9XK2mPqR7sT4vW",
			CustomerEmail:   "taylor.moore@example.com",
			Status:          orderdomain.StatusPending,
			Currency:        "usd",
			Total:           3499,
			ShippingAddress: mustJSON(taylor),
			CreatedAt:       now.Add(-30 * time.Minute),
			UpdatedAt:       now.Add(-30 * time.Minute),
		},
	}
	if err := tx.Create(&orders).Error; err != nil {
		return err
	}

	items := []orderdomain.Item{
		{
			ID:         node.Generate().Int64(),
			OrderID:    "order_456789",
			ProductID:  "prod_usb_cable",
			Quantity:   2,
			UnitAmount: 1250,
			Position:   0,
		},
		{
			ID:         node.Generate().Int64(),
			OrderID:    "order_782134",
			ProductID:  "prod_laptop_stand",
			Quantity:   1,
			UnitAmount: 3499,
			Position:   0,
		},
	}
	return tx.Create(&items).Error
}

func ensurePaymentsTx(tx *gorm.DB) error {
	empty, err := tableEmpty(tx, &paymentdomain.Payment{})
	if err != nil || !empty {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	created := now.Add(-time.Hour)
	succeeded := created.Add(2 * time.Second)
	jenny := customerdomain.Address{
		Line1:      "510 Townsend St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94103",
		Country:    "US",
	}

	payment := paymentdomain.Payment{
		ID:              "pay_1Nz3Q82eZvKYlo2C9EbE7PKr",
		OrderID:         "order_456789",
		Amount:          2500,
		Currency:        "usd",
		Status:          paymentdomain.StatusSucceeded,
		CustomerEmail:   "jenny.rosen@example.com",
		CustomerName:    "Jenny Rosen",
		BillingAddress:  mustJSON(jenny),
		MethodType:      "card",
		CardID:          "card_visa_jenny",
		CardLast4:       "4242",
		CardBrand:       "visa",
		CardExpiryMonth: 12,
		CardExpiryYear:  2025,
		CardCountry:     "US",
		CreatedAt:       created,
		UpdatedAt:       succeeded,
		SucceededAt:     &succeeded,
	}
	return tx.Create(&payment).Error
}

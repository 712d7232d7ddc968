package database

import (
	"fmt"
	"log"
	"os"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/carts"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/products"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// identities
		&users.User{},
		&users.VerificationToken{},
		&customers.Customer{},

		// sites
		&sites.Site{},
		&pages.Page{},
		&blocks.BlockInstance{},
		&blocks.TemplateRecord{},

		// commerce
		&products.Product{},
		&carts.Cart{},
		&carts.CartItem{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := blocks.SeedTemplates(DB); err != nil {
		log.Fatal("❌ Failed to seed block templates:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

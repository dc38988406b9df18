// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/order"
	"github.com/your-org/dailyfresh-backend/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},
		&user.Address{},

		// Catalog domain
		&catalog.Category{},
		&catalog.SPU{},
		&catalog.SKU{},
		&catalog.SlideItem{},
		&catalog.Promotion{},
		&catalog.CategoryShowcase{},

		// Order domain
		&order.OrderInfo{},
		&order.OrderGoods{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_df_user_active ON df_user(username, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_df_user_created_at ON df_user(created_at DESC)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_df_address_user_default ON df_address(user_id, is_default)",
		"CREATE INDEX IF NOT EXISTS idx_df_address_user_created ON df_address(user_id, created_at DESC)",

		// SKU indexes for browsing and list sorting
		"CREATE INDEX IF NOT EXISTS idx_df_goods_sku_category_on_sale ON df_goods_sku(category_id, is_on_sale)",
		"CREATE INDEX IF NOT EXISTS idx_df_goods_sku_spu ON df_goods_sku(spu_id)",
		"CREATE INDEX IF NOT EXISTS idx_df_goods_sku_price ON df_goods_sku(price)",
		"CREATE INDEX IF NOT EXISTS idx_df_goods_sku_sales ON df_goods_sku(sales DESC)",
		"CREATE INDEX IF NOT EXISTS idx_df_goods_sku_created_at ON df_goods_sku(created_at DESC)",

		// Homepage content ordering
		`CREATE INDEX IF NOT EXISTS idx_df_index_slide_index ON df_index_slide("index")`,
		`CREATE INDEX IF NOT EXISTS idx_df_index_promotion_index ON df_index_promotion("index")`,
		`CREATE INDEX IF NOT EXISTS idx_df_index_category_goods_cat ON df_index_category_goods(category_id, display_type, "index")`,

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_df_order_info_user_created ON df_order_info(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_df_order_info_status ON df_order_info(status)",
		"CREATE INDEX IF NOT EXISTS idx_df_order_goods_order ON df_order_goods(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_df_order_goods_sku ON df_order_goods(sku_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedTestGoods(); err != nil {
		return fmt.Errorf("failed to seed test goods: %w", err)
	}

	log.Println("Initial data seeded successfully")
	return nil
}

// seedCategories creates the default storefront categories
func (m *Migration) seedCategories() error {
	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []catalog.Category{
		{Name: "Fresh Fruit", Logo: "fruit", SortOrder: 1},
		{Name: "Seafood", Logo: "seafood", SortOrder: 2},
		{Name: "Meat", Logo: "meet", SortOrder: 3},
		{Name: "Eggs & Poultry", Logo: "egg", SortOrder: 4},
		{Name: "Frozen Food", Logo: "ice", SortOrder: 5},
		{Name: "Vegetables", Logo: "vegetables", SortOrder: 6},
	}

	return m.db.Create(&categories).Error
}

// seedAdminUser creates the default active admin account
func (m *Migration) seedAdminUser() error {
	var count int64
	if err := m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &user.User{
		Username: "admin",
		Email:    "admin@dailyfresh.example.com",
		Password: string(hash),
		IsActive: true,
		IsAdmin:  true,
	}

	return m.db.Create(admin).Error
}

// seedTestGoods creates a small on-sale catalog for development
func (m *Migration) seedTestGoods() error {
	var count int64
	if err := m.db.Model(&catalog.SKU{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	spu := &catalog.SPU{Name: "Strawberry", Description: "Fresh-picked strawberries"}
	if err := m.db.Create(spu).Error; err != nil {
		return err
	}

	skus := []catalog.SKU{
		{
			CategoryID: 1,
			SPUID:      spu.ID,
			Name:       "Strawberry 500g",
			Caption:    "Sweet and fragrant",
			Unit:       "500g",
			Price:      1980,
			Stock:      100,
			IsOnSale:   true,
		},
		{
			CategoryID: 1,
			SPUID:      spu.ID,
			Name:       "Strawberry 250g",
			Caption:    "Sweet and fragrant",
			Unit:       "250g",
			Price:      1080,
			Stock:      100,
			IsOnSale:   true,
		},
	}
	if err := m.db.Create(&skus).Error; err != nil {
		return err
	}

	slides := []catalog.SlideItem{
		{SKUID: skus[0].ID, Image: "/static/images/slide01.jpg", Index: 1},
	}
	if err := m.db.Create(&slides).Error; err != nil {
		return err
	}

	showcases := []catalog.CategoryShowcase{
		{CategoryID: 1, SKUID: skus[0].ID, DisplayType: catalog.DisplayTypeImage, Index: 1},
		{CategoryID: 1, SKUID: skus[1].ID, DisplayType: catalog.DisplayTypeText, Index: 1},
	}
	return m.db.Create(&showcases).Error
}

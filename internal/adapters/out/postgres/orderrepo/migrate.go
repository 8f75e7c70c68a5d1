package orderrepo

import "gorm.io/gorm"

// Migrate creates or updates the orders and order_lines tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &OrderLineDTO{})
}

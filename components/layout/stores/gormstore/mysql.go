package gormstore

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenMySQL returns a connected GORM DB instance.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gormstore: connect mysql: %w", err)
	}
	return db, nil
}

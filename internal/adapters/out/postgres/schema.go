package postgres

import (
	"context"
	"fmt"

	"ordersync/internal/adapters/out/postgres/orderrepo"
	"ordersync/internal/adapters/out/postgres/reelrepo"

	"gorm.io/gorm"
)

// SlitterMachineDTO is a slitter_machines row. The table is maintained by
// plant configuration; the service only reads it.
type SlitterMachineDTO struct {
	ID     int    `gorm:"primaryKey"`
	Code   string `gorm:"size:32;uniqueIndex"`
	Name   string `gorm:"size:128"`
	Active bool   `gorm:"default:true"`
}

func (SlitterMachineDTO) TableName() string {
	return "slitter_machines"
}

// Migrate creates or updates every table owned by the record store.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&orderrepo.OrderDTO{},
		&reelrepo.EventDTO{},
		&reelrepo.DetailDTO{},
		&SlitterMachineDTO{},
	); err != nil {
		return fmt.Errorf("migrate record store: %w", err)
	}
	return nil
}

// Ping checks the connection within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

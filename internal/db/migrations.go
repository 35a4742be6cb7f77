package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Entity tables (deals, buildings, units, agencies) belong to the CRM
// service; this service only owns the share-link store.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS offer_share_links (
		token VARCHAR(64) PRIMARY KEY,
		deal_id UUID NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		content BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_offer_share_links_deal_id ON offer_share_links (deal_id);`,
	`CREATE INDEX IF NOT EXISTS idx_offer_share_links_created_at ON offer_share_links (created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

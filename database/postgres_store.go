package database

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRow maps one collection to its full record array, stored
// as a jsonb blob. The store keeps the whole-collection read/replace
// contract; postgres only supplies durability and row locking.
type collectionRow struct {
	Name    string `gorm:"primaryKey"`
	Records []byte `gorm:"type:jsonb;not null"`
}

func (collectionRow) TableName() string { return "collections" }

// PostgresStore implements Store over a single collections table.
// Update runs inside a transaction with the row locked, which gives
// the same atomic read-modify-write guarantee as the file store's
// mutex, but across processes.
type PostgresStore struct {
	db *gorm.DB
}

// ConnectPostgres opens the database and runs the schema migration.
func ConnectPostgres(host, port, user, password, dbname, sslmode string) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate collections table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, col Collection, out interface{}) error {
	var row collectionRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", string(col)).Error
	if err == gorm.ErrRecordNotFound {
		return decodeRecords(nil, out)
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", col, err)
	}
	return decodeRecords(row.Records, out)
}

func (s *PostgresStore) Put(ctx context.Context, col Collection, records interface{}) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s records: %w", col, err)
	}
	return s.upsert(ctx, s.db, col, raw)
}

func (s *PostgresStore) Update(ctx context.Context, col Collection, fn UpdateFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row collectionRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "name = ?", string(col)).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("lock collection %s: %w", col, err)
		}

		current := row.Records
		if len(current) == 0 {
			current = []byte("[]")
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return s.upsert(ctx, tx, col, next)
	})
}

func (s *PostgresStore) upsert(ctx context.Context, db *gorm.DB, col Collection, raw []byte) error {
	row := collectionRow{Name: string(col), Records: raw}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"records"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("write collection %s: %w", col, err)
	}
	return nil
}

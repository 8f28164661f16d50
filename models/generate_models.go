package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
SQL backend maintenance.

These helpers only apply when DB_TYPE selects the Postgres backend; the
document store needs no table setup.

  GENERATE_MODELS=true         migrate the posts table and write typed query
                               helpers to ./generated, then exit
  GENERATE_COLUMN_REPORT=true  list posts columns the Blog struct does not map,
                               then exit
*/

// AutoMigrate creates or updates the posts table for Blog.
func AutoMigrate(db *gorm.DB) error {
	return db.Session(&gorm.Session{SkipDefaultTransaction: true}).AutoMigrate(&Blog{})
}

// GenerateModels migrates the schema and generates gorm/gen query helpers.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	log.Info().Msg("Database migration completed successfully")

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Blog{})
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// ColumnReport lists the columns of the posts table that Blog does not map.
// A missing table yields an error.
func ColumnReport(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	if !migrator.HasTable(&Blog{}) {
		return nil, fmt.Errorf("table %s does not exist", Blog{}.TableName())
	}

	columnTypes, err := migrator.ColumnTypes(&Blog{})
	if err != nil {
		return nil, fmt.Errorf("read columns for %s: %w", Blog{}.TableName(), err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&Blog{}); err != nil {
		return nil, fmt.Errorf("parse Blog schema: %w", err)
	}

	return unmappedColumns(columns, stmt.Schema), nil
}

// unmappedColumns returns the database columns with no matching schema field.
func unmappedColumns(dbColumns []string, s *schema.Schema) []string {
	mismatches := []string{}
	for _, col := range dbColumns {
		if s.LookUpField(col) == nil {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

package database

import (
	stdlog "log"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// OpenPostgres opens the gorm connection for the SQL backend. Replica DSNs,
// when given, take reads through dbresolver.
func OpenPostgres(dsn string, replicas []string) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, errs.NewConnectionError("postgres", err)
	}

	if len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, replica := range replicas {
			dialectors = append(dialectors, postgres.Open(replica))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errs.NewConnectionError("postgres replicas", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("Registered read replicas")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewConnectionError("postgres", err)
	}

	log.Info().Msg("Connected to Postgres")
	return db, nil
}

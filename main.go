package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-service/api"
	"github.com/rpupo63/blog-service/config"
	"github.com/rpupo63/blog-service/database"
	"github.com/rpupo63/blog-service/models"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	configureLogging(c)
	log.Info().Msg("Initializing app...")

	ctx := context.Background()
	connectTimeout := config.GetSeconds(c, "CONNECT_TIMEOUT_SECONDS", 10)
	secrets := config.NewSecretResolver(c)

	var store database.BlogStore

	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", "mongo"))
	log.Info().Str("dbType", dbType).Msg("Selecting database")
	switch dbType {
	case "mongo", "mongodb":
		uri, err := secrets.Resolve(ctx, "MONGODB_URI")
		if err != nil {
			log.Fatal().Err(err).Msg("Error resolving MONGODB_URI")
		}
		if uri == "" {
			log.Fatal().Msg("MONGODB_URI is required")
		}

		client, err := database.ConnectMongo(ctx, uri, connectTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("MongoDB connection error")
		}

		repo := database.NewMongoBlogRepo(client, config.GetString(c, "MONGODB_DATABASE", "blog"))
		indexCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Warn().Err(err).Msg("Could not ensure indexes on posts")
		}
		cancel()
		store = repo

	case "postgres", "supa":
		dsn, err := postgresDSN(ctx, c, secrets, dbType)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building Postgres connection string")
		}

		db, err := database.OpenPostgres(dsn, config.GetStrings(c, "POSTGRES_REPLICA_DSNS"))
		if err != nil {
			log.Fatal().Err(err).Msg("Postgres connection error")
		}

		// If generating models, run generation and exit
		if config.GetBool(c, "GENERATE_MODELS", false) {
			if err := models.GenerateModels(db, config.GetString(c, "GENERATE_MODELS_OUT", "./generated")); err != nil {
				log.Fatal().Err(err).Msg("Error generating models")
			}
			return
		}

		// If generating column mismatch report, run report and exit
		if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
			mismatches, err := models.ColumnReport(db)
			if err != nil {
				log.Fatal().Err(err).Msg("Error generating column report")
			}
			log.Info().Strs("unmappedColumns", mismatches).Msgf("Column report: %d unmapped", len(mismatches))
			return
		}

		if err := models.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating posts table")
		}
		store = database.NewSQLBlogRepo(db)

	default:
		log.Fatal().Str("dbType", dbType).Msg("Unsupported DB_TYPE")
	}

	currentDB := database.New(store)

	// Buffered so the loser of the server/signal race never blocks
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := currentDB.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}

// configureLogging sets the global zerolog level and output from LOG_LEVEL
// and LOG_FORMAT.
func configureLogging(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// postgresDSN returns POSTGRES_DSN, or for DB_TYPE=supa builds one from the
// SUPABASE_DB_* variables.
func postgresDSN(ctx context.Context, c map[string]string, secrets *config.SecretResolver, dbType string) (string, error) {
	if dbType == "postgres" {
		dsn, err := secrets.Resolve(ctx, "POSTGRES_DSN")
		if err != nil {
			return "", err
		}
		if dsn == "" {
			return "", fmt.Errorf("POSTGRES_DSN is required")
		}
		return dsn, nil
	}

	password, err := secrets.Resolve(ctx, "SUPABASE_DB_PASSWORD")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		config.GetString(c, "SUPABASE_DB_HOST", ""),
		config.GetString(c, "SUPABASE_DB_USER", ""),
		password,
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

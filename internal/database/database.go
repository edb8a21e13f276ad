package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/config"
	"github.com/example/saluvia/internal/logging"
	"github.com/example/saluvia/internal/store/mongostore"
	"github.com/example/saluvia/internal/store/sqlstore"
)

// Backend names the store family selected by the database URL scheme.
type Backend string

const (
	Mongo    Backend = "mongo"
	Postgres Backend = "postgres"

	defaultDatabase = "saluvia"
)

// CloseFunc releases the pool behind a Store.
type CloseFunc func(context.Context) error

// BackendFor maps a database URL to its backend.
func BackendFor(dsn string) (Backend, error) {
	parsed, err := url.Parse(strings.TrimSpace(dsn))
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "mongodb", "mongodb+srv":
		return Mongo, nil
	case "postgres", "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", parsed.Scheme)
	}
}

// Connect opens the pool described by cfg and returns it as a catalog.Store.
// The caller owns the pool and must call the returned CloseFunc.
func Connect(ctx context.Context, cfg *config.Config) (catalog.Store, CloseFunc, error) {
	backend, err := BackendFor(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case Mongo:
		return connectMongo(ctx, cfg)
	default:
		return connectPostgres(ctx, cfg)
	}
}

func connectMongo(ctx context.Context, cfg *config.Config) (catalog.Store, CloseFunc, error) {
	name, err := mongoDatabaseName(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logging.WithComponent("database").WithFields(log.Fields{"backend": Mongo, "database": name}).Info("connected")
	return mongostore.New(client, name), client.Disconnect, nil
}

// mongoDatabaseName prefers the configured name, then the one in the URL.
func mongoDatabaseName(uri, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongo url: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultDatabase, nil
}

func connectPostgres(ctx context.Context, cfg *config.Config) (catalog.Store, CloseFunc, error) {
	if cfg.AutoMigrate {
		if err := ensureDatabase(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure database: %w", err)
		}
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel()),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, nil, err
	}
	closer := func(context.Context) error { return sqlDB.Close() }

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := sqlstore.Migrate(conn.WithContext(ctx)); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	logging.WithComponent("database").WithField("backend", Postgres).Info("connected")
	return sqlstore.New(conn), closer, nil
}

// gormLogLevel follows the process log level so SQL is only traced in debug.
func gormLogLevel() logger.LogLevel {
	switch {
	case log.IsLevelEnabled(log.DebugLevel):
		return logger.Info
	case log.IsLevelEnabled(log.WarnLevel):
		return logger.Warn
	default:
		return logger.Error
	}
}

func ensureDatabase(ctx context.Context, dsn string) error {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName))
	return err
}

package lib

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/theleywin/Backend-DevConnect/src/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectMongo dials the configured MongoDB deployment and waits for the primary
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	log.Infof("connected to MongoDB database %s", cfg.Store.MongoDatabase)
	return client, nil
}

// ConnectSQL opens the relational store selected by STORE_DRIVER
func ConnectSQL(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Store.PostgresURL)
	case config.DriverMemory:
		dialector = sqlite.Open(MemoryDSN(fmt.Sprintf("devconnect-%d", time.Now().UnixNano())))
	default:
		dialector = sqlite.Open(cfg.Store.SQLitePath)
	}

	db, err := OpenGorm(dialector)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		if err := restrictToSingleConnection(db); err != nil {
			return nil, err
		}
	}

	log.Infof("connected to %s store", cfg.Store.Driver)
	return db, nil
}

func OpenGorm(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         GormLogger(log.Output()),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// GormLogger writes slow queries and real errors through the gommon logger.
// A missing row is a normal lookup result and is not logged.
func GormLogger(out io.Writer) logger.Interface {
	l := log.New("gorm")
	l.SetOutput(out)
	return logger.New(l, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// MemoryDSN names a shared-cache in-memory sqlite database
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// sqlite serializes writers; one pooled connection avoids "database is locked"
func restrictToSingleConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

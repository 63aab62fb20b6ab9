// Package store persists users and connection requests. Every implementation
// guarantees a unique email per user, a unique edge per (from, to) pair and per
// unordered pair, and an atomic pending-only status update for reviews.
package store

import (
	"context"
	"fmt"

	"github.com/theleywin/Backend-DevConnect/src/config"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
)

type UserStore interface {
	// CreateUser fails with models.ErrEmailTaken when the email is registered.
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
	// ListUsersExcluding pages through users not in excluded, ordered by id.
	ListUsersExcluding(ctx context.Context, excluded []string, skip, limit int) ([]models.UserDto, error)
}

type ConnectionStore interface {
	// CreateConnection fails with models.ErrDuplicateRequest when an edge
	// already joins the two users in either direction.
	CreateConnection(ctx context.Context, conn *models.Connection) error
	FindConnectionBetween(ctx context.Context, a, b string) (*models.Connection, error)
	// ResolvePending moves the edge from -> to out of the interested state in
	// one conditional write. It fails with models.ErrRequestNotFound when no
	// pending edge matches.
	ResolvePending(ctx context.Context, from, to string, status models.ConnectionStatus) (*models.Connection, error)
	ListConnections(ctx context.Context, query models.ConnectionQuery) ([]models.Connection, error)
}

type Store interface {
	UserStore
	ConnectionStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the store selected by cfg.Store.Driver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := lib.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := NewMongoStore(client, client.Database(cfg.Store.MongoDatabase))
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil
	case config.DriverSQLite, config.DriverPostgres, config.DriverMemory:
		db, err := lib.ConnectSQL(cfg)
		if err != nil {
			return nil, err
		}
		if err := lib.AutoMigrate(db); err != nil {
			return nil, err
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

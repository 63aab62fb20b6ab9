package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var publicColumns = []string{"id", "first_name", "last_name", "age", "gender", "profile_picture"}

// SQLStore keeps users and connections in a relational database through gorm.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenMemory returns a migrated store backed by a private in-memory sqlite database.
func OpenMemory(name string) (*SQLStore, error) {
	db, err := lib.OpenGorm(sqlite.Open(lib.MemoryDSN(name)))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := lib.AutoMigrate(db); err != nil {
		return nil, err
	}
	return NewSQLStore(db), nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *SQLStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *SQLStore) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

func (s *SQLStore) FindUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	found := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}
	for _, user := range users {
		found[user.ID] = user
	}
	return found, nil
}

func (s *SQLStore) UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		update.ApplyTo(&user)
		user.UpdatedAt = time.Now()
		return tx.Save(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return &user, nil
}

func (s *SQLStore) ListUsersExcluding(ctx context.Context, excluded []string, skip, limit int) ([]models.UserDto, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).Select(publicColumns)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}

	var users []models.User
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	feed := make([]models.UserDto, 0, len(users))
	for _, user := range users {
		feed = append(feed, user.ToDto())
	}
	return feed, nil
}

func (s *SQLStore) CreateConnection(ctx context.Context, conn *models.Connection) error {
	err := s.db.WithContext(ctx).Create(conn).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrDuplicateRequest
	}
	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	return nil
}

func (s *SQLStore) FindConnectionBetween(ctx context.Context, a, b string) (*models.Connection, error) {
	var conn models.Connection
	err := s.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	return &conn, nil
}

func (s *SQLStore) ResolvePending(ctx context.Context, from, to string, status models.ConnectionStatus) (*models.Connection, error) {
	var conn models.Connection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Connection{}).
			Where("from_user_id = ? AND to_user_id = ? AND status = ?", from, to, models.ConnectionStatusInterested).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrRequestNotFound
		}
		return tx.Where("from_user_id = ? AND to_user_id = ?", from, to).First(&conn).Error
	})
	if errors.Is(err, models.ErrRequestNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("resolving connection: %w", err)
	}
	return &conn, nil
}

func (s *SQLStore) ListConnections(ctx context.Context, q models.ConnectionQuery) ([]models.Connection, error) {
	query := s.db.WithContext(ctx).Model(&models.Connection{})
	if q.FromUserID != "" {
		query = query.Where("from_user_id = ?", q.FromUserID)
	}
	if q.ToUserID != "" {
		query = query.Where("to_user_id = ?", q.ToUserID)
	}
	if q.InvolvingUserID != "" {
		query = query.Where("(from_user_id = ? OR to_user_id = ?)", q.InvolvingUserID, q.InvolvingUserID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var connections []models.Connection
	if err := query.Order("created_at DESC").Order("id DESC").Find(&connections).Error; err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	return connections, nil
}

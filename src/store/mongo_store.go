package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theleywin/Backend-DevConnect/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection       = "users"
	connectionsCollection = "connections"
)

// MongoStore keeps users and connections as documents, matching the shape
// the frontend already reads.
type MongoStore struct {
	client      *mongo.Client
	users       *mongo.Collection
	connections *mongo.Collection
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:      client,
		users:       db.Collection(usersCollection),
		connections: db.Collection(connectionsCollection),
	}
}

// EnsureIndexes creates the unique indexes the workflow relies on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating users indexes: %w", err)
	}

	_, err = s.connections.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fromUserId", Value: 1}, {Key: "toUserId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "pairKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "toUserId", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating connections indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// translateMongoError maps driver errors onto the store's sentinel errors.
func translateMongoError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	default:
		return err
	}
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := translateMongoError(s.users.FindOne(ctx, filter).Decode(&user), models.ErrUserNotFound)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) FindUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	found := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	for _, user := range users {
		found[user.ID] = user
	}
	return found, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	set := update.SetDocument()
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	err = translateMongoError(err, models.ErrUserNotFound)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) ListUsersExcluding(ctx context.Context, excluded []string, skip, limit int) ([]models.UserDto, error) {
	filter := bson.M{}
	if len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	projection := bson.M{}
	for _, field := range models.PublicProjection {
		projection[field] = 1
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cursor, err := s.users.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer cursor.Close(ctx)

	feed := make([]models.UserDto, 0, limit)
	if err := cursor.All(ctx, &feed); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return feed, nil
}

func (s *MongoStore) CreateConnection(ctx context.Context, conn *models.Connection) error {
	_, err := s.connections.InsertOne(ctx, conn)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateRequest
	}
	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	return nil
}

func (s *MongoStore) FindConnectionBetween(ctx context.Context, a, b string) (*models.Connection, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": a, "toUserId": b},
			{"fromUserId": b, "toUserId": a},
		},
	}

	var conn models.Connection
	err := translateMongoError(s.connections.FindOne(ctx, filter).Decode(&conn), models.ErrRequestNotFound)
	if errors.Is(err, models.ErrRequestNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	return &conn, nil
}

func (s *MongoStore) ResolvePending(ctx context.Context, from, to string, status models.ConnectionStatus) (*models.Connection, error) {
	filter := bson.M{
		"fromUserId": from,
		"toUserId":   to,
		"status":     models.ConnectionStatusInterested,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var conn models.Connection
	err := s.connections.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conn)
	err = translateMongoError(err, models.ErrRequestNotFound)
	if errors.Is(err, models.ErrRequestNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("resolving connection: %w", err)
	}
	return &conn, nil
}

func (s *MongoStore) ListConnections(ctx context.Context, q models.ConnectionQuery) ([]models.Connection, error) {
	cursor, err := s.connections.Find(ctx, connectionFilter(q), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer cursor.Close(ctx)

	connections := []models.Connection{}
	if err := cursor.All(ctx, &connections); err != nil {
		return nil, fmt.Errorf("decoding connections: %w", err)
	}
	return connections, nil
}

func connectionFilter(q models.ConnectionQuery) bson.M {
	filter := bson.M{}
	if q.FromUserID != "" {
		filter["fromUserId"] = q.FromUserID
	}
	if q.ToUserID != "" {
		filter["toUserId"] = q.ToUserID
	}
	if q.InvolvingUserID != "" {
		filter["$or"] = []bson.M{
			{"fromUserId": q.InvolvingUserID},
			{"toUserId": q.InvolvingUserID},
		}
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	return filter
}

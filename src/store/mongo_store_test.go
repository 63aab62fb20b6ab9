package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTranslateMongoError(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(translateMongoError(nil, models.ErrUserNotFound))
	assert.ErrorIs(translateMongoError(mongo.ErrNoDocuments, models.ErrUserNotFound), models.ErrUserNotFound)

	other := errors.New("connection reset")
	assert.Equal(other, translateMongoError(other, models.ErrUserNotFound))
}

func TestConnectionFilter(t *testing.T) {
	assert := assert.New(t)

	filter := connectionFilter(models.ConnectionQuery{ToUserID: "b", Status: models.ConnectionStatusInterested})
	assert.Equal(bson.M{"toUserId": "b", "status": models.ConnectionStatusInterested}, filter)

	filter = connectionFilter(models.ConnectionQuery{InvolvingUserID: "a"})
	assert.Equal(bson.M{"$or": []bson.M{{"fromUserId": "a"}, {"toUserId": "a"}}}, filter)

	assert.Empty(connectionFilter(models.ConnectionQuery{}))
}

func newMockStore(mt *mtest.T) *MongoStore {
	return NewMongoStore(mt.Client, mt.DB)
}

func startedCommand(mt *mtest.T, name string) bson.Raw {
	for _, started := range mt.GetAllStartedEvents() {
		if started.CommandName == name {
			return started.Command
		}
	}
	mt.Fatalf("no %s command was sent", name)
	return nil
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: devconnect.connections index: pairKey_1",
	})
}

func TestMongoStoreWrites(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	alice, bob := models.NewID(), models.NewID()

	mt.Run("Create Connection", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.Nil(s.CreateConnection(ctx, models.NewConnection(alice, bob, models.ConnectionStatusInterested, time.Now())))
	})

	mt.Run("Duplicate Connection", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(duplicateKeyResponse())
		err := s.CreateConnection(ctx, models.NewConnection(bob, alice, models.ConnectionStatusIgnored, time.Now()))
		assert.ErrorIs(err, models.ErrDuplicateRequest)
	})

	mt.Run("Duplicate Email", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(duplicateKeyResponse())
		err := s.CreateUser(ctx, &models.User{ID: alice, FirstName: "alice", Email: "alice@example.com"})
		assert.ErrorIs(err, models.ErrEmailTaken)
	})

	mt.Run("Other Write Errors Are Not Duplicates", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 121, Message: "document failed validation"}))
		err := s.CreateConnection(ctx, models.NewConnection(alice, bob, models.ConnectionStatusInterested, time.Now()))
		assert.NotNil(err)
		assert.False(errors.Is(err, models.ErrDuplicateRequest))
	})
}

func TestMongoStoreResolvePending(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	alice, bob := models.NewID(), models.NewID()

	mt.Run("Pending Edge", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		id := models.NewID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "fromUserId", Value: alice},
			{Key: "toUserId", Value: bob},
			{Key: "pairKey", Value: models.PairKey(alice, bob)},
			{Key: "status", Value: "accepted"},
		}}))

		conn, err := s.ResolvePending(ctx, alice, bob, models.ConnectionStatusAccepted)
		assert.Nil(err)
		if assert.NotNil(conn) {
			assert.Equal(id, conn.ID)
			assert.Equal(models.ConnectionStatusAccepted, conn.Status)
		}

		cmd := startedCommand(mt, "findAndModify")
		assert.Equal(alice, cmd.Lookup("query", "fromUserId").StringValue())
		assert.Equal(bob, cmd.Lookup("query", "toUserId").StringValue())
		assert.Equal("interested", cmd.Lookup("query", "status").StringValue())
		assert.Equal("accepted", cmd.Lookup("update", "$set", "status").StringValue())
		assert.True(cmd.Lookup("new").Boolean())
	})

	mt.Run("Nothing Pending", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		conn, err := s.ResolvePending(ctx, bob, alice, models.ConnectionStatusRejected)
		assert.Nil(conn)
		assert.ErrorIs(err, models.ErrRequestNotFound)
	})
}

func TestMongoStoreUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	alice, bob, carol := models.NewID(), models.NewID(), models.NewID()

	mt.Run("Feed Query", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: carol}, {Key: "firstName", Value: "carol"}, {Key: "age", Value: 30}},
		))

		feed, err := s.ListUsersExcluding(ctx, []string{alice, bob}, 20, 10)
		assert.Nil(err)
		if assert.Len(feed, 1) {
			assert.Equal(models.UserDto{ID: carol, FirstName: "carol", Age: 30}, feed[0])
		}

		cmd := startedCommand(mt, "find")
		excluded, err := cmd.Lookup("filter", "_id", "$nin").Array().Values()
		assert.Nil(err)
		ids := []string{}
		for _, value := range excluded {
			ids = append(ids, value.StringValue())
		}
		assert.Equal([]string{alice, bob}, ids)
		assert.Equal(int64(20), cmd.Lookup("skip").AsInt64())
		assert.Equal(int64(10), cmd.Lookup("limit").AsInt64())
		assert.Equal(int64(1), cmd.Lookup("sort", "_id").AsInt64())
		for _, field := range models.PublicProjection {
			assert.Equal(int64(1), cmd.Lookup("projection", field).AsInt64(), field)
		}
		_, hasEmail := cmd.Lookup("projection").Document().LookupErr("email")
		assert.NotNil(hasEmail)
		_, hasPassword := cmd.Lookup("projection").Document().LookupErr("password")
		assert.NotNil(hasPassword)
	})

	mt.Run("Update Profile", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: alice},
			{Key: "firstName", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "about", Value: "Gopher"},
			{Key: "skills", Value: bson.A{"go"}},
		}}))

		about := "Gopher"
		skills := []string{"go"}
		user, err := s.UpdateUser(ctx, alice, models.ProfileUpdate{About: &about, Skills: &skills})
		assert.Nil(err)
		if assert.NotNil(user) {
			assert.Equal("Gopher", user.About)
			assert.Equal([]string{"go"}, user.Skills)
		}

		cmd := startedCommand(mt, "findAndModify")
		assert.Equal(alice, cmd.Lookup("query", "_id").StringValue())
		set := cmd.Lookup("update", "$set").Document()
		assert.Equal("Gopher", set.Lookup("about").StringValue())
		_, hasUpdatedAt := set.LookupErr("updatedAt")
		assert.Nil(hasUpdatedAt)
		_, hasFirstName := set.LookupErr("firstName")
		assert.NotNil(hasFirstName)
	})

	mt.Run("Update Unknown User", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		about := "Gopher"
		_, err := s.UpdateUser(ctx, models.NewID(), models.ProfileUpdate{About: &about})
		assert.ErrorIs(err, models.ErrUserNotFound)
	})

	mt.Run("Find Unknown User", func(mt *mtest.T) {
		assert := assert.New(mt)
		s := newMockStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.users", mtest.FirstBatch))
		_, err := s.FindUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(err, models.ErrUserNotFound)
	})
}

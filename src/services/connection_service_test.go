package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theleywin/Backend-DevConnect/src/models"
)

func TestSend(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bobby")

	t.Run("Self Request", func(t *testing.T) {
		for _, status := range []models.ConnectionStatus{models.ConnectionStatusInterested, models.ConnectionStatusIgnored} {
			_, _, err := f.connections.Send(ctx, alice, alice.ID, status)
			assert.ErrorIs(err, models.ErrSelfRequest)
		}
	})

	t.Run("Invalid Status", func(t *testing.T) {
		for _, status := range []models.ConnectionStatus{models.ConnectionStatusAccepted, models.ConnectionStatusRejected, "liked"} {
			_, _, err := f.connections.Send(ctx, alice, bob.ID, status)
			assert.ErrorIs(err, models.ErrInvalidStatus)
		}
	})

	t.Run("Unknown Target", func(t *testing.T) {
		_, _, err := f.connections.Send(ctx, alice, models.NewID(), models.ConnectionStatusInterested)
		assert.ErrorIs(err, models.ErrUserNotFound)

		_, _, err = f.connections.Send(ctx, alice, "not-an-id", models.ConnectionStatusInterested)
		var verr *models.ValidationError
		assert.ErrorAs(err, &verr)
	})

	t.Run("Create", func(t *testing.T) {
		conn, target, err := f.connections.Send(ctx, alice, bob.ID, models.ConnectionStatusInterested)
		assert.Nil(err)
		if conn == nil {
			return
		}
		assert.Equal(alice.ID, conn.FromUserID)
		assert.Equal(bob.ID, conn.ToUserID)
		assert.Equal(models.ConnectionStatusInterested, conn.Status)
		assert.Equal("bobby Tester", target.DisplayName())
	})

	t.Run("Duplicate Either Direction", func(t *testing.T) {
		for _, status := range []models.ConnectionStatus{models.ConnectionStatusInterested, models.ConnectionStatusIgnored} {
			_, _, err := f.connections.Send(ctx, alice, bob.ID, status)
			assert.ErrorIs(err, models.ErrDuplicateRequest)
			_, _, err = f.connections.Send(ctx, bob, alice.ID, status)
			assert.ErrorIs(err, models.ErrDuplicateRequest)
		}
	})
}

func TestReview(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bobby")
	carol := f.signup(t, "carol")

	_, _, err := f.connections.Send(ctx, alice, bob.ID, models.ConnectionStatusInterested)
	assert.Nil(err)
	_, _, err = f.connections.Send(ctx, alice, carol.ID, models.ConnectionStatusIgnored)
	assert.Nil(err)

	t.Run("Invalid Status", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, bob, alice.ID, models.ConnectionStatusInterested)
		assert.ErrorIs(err, models.ErrInvalidStatus)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, bob, models.NewID(), models.ConnectionStatusAccepted)
		assert.ErrorIs(err, models.ErrUserNotFound)
	})

	t.Run("Sender Cannot Resolve", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, alice, bob.ID, models.ConnectionStatusAccepted)
		assert.ErrorIs(err, models.ErrRequestNotFound)
	})

	t.Run("Ignored Is Final", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, carol, alice.ID, models.ConnectionStatusAccepted)
		assert.ErrorIs(err, models.ErrRequestNotFound)
	})

	t.Run("Missing Edge", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, carol, bob.ID, models.ConnectionStatusAccepted)
		assert.ErrorIs(err, models.ErrRequestNotFound)
	})

	t.Run("Recipient Accepts Once", func(t *testing.T) {
		conn, requester, err := f.connections.Review(ctx, bob, alice.ID, models.ConnectionStatusAccepted)
		assert.Nil(err)
		if conn != nil {
			assert.Equal(models.ConnectionStatusAccepted, conn.Status)
			assert.Equal(alice.ID, requester.ID)
		}

		_, _, err = f.connections.Review(ctx, bob, alice.ID, models.ConnectionStatusRejected)
		assert.ErrorIs(err, models.ErrRequestNotFound)
	})

	t.Run("Resolved Edge Still Locks Pair", func(t *testing.T) {
		_, _, err := f.connections.Send(ctx, bob, alice.ID, models.ConnectionStatusInterested)
		assert.ErrorIs(err, models.ErrDuplicateRequest)
	})
}

func TestListings(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bobby")
	carol := f.signup(t, "carol")
	dave := f.signup(t, "david")

	send := func(from, to models.User, status models.ConnectionStatus) {
		_, _, err := f.connections.Send(ctx, from, to.ID, status)
		assert.Nil(err)
	}
	send(bob, alice, models.ConnectionStatusInterested)
	send(alice, carol, models.ConnectionStatusInterested)
	send(dave, alice, models.ConnectionStatusInterested)
	send(carol, bob, models.ConnectionStatusIgnored)

	t.Run("Incoming", func(t *testing.T) {
		incoming, err := f.connections.ListIncoming(ctx, alice)
		assert.Nil(err)
		assert.Len(incoming, 2)
		for _, request := range incoming {
			assert.Equal(alice.ID, request.ToUserID)
			if assert.NotNil(request.FromUser) {
				assert.Equal(request.FromUserID, request.FromUser.ID)
			}
			assert.Nil(request.ToUser)
		}
	})

	t.Run("Outgoing", func(t *testing.T) {
		outgoing, err := f.connections.ListOutgoing(ctx, alice)
		assert.Nil(err)
		if assert.Len(outgoing, 1) {
			assert.Equal(carol.ID, outgoing[0].ToUser.ID)
			assert.Equal("carol", outgoing[0].ToUser.FirstName)
		}

		outgoing, err = f.connections.ListOutgoing(ctx, carol)
		assert.Nil(err)
		assert.Empty(outgoing)
	})

	t.Run("Accepted Is Direction Independent", func(t *testing.T) {
		_, _, err := f.connections.Review(ctx, alice, bob.ID, models.ConnectionStatusAccepted)
		assert.Nil(err)
		_, _, err = f.connections.Review(ctx, carol, alice.ID, models.ConnectionStatusAccepted)
		assert.Nil(err)
		_, _, err = f.connections.Review(ctx, alice, dave.ID, models.ConnectionStatusRejected)
		assert.Nil(err)

		accepted, err := f.connections.ListAccepted(ctx, alice)
		assert.Nil(err)
		ids := []string{}
		for _, view := range accepted {
			ids = append(ids, view.ID)
			assert.Equal(models.ConnectionStatusAccepted, view.Status)
		}
		assert.ElementsMatch([]string{bob.ID, carol.ID}, ids)

		fromBob, err := f.connections.ListAccepted(ctx, bob)
		assert.Nil(err)
		if assert.Len(fromBob, 1) {
			assert.Equal(alice.ID, fromBob[0].ID)
			assert.Equal("alice Tester", fromBob[0].Name)
		}

		fromCarol, err := f.connections.ListAccepted(ctx, carol)
		assert.Nil(err)
		if assert.Len(fromCarol, 1) {
			assert.Equal(alice.ID, fromCarol[0].ID)
		}
	})
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/nrednav/cuid2"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/store"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Sup3r$ecret"

type fixture struct {
	store       *store.SQLStore
	auth        *AuthService
	connections *ConnectionService
	feed        *FeedService
	profiles    *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.OpenMemory(cuid2.Generate())
	if err != nil {
		t.Fatalf("opening memory store: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })

	return &fixture{
		store:       s,
		auth:        NewAuthService(s, lib.NewTokenIssuer("test-secret", time.Hour), bcrypt.MinCost),
		connections: NewConnectionService(s, s),
		feed:        NewFeedService(s, s),
		profiles:    NewProfileService(s),
	}
}

func (f *fixture) signup(t *testing.T, firstName string) models.User {
	t.Helper()
	user, _, err := f.auth.Signup(context.Background(), models.SignupInput{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     firstName + "@example.com",
		Password:  testPassword,
	})
	if err != nil {
		t.Fatalf("signing up %s: %v", firstName, err)
	}
	return *user
}

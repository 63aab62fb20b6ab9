package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/metrics"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

type AuthService struct {
	users      store.UserStore
	tokens     *lib.TokenIssuer
	bcryptCost int
}

func NewAuthService(users store.UserStore, tokens *lib.TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Signup validates the input, stores a new user with a hashed password and
// returns it with a freshly signed token.
func (s *AuthService) Signup(ctx context.Context, input models.SignupInput) (*models.User, string, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, "", err
	}

	hashed, err := lib.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             models.NewID(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Password:       hashed,
		Age:            input.Age,
		Gender:         input.Gender,
		About:          input.About,
		ProfilePicture: input.ProfilePicture,
		Skills:         append([]string{}, input.Skills...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if user.About == "" {
		user.About = models.DefaultAbout
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = models.DefaultProfilePicture
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.AuthEvents.WithLabelValues("signup").Inc()
	return user, token, nil
}

// Login checks the credentials and returns the user with a new token. Unknown
// emails and wrong passwords both fail with models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input models.LoginInput) (*models.User, string, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return nil, "", models.ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("finding user by email: %w", err)
	}

	if !lib.CheckPassword(user.Password, input.Password) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.AuthEvents.WithLabelValues("login").Inc()
	return user, token, nil
}

// Authenticate resolves the user a token was issued for, with the password
// hash cleared.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, models.ErrUnauthorized
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("loading token user: %w", err)
	}

	user.Password = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

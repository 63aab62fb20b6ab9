package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

type ProfileService struct {
	users store.UserStore
}

func NewProfileService(users store.UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// Edit applies a JSON partial update to actor's profile. Unknown keys, type
// mismatches and constraint violations reject the whole update.
func (s *ProfileService) Edit(ctx context.Context, actor models.User, body []byte) (*models.User, error) {
	update, err := ParseProfileUpdate(body)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateUser(ctx, actor.ID, update)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	user.Password = ""
	return user, nil
}

// ParseProfileUpdate decodes and validates a profile edit payload.
func ParseProfileUpdate(body []byte) (models.ProfileUpdate, error) {
	var update models.ProfileUpdate

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return update, models.NewValidationError("", "Request body must be a JSON object")
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !isEditableField(key) {
			return update, models.NewValidationError(key, "Invalid field: "+key)
		}
	}
	for _, key := range keys {
		if bytes.Equal(bytes.TrimSpace(raw[key]), []byte("null")) {
			return update, models.NewValidationError(key, typeMessage(key))
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return update, models.NewValidationError(typeErr.Field, typeMessage(typeErr.Field))
		}
		return update, models.NewValidationError("", "Request body must be a JSON object")
	}

	if update.IsEmpty() {
		return update, models.NewValidationError("", "No editable fields provided")
	}
	if err := validateStruct(update); err != nil {
		return update, err
	}
	return update, nil
}

func isEditableField(key string) bool {
	for _, field := range models.EditableProfileFields {
		if field == key {
			return true
		}
	}
	return false
}

func typeMessage(field string) string {
	switch field {
	case "age":
		return field + " must be an integer"
	case "skills":
		return field + " must be an array of strings"
	default:
		return field + " must be a string"
	}
}

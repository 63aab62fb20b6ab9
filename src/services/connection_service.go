package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theleywin/Backend-DevConnect/src/metrics"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

// ConnectionService runs the connection-request workflow. An edge is created
// by its sender as interested or ignored, and only its recipient can move an
// interested edge to accepted or rejected. Every other state is final.
type ConnectionService struct {
	users       store.UserStore
	connections store.ConnectionStore
}

func NewConnectionService(users store.UserStore, connections store.ConnectionStore) *ConnectionService {
	return &ConnectionService{
		users:       users,
		connections: connections,
	}
}

// Send opens an edge from actor to the target user.
func (s *ConnectionService) Send(ctx context.Context, actor models.User, targetID string, status models.ConnectionStatus) (*models.Connection, *models.User, error) {
	if targetID == "" {
		return nil, nil, models.NewValidationError("toUserId", "User ID is required")
	}
	if !status.IsSendable() {
		return nil, nil, invalidStatus(models.ConnectionStatusInterested, models.ConnectionStatusIgnored)
	}
	if actor.ID == targetID {
		return nil, nil, models.ErrSelfRequest
	}
	if !models.IsValidID(targetID) {
		return nil, nil, models.NewValidationError("toUserId", "Invalid user ID format")
	}

	target, err := s.users.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding target user: %w", err)
	}

	_, err = s.connections.FindConnectionBetween(ctx, actor.ID, targetID)
	if err == nil {
		return nil, nil, models.ErrDuplicateRequest
	}
	if !errors.Is(err, models.ErrRequestNotFound) {
		return nil, nil, fmt.Errorf("checking existing request: %w", err)
	}

	// A concurrent Send between the same pair loses on the store's unique
	// indexes and surfaces as ErrDuplicateRequest here.
	conn := models.NewConnection(actor.ID, targetID, status, time.Now().UTC())
	if err := s.connections.CreateConnection(ctx, conn); err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	metrics.ConnectionRequests.WithLabelValues(string(status)).Inc()
	return conn, target, nil
}

func invalidStatus(allowed ...models.ConnectionStatus) error {
	names := make([]string, 0, len(allowed))
	for _, status := range allowed {
		names = append(names, string(status))
	}
	return &models.ValidationError{
		Field:   "status",
		Message: "Invalid status. Allowed statuses are: " + strings.Join(names, ", "),
		Err:     models.ErrInvalidStatus,
	}
}

// Review resolves the pending edge requester -> actor.
func (s *ConnectionService) Review(ctx context.Context, actor models.User, requesterID string, status models.ConnectionStatus) (*models.Connection, *models.User, error) {
	if requesterID == "" {
		return nil, nil, models.NewValidationError("toUserId", "User ID is required")
	}
	if !status.IsReviewable() {
		return nil, nil, invalidStatus(models.ConnectionStatusAccepted, models.ConnectionStatusRejected)
	}
	if !models.IsValidID(requesterID) {
		return nil, nil, models.NewValidationError("toUserId", "Invalid user ID format")
	}

	requester, err := s.users.FindUserByID(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding requester: %w", err)
	}

	conn, err := s.connections.ResolvePending(ctx, requesterID, actor.ID, status)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving request: %w", err)
	}

	metrics.ConnectionReviews.WithLabelValues(string(status)).Inc()
	return conn, requester, nil
}

// ListIncoming returns pending requests sent to actor, with each sender's profile.
func (s *ConnectionService) ListIncoming(ctx context.Context, actor models.User) ([]models.ConnectionRequestDto, error) {
	pending, err := s.connections.ListConnections(ctx, models.ConnectionQuery{
		ToUserID: actor.ID,
		Status:   models.ConnectionStatusInterested,
	})
	if err != nil {
		return nil, fmt.Errorf("listing incoming requests: %w", err)
	}
	return s.attachProfiles(ctx, pending, func(c models.Connection) string { return c.FromUserID }, true)
}

// ListOutgoing returns pending requests sent by actor, with each target's profile.
func (s *ConnectionService) ListOutgoing(ctx context.Context, actor models.User) ([]models.ConnectionRequestDto, error) {
	pending, err := s.connections.ListConnections(ctx, models.ConnectionQuery{
		FromUserID: actor.ID,
		Status:     models.ConnectionStatusInterested,
	})
	if err != nil {
		return nil, fmt.Errorf("listing outgoing requests: %w", err)
	}
	return s.attachProfiles(ctx, pending, func(c models.Connection) string { return c.ToUserID }, false)
}

func (s *ConnectionService) attachProfiles(ctx context.Context, conns []models.Connection, counterpart func(models.Connection) string, incoming bool) ([]models.ConnectionRequestDto, error) {
	ids := make([]string, 0, len(conns))
	for _, conn := range conns {
		ids = append(ids, counterpart(conn))
	}
	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading request profiles: %w", err)
	}

	requests := make([]models.ConnectionRequestDto, 0, len(conns))
	for _, conn := range conns {
		user, ok := users[counterpart(conn)]
		if !ok {
			continue
		}
		dto := user.ToDto()
		request := models.ConnectionRequestDto{
			ID:         conn.ID,
			FromUserID: conn.FromUserID,
			ToUserID:   conn.ToUserID,
			Status:     conn.Status,
			CreatedAt:  conn.CreatedAt,
			UpdatedAt:  conn.UpdatedAt,
		}
		if incoming {
			request.FromUser = &dto
		} else {
			request.ToUser = &dto
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// ListAccepted returns the other party of every accepted edge touching actor,
// whichever side actor was on.
func (s *ConnectionService) ListAccepted(ctx context.Context, actor models.User) ([]models.ConnectionView, error) {
	accepted, err := s.connections.ListConnections(ctx, models.ConnectionQuery{
		InvolvingUserID: actor.ID,
		Status:          models.ConnectionStatusAccepted,
	})
	if err != nil {
		return nil, fmt.Errorf("listing accepted connections: %w", err)
	}

	ids := make([]string, 0, len(accepted))
	for _, conn := range accepted {
		ids = append(ids, conn.OtherParty(actor.ID))
	}
	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading connection profiles: %w", err)
	}

	views := make([]models.ConnectionView, 0, len(accepted))
	for _, conn := range accepted {
		other, ok := users[conn.OtherParty(actor.ID)]
		if !ok {
			continue
		}
		views = append(views, models.ConnectionView{
			ID:             other.ID,
			Name:           other.DisplayName(),
			Status:         conn.Status,
			Gender:         other.Gender,
			Age:            other.Age,
			ProfilePicture: other.ProfilePicture,
		})
	}
	return views, nil
}

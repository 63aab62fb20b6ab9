package services

import (
	"context"
	"fmt"
	"math"

	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

type FeedService struct {
	users       store.UserStore
	connections store.ConnectionStore
}

func NewFeedService(users store.UserStore, connections store.ConnectionStore) *FeedService {
	return &FeedService{
		users:       users,
		connections: connections,
	}
}

// NormalizePage defaults page to 1 and limit to DefaultFeedLimit, and caps
// limit at MaxFeedLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	return page, limit
}

// PageOffset returns (page-1)*limit for a normalized page. ok is false when
// the offset does not fit in an int; no store can hold that many users.
func PageOffset(page, limit int) (int, bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// Feed pages through the users actor has no edge with. Edges of every status
// and both directions exclude their endpoints, so ignored and rejected users
// never come back.
func (s *FeedService) Feed(ctx context.Context, actor models.User, page, limit int) ([]models.UserDto, error) {
	page, limit = NormalizePage(page, limit)
	offset, ok := PageOffset(page, limit)
	if !ok {
		return []models.UserDto{}, nil
	}

	edges, err := s.connections.ListConnections(ctx, models.ConnectionQuery{InvolvingUserID: actor.ID})
	if err != nil {
		return nil, fmt.Errorf("listing feed exclusions: %w", err)
	}

	hidden := map[string]struct{}{actor.ID: {}}
	excluded := []string{actor.ID}
	for _, edge := range edges {
		for _, id := range []string{edge.FromUserID, edge.ToUserID} {
			if _, ok := hidden[id]; !ok {
				hidden[id] = struct{}{}
				excluded = append(excluded, id)
			}
		}
	}

	feed, err := s.users.ListUsersExcluding(ctx, excluded, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing feed users: %w", err)
	}
	return feed, nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Connection struct {
	ID         string           `json:"id" bson:"_id" gorm:"primaryKey;size:24"`
	FromUserID string           `json:"fromUserId" bson:"fromUserId" gorm:"size:24;not null;uniqueIndex:idx_connections_from_to"`
	ToUserID   string           `json:"toUserId" bson:"toUserId" gorm:"size:24;not null;uniqueIndex:idx_connections_from_to;index"`
	PairKey    string           `json:"-" bson:"pairKey" gorm:"size:49;not null;uniqueIndex"`
	Status     ConnectionStatus `json:"status" bson:"status" gorm:"type:varchar(20);not null;default:'interested'"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusInterested ConnectionStatus = "interested"
	ConnectionStatusIgnored    ConnectionStatus = "ignored"
	ConnectionStatusAccepted   ConnectionStatus = "accepted"
	ConnectionStatusRejected   ConnectionStatus = "rejected"
)

// IsSendable reports whether a sender may open an edge in this status.
func (s ConnectionStatus) IsSendable() bool {
	return s == ConnectionStatusInterested || s == ConnectionStatusIgnored
}

// IsReviewable reports whether a recipient may resolve a pending edge into this status.
func (s ConnectionStatus) IsReviewable() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusRejected
}

// NewConnection opens an edge from -> to. The pair key is the same for both
// directions so a unique index on it admits one edge per pair of users.
func NewConnection(from, to string, status ConnectionStatus, now time.Time) *Connection {
	return &Connection{
		ID:         NewID(),
		FromUserID: from,
		ToUserID:   to,
		PairKey:    PairKey(from, to),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// OtherParty returns the endpoint of the edge that is not userID.
func (c Connection) OtherParty(userID string) string {
	if c.FromUserID == userID {
		return c.ToUserID
	}
	return c.FromUserID
}

// ConnectionQuery filters edges. Empty fields match anything.
type ConnectionQuery struct {
	FromUserID      string
	ToUserID        string
	InvolvingUserID string
	Status          ConnectionStatus
}

// ConnectionRequestDto is a pending edge with the counterpart's public profile attached.
type ConnectionRequestDto struct {
	ID         string           `json:"id"`
	FromUserID string           `json:"fromUserId"`
	ToUserID   string           `json:"toUserId"`
	FromUser   *UserDto         `json:"fromUser,omitempty"`
	ToUser     *UserDto         `json:"toUser,omitempty"`
	Status     ConnectionStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// ConnectionView describes the other side of an accepted edge.
type ConnectionView struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Status         ConnectionStatus `json:"status"`
	Gender         Gender           `json:"gender,omitempty"`
	Age            int              `json:"age,omitempty"`
	ProfilePicture string           `json:"profilePicture"`
}

func NewID() string {
	return primitive.NewObjectID().Hex()
}

func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

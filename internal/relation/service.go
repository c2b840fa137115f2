package relation

import (
	"context"
	"errors"
)

// Transition errors. Handlers map these onto HTTP status codes.
var (
	ErrSelfRelation     = errors.New("relation: cannot target yourself")
	ErrUserNotFound     = errors.New("relation: user not found")
	ErrAlreadyExists    = errors.New("relation: a relation already exists between these users")
	ErrNoPendingRequest = errors.New("relation: no pending request between these users")
	ErrNotFriends       = errors.New("relation: users are not friends")
)

// Store provides the single-row reads and writes the state machine needs.
// Every write touches exactly one relation row, so a transition is atomic
// from the caller's perspective.
type Store interface {
	// UserExists reports whether a user with the given ID exists.
	UserExists(ctx context.Context, userID uint) (bool, error)

	// RelationExists reports whether any relation row links the two users,
	// in either direction and in any status.
	RelationExists(ctx context.Context, a, b uint) (bool, error)

	// CreatePending inserts a pending request row from -> to. It returns
	// ErrAlreadyExists when a row for the pair already exists, which can
	// happen even after a RelationExists check when two requests race.
	CreatePending(ctx context.Context, from, to uint) error

	// AcceptPending flips the pending row from -> to into an accepted one.
	// Returns false when no such pending row exists.
	AcceptPending(ctx context.Context, from, to uint) (bool, error)

	// DeletePending removes the pending row from -> to. Returns false when
	// no such pending row exists.
	DeletePending(ctx context.Context, from, to uint) (bool, error)

	// DeleteAccepted removes the accepted row between the two users,
	// whichever direction it was stored in. Returns false when the users
	// are not friends.
	DeleteAccepted(ctx context.Context, a, b uint) (bool, error)
}

// Service enforces the legal transitions between two users:
// none -> pending (SendRequest), pending -> accepted (Accept),
// pending -> none (Decline by the recipient, Cancel by the sender),
// accepted -> none (Unfriend by either side). Anything else is a conflict.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SendRequest creates a pending friend request from senderID to targetID.
// It conflicts when any relation already links the pair, including a pending
// request in the opposite direction, which the target should accept instead.
func (s *Service) SendRequest(ctx context.Context, senderID, targetID uint) error {
	if senderID == targetID {
		return ErrSelfRelation
	}

	exists, err := s.store.UserExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	related, err := s.store.RelationExists(ctx, senderID, targetID)
	if err != nil {
		return err
	}
	if related {
		return ErrAlreadyExists
	}

	return s.store.CreatePending(ctx, senderID, targetID)
}

// Accept turns the pending request from requesterID into a friendship. Only
// the recipient may accept; the conditional single-row update makes the two
// sides of the friendship visible at once.
func (s *Service) Accept(ctx context.Context, recipientID, requesterID uint) error {
	ok, err := s.store.AcceptPending(ctx, requesterID, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoPendingRequest
	}
	return nil
}

// Decline drops the pending request from requesterID to recipientID.
func (s *Service) Decline(ctx context.Context, recipientID, requesterID uint) error {
	ok, err := s.store.DeletePending(ctx, requesterID, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoPendingRequest
	}
	return nil
}

// Cancel withdraws the sender's own pending request to targetID.
func (s *Service) Cancel(ctx context.Context, senderID, targetID uint) error {
	ok, err := s.store.DeletePending(ctx, senderID, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoPendingRequest
	}
	return nil
}

// Unfriend removes the friendship between the two users. Either side may
// call it; deleting the single accepted row severs both directions at once.
func (s *Service) Unfriend(ctx context.Context, userID, otherID uint) error {
	if userID == otherID {
		return ErrSelfRelation
	}
	ok, err := s.store.DeleteAccepted(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFriends
	}
	return nil
}

package relation

import (
	"context"
	"errors"
	"testing"

	"mingle/backend/internal/models"
)

type memoryRelation struct {
	from, to uint
	status   models.RelationStatus
}

// memoryStore holds relation rows in a slice, mirroring the table the gorm
// store works against.
type memoryStore struct {
	userIDs   map[uint]bool
	relations []memoryRelation
}

func newMemoryStore(userIDs ...uint) *memoryStore {
	s := &memoryStore{userIDs: make(map[uint]bool, len(userIDs))}
	for _, id := range userIDs {
		s.userIDs[id] = true
	}
	return s
}

func (s *memoryStore) UserExists(_ context.Context, userID uint) (bool, error) {
	return s.userIDs[userID], nil
}

func (s *memoryStore) RelationExists(_ context.Context, a, b uint) (bool, error) {
	for _, r := range s.relations {
		if (r.from == a && r.to == b) || (r.from == b && r.to == a) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) CreatePending(_ context.Context, from, to uint) error {
	// Mirrors the unique pair index on user_relations.
	for _, r := range s.relations {
		if (r.from == from && r.to == to) || (r.from == to && r.to == from) {
			return ErrAlreadyExists
		}
	}
	s.relations = append(s.relations, memoryRelation{from: from, to: to, status: models.StatusPending})
	return nil
}

func (s *memoryStore) AcceptPending(_ context.Context, from, to uint) (bool, error) {
	for i, r := range s.relations {
		if r.from == from && r.to == to && r.status == models.StatusPending {
			s.relations[i].status = models.StatusAccepted
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) DeletePending(_ context.Context, from, to uint) (bool, error) {
	for i, r := range s.relations {
		if r.from == from && r.to == to && r.status == models.StatusPending {
			s.relations = append(s.relations[:i], s.relations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) DeleteAccepted(_ context.Context, a, b uint) (bool, error) {
	for i, r := range s.relations {
		if r.status != models.StatusAccepted {
			continue
		}
		if (r.from == a && r.to == b) || (r.from == b && r.to == a) {
			s.relations = append(s.relations[:i], s.relations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) friends(a, b uint) bool {
	for _, r := range s.relations {
		if r.status != models.StatusAccepted {
			continue
		}
		if (r.from == a && r.to == b) || (r.from == b && r.to == a) {
			return true
		}
	}
	return false
}

func (s *memoryStore) pendingCount(from, to uint) int {
	count := 0
	for _, r := range s.relations {
		if r.from == from && r.to == to && r.status == models.StatusPending {
			count++
		}
	}
	return count
}

func TestSendRequestThenDuplicate(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("first SendRequest: %v", err)
	}
	if err := svc.SendRequest(ctx, 1, 2); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second SendRequest err = %v, want ErrAlreadyExists", err)
	}
	if got := store.pendingCount(1, 2); got != 1 {
		t.Errorf("pending requests from 1 to 2 = %d, want exactly 1", got)
	}
}

func TestSendRequestValidation(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 1); !errors.Is(err, ErrSelfRelation) {
		t.Errorf("self request err = %v, want ErrSelfRelation", err)
	}
	if err := svc.SendRequest(ctx, 1, 99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown target err = %v, want ErrUserNotFound", err)
	}

	// A pending request in the opposite direction blocks a new one too.
	if err := svc.SendRequest(ctx, 2, 1); err != nil {
		t.Fatalf("SendRequest(2,1): %v", err)
	}
	if err := svc.SendRequest(ctx, 1, 2); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("crossed request err = %v, want ErrAlreadyExists", err)
	}
}

// staleReadStore answers RelationExists from a snapshot taken before a
// concurrent insert, while writes still see the live table. It models two
// crossed send-requests racing past the existence check.
type staleReadStore struct {
	*memoryStore
}

func (s *staleReadStore) RelationExists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func TestCrossedSendRequestsConflictAtInsert(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(&staleReadStore{store})
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest(1,2): %v", err)
	}
	// The reverse request saw no relation before user 1's insert committed;
	// the pair uniqueness still rejects it.
	if err := svc.SendRequest(ctx, 2, 1); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("racing SendRequest(2,1) err = %v, want ErrAlreadyExists", err)
	}
	if got := len(store.relations); got != 1 {
		t.Errorf("relation rows = %d, want exactly 1", got)
	}
}

func TestAcceptMakesFriendshipSymmetric(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := svc.Accept(ctx, 2, 1); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if !store.friends(1, 2) || !store.friends(2, 1) {
		t.Error("friendship is not visible from both sides after accept")
	}
	if store.pendingCount(1, 2) != 0 {
		t.Error("pending request survived the accept")
	}
}

func TestAcceptWithoutPendingRequest(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)

	err := svc.Accept(context.Background(), 2, 1)
	if !errors.Is(err, ErrNoPendingRequest) {
		t.Fatalf("err = %v, want ErrNoPendingRequest", err)
	}
	if len(store.relations) != 0 {
		t.Errorf("state mutated by failed accept: %v", store.relations)
	}
}

func TestAcceptOnlyByRecipient(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	// The sender trying to accept their own request finds no pending
	// request addressed to them.
	if err := svc.Accept(ctx, 1, 2); !errors.Is(err, ErrNoPendingRequest) {
		t.Fatalf("sender accept err = %v, want ErrNoPendingRequest", err)
	}
	if store.friends(1, 2) {
		t.Error("sender must not be able to accept their own request")
	}
}

func TestDeclineAndCancel(t *testing.T) {
	ctx := context.Background()

	store := newMemoryStore(1, 2)
	svc := NewService(store)
	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := svc.Decline(ctx, 2, 1); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if len(store.relations) != 0 {
		t.Errorf("decline left rows behind: %v", store.relations)
	}
	if err := svc.Decline(ctx, 2, 1); !errors.Is(err, ErrNoPendingRequest) {
		t.Errorf("second decline err = %v, want ErrNoPendingRequest", err)
	}

	store = newMemoryStore(1, 2)
	svc = NewService(store)
	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := svc.Cancel(ctx, 1, 2); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(store.relations) != 0 {
		t.Errorf("cancel left rows behind: %v", store.relations)
	}
	if err := svc.Cancel(ctx, 1, 2); !errors.Is(err, ErrNoPendingRequest) {
		t.Errorf("second cancel err = %v, want ErrNoPendingRequest", err)
	}
}

func TestUnfriend(t *testing.T) {
	store := newMemoryStore(1, 2)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if err := svc.Accept(ctx, 2, 1); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	// Either side may unfriend; here the original recipient does.
	if err := svc.Unfriend(ctx, 2, 1); err != nil {
		t.Fatalf("Unfriend: %v", err)
	}
	if store.friends(1, 2) {
		t.Error("friendship survived unfriend")
	}
	if err := svc.Unfriend(ctx, 1, 2); !errors.Is(err, ErrNotFriends) {
		t.Errorf("second unfriend err = %v, want ErrNotFriends", err)
	}
}

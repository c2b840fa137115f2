package suggest

import (
	"context"
	"errors"
	"sort"

	"mingle/backend/internal/models"
)

// Signal weights. A candidate qualifying for a signal gets the flat weight
// once, no matter how many posts or mutual friends matched; a candidate
// qualifying for several signals gets their sum.
const (
	weightMutualFriend = 10
	weightPostLiked    = 5
	weightCoCommented  = 3
)

// MaxLimit bounds the page size to keep the per-request query fan-out cheap.
const MaxLimit = 20

// ErrUserNotFound is returned when the requesting user does not exist.
var ErrUserNotFound = errors.New("suggest: user not found")

// RankedUser pairs a user with their friend count for the public summary.
type RankedUser struct {
	User         models.User
	FriendsCount int64
}

// Suggestion is one entry of a suggestion page. Score is zero for entries
// that came from the fallback pool.
type Suggestion struct {
	RankedUser
	Score int
}

// Store provides the read queries the ranker needs. All result slices are
// returned in the store's natural order, which the ranker uses as the
// tie-break for equal scores.
type Store interface {
	// UserExists reports whether a user with the given ID exists.
	UserExists(ctx context.Context, userID uint) (bool, error)

	// FriendIDs returns the IDs of the user's friends.
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)

	// PendingSentIDs returns the IDs of users the given user has an
	// unanswered friend request out to.
	PendingSentIDs(ctx context.Context, userID uint) ([]uint, error)

	// FriendsOfUsers returns the friend IDs of every user in userIDs,
	// concatenated. Duplicates are allowed; the ranker deduplicates.
	FriendsOfUsers(ctx context.Context, userIDs []uint) ([]uint, error)

	// LikersOfAuthoredPosts returns the IDs of users who liked any post
	// written by the given author.
	LikersOfAuthoredPosts(ctx context.Context, authorID uint) ([]uint, error)

	// AuthorsOfCommentedPosts returns the IDs of users who authored a post
	// the given user commented on.
	AuthorsOfCommentedPosts(ctx context.Context, commenterID uint) ([]uint, error)

	// UsersWithFriendCounts resolves users by ID together with their friend
	// counts. Missing IDs are simply absent from the result.
	UsersWithFriendCounts(ctx context.Context, userIDs []uint) (map[uint]RankedUser, error)

	// MostConnectedUsers returns users ordered by descending friend count
	// (ties by ascending ID), skipping excludeIDs, with offset/limit paging.
	MostConnectedUsers(ctx context.Context, excludeIDs []uint, offset, limit int) ([]RankedUser, error)
}

// Ranker produces ranked friend suggestions for a user.
type Ranker struct {
	store Store
}

// NewRanker creates a Ranker backed by the given store.
func NewRanker(store Store) *Ranker {
	return &Ranker{store: store}
}

// Suggest returns one page of friend suggestions for requesterID.
//
// Candidates are scored from three signals (mutual friends, likers of the
// requester's posts, authors of posts the requester commented on), summed per
// candidate, and sorted by descending score with discovery order breaking
// ties. The page never contains the requester, their friends, or anyone they
// already sent a request to. Short pages are backfilled from the
// most-connected users so that consecutive pages concatenate seamlessly.
func (r *Ranker) Suggest(ctx context.Context, requesterID uint, limit, page int) ([]Suggestion, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 1 {
		page = 1
	}

	exists, err := r.store.UserExists(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	friendIDs, err := r.store.FriendIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	pendingIDs, err := r.store.PendingSentIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uint]bool, len(friendIDs)+len(pendingIDs)+1)
	excluded[requesterID] = true
	for _, id := range friendIDs {
		excluded[id] = true
	}
	for _, id := range pendingIDs {
		excluded[id] = true
	}

	// Accumulate scores keyed by candidate ID; order remembers the first
	// time each candidate was discovered so the later sort stays stable.
	scores := make(map[uint]int)
	var order []uint
	addSignal := func(candidateIDs []uint, weight int) {
		seen := make(map[uint]bool, len(candidateIDs))
		for _, id := range candidateIDs {
			if excluded[id] || seen[id] {
				continue
			}
			seen[id] = true
			if _, known := scores[id]; !known {
				order = append(order, id)
			}
			scores[id] += weight
		}
	}

	if len(friendIDs) > 0 {
		mutualIDs, err := r.store.FriendsOfUsers(ctx, friendIDs)
		if err != nil {
			return nil, err
		}
		addSignal(mutualIDs, weightMutualFriend)
	}

	likerIDs, err := r.store.LikersOfAuthoredPosts(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	addSignal(likerIDs, weightPostLiked)

	commentedAuthorIDs, err := r.store.AuthorsOfCommentedPosts(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	addSignal(commentedAuthorIDs, weightCoCommented)

	candidates := make([]uint, len(order))
	copy(candidates, order)
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i]] > scores[candidates[j]]
	})

	scoredTotal := len(candidates)
	start := (page - 1) * limit
	sliceStart := start
	if sliceStart > scoredTotal {
		sliceStart = scoredTotal
	}
	sliceEnd := sliceStart + limit
	if sliceEnd > scoredTotal {
		sliceEnd = scoredTotal
	}
	pageIDs := candidates[sliceStart:sliceEnd]

	suggestions := make([]Suggestion, 0, limit)
	if len(pageIDs) > 0 {
		resolved, err := r.store.UsersWithFriendCounts(ctx, pageIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range pageIDs {
			ranked, ok := resolved[id]
			if !ok {
				// User vanished between the signal query and resolution.
				continue
			}
			suggestions = append(suggestions, Suggestion{RankedUser: ranked, Score: scores[id]})
		}
	}

	remaining := limit - len(pageIDs)
	if remaining > 0 {
		// Continue the fallback pool from where the scored set left off:
		// prior pages consumed (page-1)*limit entries, of which scoredTotal
		// at most came from the scored set.
		offset := start + len(pageIDs) - scoredTotal
		if offset < 0 {
			offset = 0
		}

		excludeIDs := make([]uint, 0, len(excluded)+len(candidates))
		excludeIDs = append(excludeIDs, requesterID)
		excludeIDs = append(excludeIDs, friendIDs...)
		excludeIDs = append(excludeIDs, pendingIDs...)
		excludeIDs = append(excludeIDs, candidates...)

		pool, err := r.store.MostConnectedUsers(ctx, excludeIDs, offset, remaining)
		if err != nil {
			return nil, err
		}
		for _, ranked := range pool {
			suggestions = append(suggestions, Suggestion{RankedUser: ranked})
		}
	}

	return suggestions, nil
}

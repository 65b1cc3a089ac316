package rating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vira-library/catalog/internal/domain"
)

// fakeRatingRepo is an in-memory RatingRepository keyed by (tool, user).
type fakeRatingRepo struct {
	rows       map[[2]uint]*domain.Rating
	upsertErr  error
	getErr     error
	upsertCall int
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{rows: map[[2]uint]*domain.Rating{}}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *domain.Rating) error {
	f.upsertCall++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := [2]uint{rating.ToolID, rating.UserID}
	if existing, ok := f.rows[key]; ok {
		existing.Rating = rating.Rating
		existing.Review = rating.Review
		return nil
	}
	stored := *rating
	stored.CreatedAt = time.Now()
	f.rows[key] = &stored
	return nil
}

func (f *fakeRatingRepo) GetByToolAndUser(_ context.Context, toolID, userID uint) (*domain.Rating, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.rows[[2]uint{toolID, userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// fakeToolStore only implements the lookup the rating service needs.
type fakeToolStore struct {
	domain.ToolRepository
	getErr error
}

func (f *fakeToolStore) GetByID(_ context.Context, id uint) (*domain.ToolRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.ToolRow{}, nil
}

func user(id uint) domain.Identity {
	return domain.Identity{UserID: id}
}

func TestRate_RejectsGuestIdentity(t *testing.T) {
	svc := NewRatingService(newFakeRatingRepo(), &fakeToolStore{})

	guest := domain.Identity{GuestID: "guest:abc", Guest: true}
	_, err := svc.Rate(context.Background(), guest, 1, 5, "")
	if !domain.IsUnauthorized(err) {
		t.Errorf("expected ErrUnauthorized for guest, got %v", err)
	}
}

func TestRate_RejectsAnonymousIdentity(t *testing.T) {
	svc := NewRatingService(newFakeRatingRepo(), &fakeToolStore{})

	_, err := svc.Rate(context.Background(), domain.Identity{}, 1, 5, "")
	if !domain.IsUnauthorized(err) {
		t.Errorf("expected ErrUnauthorized for anonymous, got %v", err)
	}
}

func TestRate_RejectsScoreOutOfRange(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := NewRatingService(repo, &fakeToolStore{})

	for _, score := range []int{0, -1, 6} {
		_, err := svc.Rate(context.Background(), user(1), 1, score, "")
		if !domain.IsValidation(err) {
			t.Errorf("score %d: expected validation error, got %v", score, err)
		}
	}
	if repo.upsertCall != 0 {
		t.Errorf("repo reached with invalid score, upsertCall=%d", repo.upsertCall)
	}
}

func TestRate_UnknownToolPropagatesNotFound(t *testing.T) {
	svc := NewRatingService(newFakeRatingRepo(), &fakeToolStore{getErr: domain.ErrNotFound})

	_, err := svc.Rate(context.Background(), user(1), 99, 4, "")
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRate_StoresTrimmedReviewAndReturnsStoredRow(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := NewRatingService(repo, &fakeToolStore{})

	got, err := svc.Rate(context.Background(), user(7), 3, 4, "  solid tool  ")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if got.Review != "solid tool" {
		t.Errorf("Review=%q; want trimmed", got.Review)
	}
	if got.ToolID != 3 || got.UserID != 7 || got.Rating != 4 {
		t.Errorf("stored row = %+v", got)
	}
}

func TestRate_SecondRatingOverwritesFirst(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := NewRatingService(repo, &fakeToolStore{})
	ctx := context.Background()

	first, err := svc.Rate(ctx, user(7), 3, 2, "meh")
	if err != nil {
		t.Fatalf("first Rate: %v", err)
	}
	firstCreated := first.CreatedAt

	second, err := svc.Rate(ctx, user(7), 3, 5, "grew on me")
	if err != nil {
		t.Fatalf("second Rate: %v", err)
	}
	if second.Rating != 5 || second.Review != "grew on me" {
		t.Errorf("second = %+v; want overwrite", second)
	}
	if !second.CreatedAt.Equal(firstCreated) {
		t.Errorf("overwrite changed CreatedAt: %v -> %v", firstCreated, second.CreatedAt)
	}
}

func TestRate_UpsertErrorPropagates(t *testing.T) {
	repo := newFakeRatingRepo()
	repo.upsertErr = errors.New("disk full")
	svc := NewRatingService(repo, &fakeToolStore{})

	if _, err := svc.Rate(context.Background(), user(1), 1, 3, ""); err == nil {
		t.Error("expected error from Upsert")
	}
}

func TestUserRating_RequiresRegisteredIdentity(t *testing.T) {
	svc := NewRatingService(newFakeRatingRepo(), &fakeToolStore{})

	_, err := svc.UserRating(context.Background(), domain.Identity{Guest: true}, 1)
	if !domain.IsUnauthorized(err) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserRating_ReturnsOwnRating(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := NewRatingService(repo, &fakeToolStore{})
	ctx := context.Background()

	if _, err := svc.Rate(ctx, user(7), 3, 4, "nice"); err != nil {
		t.Fatalf("Rate: %v", err)
	}

	got, err := svc.UserRating(ctx, user(7), 3)
	if err != nil {
		t.Fatalf("UserRating: %v", err)
	}
	if got.Rating != 4 || got.Review != "nice" {
		t.Errorf("got %+v", got)
	}

	if _, err := svc.UserRating(ctx, user(8), 3); !domain.IsNotFound(err) {
		t.Errorf("other user: expected ErrNotFound, got %v", err)
	}
}

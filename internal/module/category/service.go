package category

import (
	"context"
	"log/slog"

	"github.com/vira-library/catalog/internal/domain"
)

// categoryService implements domain.CategoryService.
type categoryService struct {
	repo           domain.CategoryRepository
	tools          domain.ToolRepository
	users          domain.UserRepository
	cache          CountsCache // nil when the counts cache is disabled
	demoOwnerEmail string
	log            *slog.Logger
}

// NewCategoryService creates a new CategoryService. cache may be nil;
// demoOwnerEmail identifies the account whose tools back guest-mode counts
// and may be empty, in which case guest counts degrade to an empty map.
func NewCategoryService(
	repo domain.CategoryRepository,
	tools domain.ToolRepository,
	users domain.UserRepository,
	cache CountsCache,
	demoOwnerEmail string,
	log *slog.Logger,
) domain.CategoryService {
	if log == nil {
		log = slog.Default()
	}
	return &categoryService{
		repo:           repo,
		tools:          tools,
		users:          users,
		cache:          cache,
		demoOwnerEmail: demoOwnerEmail,
		log:            log,
	}
}

// List returns the active categories in sort order.
func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListActive(ctx)
}

// Counts returns per-category tool counts for the viewer's accessible set,
// plus a synthetic "all" key holding the total. Counts are decorative
// filter badges: every failure path returns an empty map, never an error.
func (s *categoryService) Counts(ctx context.Context, viewer domain.Identity) map[string]int {
	ownerID, ok := s.resolveOwner(ctx, viewer)
	if !ok {
		return map[string]int{}
	}

	if s.cache != nil {
		if counts, hit := s.cache.Get(ctx, ownerID); hit {
			return counts
		}
	}

	counts, err := s.tools.CountByCategory(ctx, ownerID)
	if err != nil {
		s.log.WarnContext(ctx, "category counts failed, returning empty", slog.Any("error", err))
		return map[string]int{}
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	counts[domain.FilterAll] = total

	if s.cache != nil {
		s.cache.Set(ctx, ownerID, counts)
	}
	return counts
}

// resolveOwner maps the viewer identity onto the account whose tools are
// counted. Registered users see their own set; guests and anonymous viewers
// resolve to the configured demo owner.
func (s *categoryService) resolveOwner(ctx context.Context, viewer domain.Identity) (uint, bool) {
	if viewer.UserID != 0 {
		return viewer.UserID, true
	}

	if s.demoOwnerEmail == "" {
		return 0, false
	}
	owner, err := s.users.GetByEmail(ctx, s.demoOwnerEmail)
	if err != nil {
		s.log.WarnContext(ctx, "demo owner lookup failed",
			slog.String("email", s.demoOwnerEmail), slog.Any("error", err))
		return 0, false
	}
	return owner.ID, true
}

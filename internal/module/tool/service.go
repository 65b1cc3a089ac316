package tool

import (
	"context"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/vira-library/catalog/internal/domain"
)

// toolService implements domain.ToolService.
type toolService struct {
	repo       domain.ToolRepository
	categories domain.CategoryRepository
	log        *slog.Logger
}

// NewToolService creates a new ToolService with the given repositories.
func NewToolService(repo domain.ToolRepository, categories domain.CategoryRepository, log *slog.Logger) domain.ToolService {
	if log == nil {
		log = slog.Default()
	}
	return &toolService{repo: repo, categories: categories, log: log}
}

// List composes a single query from the filter state and returns enriched
// rows. A non-empty search string with no significant terms degrades to an
// empty result instead of erroring, matching websearch parser behavior.
func (s *toolService) List(ctx context.Context, f domain.ToolFilter) (*domain.PageResult[domain.ToolView], error) {
	normalizeFilter(&f)

	if searchRejected(f.Search) {
		return domain.NewPageResult([]domain.ToolView{}, 0, f.Window), nil
	}

	page, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	views := s.enrich(ctx, page.Items)
	return &domain.PageResult[domain.ToolView]{
		Items:      views,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Get retrieves a single enriched tool.
func (s *toolService) Get(ctx context.Context, id uint) (*domain.ToolView, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views := s.enrich(ctx, []domain.ToolRow{*row})
	return &views[0], nil
}

// Create validates input, builds a Tool stamped with the actor, and persists it.
func (s *toolService) Create(ctx context.Context, actor domain.Identity, input domain.ToolInput) (*domain.ToolView, error) {
	normalizeInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	tool := &domain.Tool{
		Name:           input.Name,
		Description:    input.Description,
		Link:           input.Link,
		Category:       input.Category,
		SubCategory:    input.SubCategory,
		PriceStructure: input.PriceStructure,
		PriceDetails:   input.PriceDetails,
		Tags:           input.Tags,
		Logo:           input.Logo,
		Screenshots:    input.Screenshots,
		Comments:       input.Comments,
		CreatedBy:      actor.UserID,
		UpdatedBy:      actor.UserID,
	}

	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, err
	}
	return s.Get(ctx, tool.ID)
}

// Update loads the existing tool, applies changes, and persists them.
func (s *toolService) Update(ctx context.Context, actor domain.Identity, id uint, input domain.ToolInput) (*domain.ToolView, error) {
	normalizeInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tool := existing.Tool
	tool.Name = input.Name
	tool.Description = input.Description
	tool.Link = input.Link
	tool.Category = input.Category
	tool.SubCategory = input.SubCategory
	tool.PriceStructure = input.PriceStructure
	tool.PriceDetails = input.PriceDetails
	tool.Tags = input.Tags
	tool.Logo = input.Logo
	tool.Screenshots = input.Screenshots
	tool.Comments = input.Comments
	tool.UpdatedBy = actor.UserID

	if err := s.repo.Update(ctx, &tool); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a tool.
func (s *toolService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// SetFavourite applies a single-field favorite update and returns the
// updated tool. On error the stored state is unchanged.
func (s *toolService) SetFavourite(ctx context.Context, id uint, favourite bool) (*domain.ToolView, error) {
	row, err := s.repo.SetFavourite(ctx, id, favourite)
	if err != nil {
		return nil, err
	}
	views := s.enrich(ctx, []domain.ToolRow{*row})
	return &views[0], nil
}

// suggestionLimit caps the type-ahead candidate list.
const suggestionLimit = 10

// suggestionMinLength is the query length below which no lookup happens.
const suggestionMinLength = 2

// Suggest returns up to suggestionLimit candidates for a partial query.
// Queries below the minimum length return empty without touching the store,
// and store failures degrade to an empty list: suggestions are a
// non-critical enhancement and never surface errors.
func (s *toolService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < suggestionMinLength {
		return []domain.Suggestion{}, nil
	}

	suggestions, err := s.repo.Suggest(ctx, query, suggestionLimit)
	if err != nil {
		s.log.WarnContext(ctx, "suggestion lookup failed", slog.String("query", query), slog.Any("error", err))
		return []domain.Suggestion{}, nil
	}

	byName := s.categoryIndex(ctx)
	for i := range suggestions {
		if cat, ok := byName[suggestions[i].Category]; ok {
			suggestions[i].Category = cat.DisplayName
		}
	}
	return suggestions, nil
}

// Export flattens the full filtered set (pagination ignored) into flat CSV
// records in the documented column order. Fetch failures propagate.
func (s *toolService) Export(ctx context.Context, f domain.ToolFilter) ([][]string, error) {
	f.Window = domain.PageWindow{}
	page, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(page.Items))
	for _, view := range page.Items {
		records = append(records, exportRecord(view))
	}
	return records, nil
}

// enrich resolves category display metadata for each row, falling back to
// the raw category key and the placeholder icon when no category matches,
// and rounds the rating aggregate to one decimal.
func (s *toolService) enrich(ctx context.Context, rows []domain.ToolRow) []domain.ToolView {
	byName := s.categoryIndex(ctx)

	views := make([]domain.ToolView, 0, len(rows))
	for _, row := range rows {
		row.AverageRating = math.Round(row.AverageRating*10) / 10
		view := domain.ToolView{
			ToolRow:             row,
			CategoryDisplayName: row.Category,
			CategoryIcon:        domain.DefaultCategoryIcon,
		}
		if cat, ok := byName[row.Category]; ok {
			view.CategoryDisplayName = cat.DisplayName
			view.CategoryIcon = cat.IconName
		}
		views = append(views, view)
	}
	return views
}

// categoryIndex loads the active categories keyed by name. A lookup failure
// degrades to raw-key fallbacks rather than failing the read it decorates.
func (s *toolService) categoryIndex(ctx context.Context) map[string]domain.Category {
	cats, err := s.categories.ListActive(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "category lookup failed, using raw keys", slog.Any("error", err))
		return nil
	}
	byName := make(map[string]domain.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return byName
}

// searchRejected reports whether a non-empty query carries no significant
// terms, i.e. the text-search parser would reject it.
func searchRejected(query string) bool {
	return strings.TrimSpace(query) != "" && len(Terms(query)) == 0
}

func normalizeFilter(f *domain.ToolFilter) {
	f.Category = strings.TrimSpace(f.Category)
	f.Pricing = strings.TrimSpace(f.Pricing)
	if f.SortField == "" {
		f.SortField = domain.SortCreatedAt
		f.SortOrder = domain.OrderDesc
	}
	if f.SortOrder == "" {
		f.SortOrder = domain.OrderAsc
	}
}

func normalizeInput(input *domain.ToolInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Link = strings.TrimSpace(input.Link)
	input.Category = strings.TrimSpace(input.Category)
	input.PriceStructure = strings.TrimSpace(input.PriceStructure)
	if input.PriceStructure == "" {
		input.PriceStructure = domain.PricingFree
	}
}

// validateInput checks required fields before any store access.
func validateInput(input domain.ToolInput) error {
	if input.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(input.Name) > 255 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 255 characters", nil)
	}
	if input.Link == "" {
		return domain.NewAppError(domain.CodeValidation, "link is required", nil)
	}
	if !validURL(input.Link) {
		return domain.NewAppError(domain.CodeValidation, "link must be a valid http(s) URL", nil)
	}
	if input.Category == "" {
		return domain.NewAppError(domain.CodeValidation, "category is required", nil)
	}
	switch input.PriceStructure {
	case domain.PricingFree, domain.PricingPaid, domain.PricingFreemium:
	default:
		return domain.NewAppError(domain.CodeValidation, "price_structure must be one of free, paid, freemium", nil)
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package tool

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vira-library/catalog/internal/domain"
	"github.com/vira-library/catalog/internal/pkg"
)

// ratingAggregates is the grouped subquery joined onto every tool read so
// rating statistics arrive with the row, zero-defaulted when absent.
const ratingAggregates = "LEFT JOIN (SELECT tool_id, AVG(rating) AS avg_rating, COUNT(*) AS rating_count FROM ratings GROUP BY tool_id) ratings_agg ON ratings_agg.tool_id = tools.id"

const rowSelect = "tools.*, COALESCE(ratings_agg.avg_rating, 0) AS average_rating, COALESCE(ratings_agg.rating_count, 0) AS total_ratings"

// sortColumns maps the public sort field enum onto ORDER BY columns.
var sortColumns = map[string]string{
	domain.SortCreatedAt: "tools.created_at",
	domain.SortName:      "tools.name",
	domain.SortCategory:  "tools.category",
	domain.SortRating:    "average_rating",
}

var allowedSortColumns = []string{"tools.created_at", "tools.name", "tools.category", "average_rating"}

// defaultOrder is creation time descending, newest first.
const defaultOrder = "tools.created_at DESC"

// toolRepository implements domain.ToolRepository using GORM.
type toolRepository struct {
	db      *gorm.DB
	dialect string
}

// NewToolRepository creates a new ToolRepository backed by the given GORM database.
func NewToolRepository(db *gorm.DB) domain.ToolRepository {
	return &toolRepository{db: db, dialect: db.Dialector.Name()}
}

// EnsureSearchIndex creates the generated tsvector column and GIN index that
// back websearch queries on Postgres. A no-op for other dialects, where the
// search_text field is matched directly.
func EnsureSearchIndex(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	stmts := []string{
		"ALTER TABLE tools ADD COLUMN IF NOT EXISTS search_vector tsvector GENERATED ALWAYS AS (to_tsvector('english', coalesce(search_text, ''))) STORED",
		"CREATE INDEX IF NOT EXISTS idx_tools_search_vector ON tools USING GIN (search_vector)",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// filterScopes translates the filter state into WHERE conditions. All active
// criteria apply simultaneously (AND semantics); the "all" sentinel and zero
// values leave their dimension unfiltered.
func filterScopes(dialect string, f domain.ToolFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != "" && f.Category != domain.FilterAll {
			db = db.Where("tools.category = ?", f.Category)
		}
		if f.Pricing != "" && f.Pricing != domain.FilterAll {
			db = db.Where("tools.price_structure = ?", f.Pricing)
		}
		if f.FavoritesOnly {
			db = db.Where("tools.is_favourite = ?", true)
		}
		if strings.TrimSpace(f.Search) != "" {
			db = db.Scopes(searchScope(dialect, f.Search))
		}
		return db
	}
}

// Create inserts a new tool.
func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	if err := r.db.WithContext(ctx).Create(tool).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a tool with its rating aggregates.
func (r *toolRepository) GetByID(ctx context.Context, id uint) (*domain.ToolRow, error) {
	var rows []domain.ToolRow
	err := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Select(rowSelect).
		Joins(ratingAggregates).
		Where("tools.id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

// List returns tools matching every active filter criterion, sorted and
// windowed, with rating aggregates joined in.
func (r *toolRepository) List(ctx context.Context, f domain.ToolFilter) (*domain.PageResult[domain.ToolRow], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Scopes(filterScopes(r.dialect, f)).
		Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	sortColumn := sortColumns[f.SortField]

	var rows []domain.ToolRow
	err := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Select(rowSelect).
		Joins(ratingAggregates).
		Scopes(
			filterScopes(r.dialect, f),
			pkg.Order(sortColumn, f.SortOrder, allowedSortColumns, defaultOrder),
			pkg.Window(f.Window),
		).
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}

	return domain.NewPageResult(rows, total, f.Window), nil
}

// Update saves changes to an existing tool.
func (r *toolRepository) Update(ctx context.Context, tool *domain.Tool) error {
	if err := r.db.WithContext(ctx).Save(tool).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes a tool and its ratings in one transaction, so a failure
// on either statement leaves both tables untouched.
func (r *toolRepository) Delete(ctx context.Context, id uint) error {
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Tool{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("tool_id = ?", id).Delete(&domain.Rating{}).Error
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return mapError(err)
	}
	return nil
}

// SetFavourite updates the favorite flag on a single tool and returns the
// updated row. The prior row is untouched when the write fails.
func (r *toolRepository) SetFavourite(ctx context.Context, id uint, favourite bool) (*domain.ToolRow, error) {
	result := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Where("id = ?", id).
		Update("is_favourite", favourite)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Suggest returns up to limit lightweight name/category projections matching
// the query terms.
func (r *toolRepository) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if len(Terms(query)) == 0 {
		return []domain.Suggestion{}, nil
	}

	var out []domain.Suggestion
	err := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Select("tools.name AS name, tools.category AS category").
		Scopes(searchScope(r.dialect, query)).
		Order("tools.name ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, mapError(err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}

// CountByCategory counts tools per category key in one grouped pass.
// An ownerID of zero counts the whole catalog.
func (r *toolRepository) CountByCategory(ctx context.Context, ownerID uint) (map[string]int, error) {
	var rows []struct {
		Category string
		Total    int64
	}

	q := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Select("tools.category AS category, COUNT(*) AS total").
		Group("tools.category")
	if ownerID != 0 {
		q = q.Where("tools.created_by = ?", ownerID)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Category] = int(row.Total)
	}
	return counts, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

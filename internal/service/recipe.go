package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/forkful/recipe-catalog/backend/internal/filter"
	"github.com/forkful/recipe-catalog/backend/internal/model"
)

// orderClause keeps result ordering deterministic: best-rated first, rows
// without a rating after all rated ones, ties broken by id.
const orderClause = "rating DESC NULLS LAST, id ASC"

// RecipeService handles recipe read operations
type RecipeService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, log *zap.Logger) *RecipeService {
	return &RecipeService{db: db, log: log}
}

// ListResult is one page of the catalog plus the effective paging values.
type ListResult struct {
	Page  int
	Limit int
	Total int64
	Data  []model.Recipe
}

// List returns one page of recipes ordered by rating. Page and limit below 1
// are clamped up to 1. The count and the fetch are two separate read-only
// statements; a write landing between them can make Total disagree with the
// page contents, which is accepted for this read-mostly catalog.
func (s *RecipeService) List(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return nil, err
	}

	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).
		Order(orderClause).
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	return &ListResult{Page: page, Limit: limit, Total: total, Data: recipes}, nil
}

// Search returns every recipe matching the filter, ordered like List. The
// whole result set comes back in one query; search results are expected to be
// small enough that no pagination is needed.
func (s *RecipeService) Search(ctx context.Context, f filter.Filter) ([]model.Recipe, error) {
	dialect := s.db.Dialector.Name()
	conds, args := f.Compile(dialect)

	query := s.db.WithContext(ctx)
	if len(conds) > 0 {
		query = query.Where(strings.Join(conds, " AND "), args...)
	}

	recipes := []model.Recipe{}
	if err := query.Order(orderClause).Find(&recipes).Error; err != nil {
		return nil, err
	}

	// Only postgres can run the calorie extraction in SQL; elsewhere the
	// comparison is applied here with the same empty-extraction-excludes
	// semantics.
	if f.Calories != nil && dialect != "postgres" {
		s.log.Debug("applying calories filter in memory", zap.String("dialect", dialect))
		filtered := recipes[:0]
		for _, r := range recipes {
			v, ok := filter.ExtractNumber(r.Nutrients["calories"])
			if ok && f.Calories.Matches(v) {
				filtered = append(filtered, r)
			}
		}
		recipes = filtered
	}

	return recipes, nil
}

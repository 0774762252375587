package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forkful/recipe-catalog/backend/internal/filter"
	"github.com/forkful/recipe-catalog/backend/internal/model"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func setupServiceTest(t *testing.T) *RecipeService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Recipe{}))
	return NewRecipeService(db, zaptest.NewLogger(t))
}

func seed(t *testing.T, s *RecipeService, recipes []model.Recipe) {
	for i := range recipes {
		require.NoError(t, s.db.Create(&recipes[i]).Error)
	}
}

func titles(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func catalogFixture() []model.Recipe {
	return []model.Recipe{
		{Title: "Chicken Curry", Cuisine: strPtr("Indian"), Rating: f64Ptr(4.5), TotalTime: intPtr(45),
			Nutrients: model.NutrientMap{"calories": "450 kcal"}},
		{Title: "Pad Thai", Cuisine: strPtr("Thai"), Rating: f64Ptr(4.5), TotalTime: intPtr(30),
			Nutrients: model.NutrientMap{"calories": "380 kcal"}},
		{Title: "Minestrone Soup", Cuisine: strPtr("Italian"), Rating: f64Ptr(3.8), TotalTime: intPtr(60),
			Nutrients: model.NutrientMap{"calories": "n/a"}},
		{Title: "Mystery Stew", Rating: nil, TotalTime: intPtr(90)},
		{Title: "Quick Salad", Cuisine: strPtr("Italian"), Rating: f64Ptr(4.9), TotalTime: intPtr(10),
			Nutrients: model.NutrientMap{"calories": "120 kcal"}},
	}
}

func TestListOrdering(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	result, err := s.List(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Total)
	// Rating descending, nulls after all rated rows, ties broken by id.
	assert.Equal(t,
		[]string{"Quick Salad", "Chicken Curry", "Pad Thai", "Minestrone Soup", "Mystery Stew"},
		titles(result.Data))
}

func TestListPagesArePrefixSlices(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	page1, err := s.List(context.Background(), 1, 2)
	require.NoError(t, err)
	page2, err := s.List(context.Background(), 2, 2)
	require.NoError(t, err)
	both, err := s.List(context.Background(), 1, 4)
	require.NoError(t, err)

	assert.Len(t, page1.Data, 2)
	assert.Len(t, page2.Data, 2)
	// Page sets are disjoint and their concatenation is the doubled page.
	assert.Equal(t,
		append(titles(page1.Data), titles(page2.Data)...),
		titles(both.Data))
	for _, a := range page1.Data {
		for _, b := range page2.Data {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}
	assert.Equal(t, int64(5), page1.Total)
}

func TestListClampsPageAndLimit(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	result, err := s.List(context.Background(), 0, -3)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.Limit)
	assert.Len(t, result.Data, 1)
}

func TestListPastTheEnd(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	result, err := s.List(context.Background(), 99, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Total)
	assert.Empty(t, result.Data)
	assert.NotNil(t, result.Data)
}

func TestSearchEmptyFilterMatchesAll(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	recipes, err := s.Search(context.Background(), filter.Filter{})
	require.NoError(t, err)
	assert.Len(t, recipes, 5)
}

func TestSearchTitleSubstringCaseInsensitive(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	recipes, err := s.Search(context.Background(), filter.Filter{Title: "CHICK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Curry"}, titles(recipes))

	recipes, err = s.Search(context.Background(), filter.Filter{Title: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestSearchCuisineExactMatch(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	recipes, err := s.Search(context.Background(), filter.Filter{Cuisine: "Italian"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick Salad", "Minestrone Soup"}, titles(recipes))
}

func TestSearchRatingComparison(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	rating := filter.Comparison{Op: filter.GTE, Value: 4}
	recipes, err := s.Search(context.Background(), filter.Filter{Rating: &rating})
	require.NoError(t, err)
	// Rows with no rating never satisfy a rating bound.
	assert.Equal(t, []string{"Quick Salad", "Chicken Curry", "Pad Thai"}, titles(recipes))
}

func TestSearchTotalTimeComparison(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	tt := filter.Comparison{Op: filter.LTE, Value: 30}
	recipes, err := s.Search(context.Background(), filter.Filter{TotalTime: &tt})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick Salad", "Pad Thai"}, titles(recipes))
}

func TestSearchCaloriesBound(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	calories := filter.Comparison{Op: filter.LTE, Value: 400}
	recipes, err := s.Search(context.Background(), filter.Filter{Calories: &calories})
	require.NoError(t, err)

	// 450 kcal is over the bound; "n/a" and missing nutrients have no
	// extractable value and are excluded rather than accidentally matched.
	assert.Equal(t, []string{"Quick Salad", "Pad Thai"}, titles(recipes))
}

func TestSearchCombinedFilters(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	rating := filter.Comparison{Op: filter.GT, Value: 4}
	recipes, err := s.Search(context.Background(), filter.Filter{
		Cuisine: "Italian",
		Rating:  &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick Salad"}, titles(recipes))
}

func TestSearchOrderingMatchesList(t *testing.T) {
	s := setupServiceTest(t)
	seed(t, s, catalogFixture())

	recipes, err := s.Search(context.Background(), filter.Filter{})
	require.NoError(t, err)

	listed, err := s.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, titles(listed.Data), titles(recipes))
}

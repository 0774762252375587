package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordMinimal(t *testing.T) {
	rec, err := ValidateRecord(map[string]interface{}{"title": "Soup"})
	require.NoError(t, err)

	assert.Equal(t, "Soup", rec.Title)
	assert.Zero(t, rec.ID)
	assert.Nil(t, rec.Cuisine)
	assert.Nil(t, rec.Rating)
	assert.Nil(t, rec.PrepTime)
	assert.Nil(t, rec.CookTime)
	assert.Nil(t, rec.TotalTime)
	assert.Nil(t, rec.Description)
	assert.Nil(t, rec.Nutrients)
	assert.Nil(t, rec.Serves)
}

func TestValidateRecordMissingTitle(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"title": ""},
		{"title": "   "},
		{"title": nil},
		{"title": 42},
	}

	for _, raw := range cases {
		_, err := ValidateRecord(raw)
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "title", fieldErr.Field)
		assert.Equal(t, MissingField, fieldErr.Kind)
	}
}

func TestValidateRecordNumbers(t *testing.T) {
	rec, err := ValidateRecord(map[string]interface{}{
		"title":      "Soup",
		"rating":     "4.5",
		"prep_time":  float64(10),
		"cook_time":  "20",
		"total_time": float64(30),
	})
	require.NoError(t, err)

	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.5, *rec.Rating)
	require.NotNil(t, rec.PrepTime)
	assert.Equal(t, 10, *rec.PrepTime)
	require.NotNil(t, rec.CookTime)
	assert.Equal(t, 20, *rec.CookTime)
	require.NotNil(t, rec.TotalTime)
	assert.Equal(t, 30, *rec.TotalTime)
}

func TestValidateRecordRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"non-numeric string", "rating", "not-a-number"},
		{"wrong type", "total_time", []interface{}{30}},
		{"negative number", "prep_time", float64(-5)},
		{"negative string", "rating", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecord(map[string]interface{}{
				"title":  "Soup",
				tt.field: tt.value,
			})
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, InvalidNumber, fieldErr.Kind)
		})
	}
}

func TestValidateRecordOptionalStringsAndNutrients(t *testing.T) {
	rec, err := ValidateRecord(map[string]interface{}{
		"title":       "  Pad Thai  ",
		"cuisine":     "Thai",
		"description": "",
		"serves":      "4 servings",
		"nutrients": map[string]interface{}{
			"calories": "380 kcal",
			"sodium":   float64(800),
		},
		"unknown_field": "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pad Thai", rec.Title)
	require.NotNil(t, rec.Cuisine)
	assert.Equal(t, "Thai", *rec.Cuisine)
	assert.Nil(t, rec.Description)
	require.NotNil(t, rec.Serves)
	assert.Equal(t, "4 servings", *rec.Serves)
	assert.Equal(t, "380 kcal", rec.Nutrients["calories"])
	assert.Equal(t, "800", rec.Nutrients["sodium"])
}

func TestValidateRecordIgnoresInboundID(t *testing.T) {
	rec, err := ValidateRecord(map[string]interface{}{
		"title": "Soup",
		"id":    float64(99),
	})
	require.NoError(t, err)
	assert.Zero(t, rec.ID)
}

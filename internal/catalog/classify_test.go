package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

func TestClassifySubCategory(t *testing.T) {
	tests := []struct {
		name string
		info ProductInfo
		want string
	}{
		{"off exact", ProductInfo{Source: store.SourceOpenFoodFacts, SourceCategory: "Beverages, Sodas"}, "Beverages"},
		{"off second category", ProductInfo{Source: store.SourceOpenFoodFacts, SourceCategory: "Plant-based, cheeses"}, "Dairy"},
		{"off partial", ProductInfo{Source: store.SourceOpenFoodFacts, SourceCategory: "Breakfast cereals"}, "Breakfast Cereal"},
		{"off language prefix", ProductInfo{Source: store.SourceOpenFoodFacts, SourceCategory: "en:pastas"}, "Pasta"},
		{"obf exact", ProductInfo{Source: store.SourceOpenBeautyFacts, SourceCategory: "shampoos"}, "Shampoo"},
		{"obf partial", ProductInfo{Source: store.SourceOpenBeautyFacts, SourceCategory: "Mineral sunscreens"}, "Sunscreen"},
		{"obf table ignored for other sources", ProductInfo{Source: store.SourceManual, SourceCategory: "shampoos", Name: "Thing", Category: CategoryFood}, "Food - Other"},
		{"name keyword", ProductInfo{Name: "Daily Moisturizer SPF 30", Category: CategoryPersonalCare}, "Body Lotion"},
		{"name keyword order", ProductInfo{Name: "Kids Shampoo & Conditioner"}, "Shampoo"},
		{"cleaning keyword", ProductInfo{Name: "Lemon Dish Soap"}, "Dish Soap"},
		{"personal care default", ProductInfo{Name: "Zorb", Category: CategoryPersonalCare}, "Personal Care - Other"},
		{"cleaning default", ProductInfo{Name: "Zorb", Category: CategoryHomeCleaning}, "Surface Cleaner"},
		{"other", ProductInfo{Name: "Zorb"}, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySubCategory(tt.info)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidSubCategory(got))
		})
	}
}

func TestValidSubCategory(t *testing.T) {
	assert.True(t, ValidSubCategory("Candy & Sweets"))
	assert.False(t, ValidSubCategory("candy & sweets"))
	assert.False(t, ValidSubCategory(""))
}

func TestEveryMappingTargetIsValid(t *testing.T) {
	for _, table := range [][]mapping{offFoodMappings, obfBeautyMappings, nameKeywordMappings} {
		for _, m := range table {
			assert.True(t, ValidSubCategory(m.value), "%s -> %s", m.key, m.value)
		}
	}
}

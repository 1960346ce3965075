package catalog

import (
	"strings"

	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

type mapping struct {
	key   string
	value string
}

// Order matters: the first exact or substring hit wins.
var offFoodMappings = []mapping{
	{"beverages", "Beverages"}, {"drinks", "Beverages"}, {"sodas", "Beverages"},
	{"juices", "Beverages"}, {"waters", "Beverages"}, {"teas", "Beverages"},
	{"coffees", "Beverages"}, {"energy-drinks", "Beverages"}, {"milk", "Dairy"},

	{"breakfasts", "Breakfast Cereal"}, {"cereals", "Breakfast Cereal"},
	{"breakfast-cereals", "Breakfast Cereal"},

	{"snacks", "Snacks"}, {"chips", "Snacks"}, {"crackers", "Snacks"},
	{"popcorn", "Snacks"}, {"pretzels", "Snacks"}, {"nuts", "Nuts & Seeds"},
	{"seeds", "Nuts & Seeds"}, {"dried-fruits", "Snacks"},

	{"sugary-snacks", "Candy & Sweets"}, {"chocolates", "Candy & Sweets"},
	{"candies", "Candy & Sweets"}, {"confectioneries", "Candy & Sweets"},
	{"cookies", "Candy & Sweets"}, {"biscuits", "Candy & Sweets"},
	{"ice-creams", "Candy & Sweets"},

	{"dairies", "Dairy"}, {"dairy", "Dairy"}, {"cheeses", "Dairy"},
	{"yogurts", "Dairy"}, {"butters", "Dairy"}, {"creams", "Dairy"},

	{"breads", "Bread"}, {"bread", "Bread"}, {"pastas", "Pasta"}, {"pasta", "Pasta"},
	{"noodles", "Pasta"}, {"rice", "Rice"}, {"rices", "Rice"}, {"grains", "Rice"},

	{"condiments", "Condiments"}, {"sauces", "Condiments"}, {"dressings", "Condiments"},
	{"ketchup", "Condiments"}, {"mustard", "Condiments"}, {"mayonnaise", "Condiments"},
	{"spreads", "Spreads"}, {"jams", "Spreads"}, {"honeys", "Spreads"},
	{"nut-butters", "Spreads"}, {"peanut-butters", "Spreads"}, {"chocolate-spreads", "Spreads"},

	{"canned", "Canned Vegetables"}, {"canned-foods", "Canned Vegetables"},
	{"canned-vegetables", "Canned Vegetables"}, {"canned-beans", "Beans & Legumes"},
	{"canned-soups", "Canned Soup"}, {"soups", "Canned Soup"},

	{"frozen-foods", "Frozen Vegetables"}, {"frozen-vegetables", "Frozen Vegetables"},
	{"frozen", "Frozen Vegetables"},

	{"legumes", "Beans & Legumes"}, {"beans", "Beans & Legumes"},
	{"spices", "Spices & Seasonings"}, {"seasonings", "Spices & Seasonings"},
	{"herbs", "Spices & Seasonings"},

	{"meats", "Food - Other"}, {"fish", "Food - Other"}, {"seafood", "Food - Other"},
	{"poultry", "Food - Other"}, {"eggs", "Food - Other"},
}

var obfBeautyMappings = []mapping{
	{"shampoos", "Shampoo"}, {"shampoo", "Shampoo"}, {"hair-shampoos", "Shampoo"},
	{"conditioners", "Hair Care"}, {"hair-conditioners", "Hair Care"},
	{"hair-care", "Hair Care"}, {"hair-products", "Hair Care"},
	{"hair-colorants", "Hair Care"}, {"hair-dyes", "Hair Care"},
	{"hair-styling", "Hair Care"}, {"hair-treatments", "Hair Care"},

	{"body-washes", "Body Wash"}, {"body-wash", "Body Wash"}, {"shower-gels", "Body Wash"},
	{"soaps", "Body Wash"}, {"body-lotions", "Body Lotion"}, {"body-creams", "Body Lotion"},
	{"body-milks", "Body Lotion"}, {"moisturizers", "Body Lotion"}, {"lotions", "Lotion"},

	{"face-creams", "Face Care"}, {"face-care", "Face Care"}, {"facial-care", "Face Care"},
	{"face-cleansers", "Face Wash"}, {"face-washes", "Face Wash"}, {"cleansers", "Face Wash"},
	{"toners", "Face Care"}, {"serums", "Face Care"}, {"masks", "Face Care"},
	{"face-masks", "Face Care"},

	{"makeups", "Face Makeup"}, {"makeup", "Face Makeup"}, {"foundations", "Face Makeup"},
	{"concealers", "Face Makeup"}, {"powders", "Face Makeup"}, {"blushes", "Face Makeup"},
	{"bronzers", "Face Makeup"}, {"primers", "Face Makeup"}, {"bb-creams", "Face Makeup"},
	{"cc-creams", "Face Makeup"},

	{"eye-makeup", "Eye Makeup"}, {"eye-shadows", "Eye Makeup"}, {"eyeshadows", "Eye Makeup"},
	{"mascaras", "Eye Makeup"}, {"eyeliners", "Eye Makeup"}, {"eye-pencils", "Eye Makeup"},
	{"brow-products", "Eye Makeup"}, {"eyebrow", "Eye Makeup"},

	{"lip-makeup", "Lip Makeup"}, {"lipsticks", "Lip Makeup"}, {"lip-glosses", "Lip Makeup"},
	{"lip-balms", "Lip Makeup"}, {"lip-liners", "Lip Makeup"}, {"lip-care", "Lip Makeup"},

	{"nail-polish", "Nail Products"}, {"nail-polishes", "Nail Products"},
	{"nail-care", "Nail Products"}, {"nail-treatments", "Nail Products"},
	{"nail-products", "Nail Products"},

	{"sunscreens", "Sunscreen"}, {"sunscreen", "Sunscreen"}, {"sun-care", "Sunscreen"},
	{"sun-protection", "Sunscreen"}, {"spf", "Sunscreen"}, {"after-sun", "Sunscreen"},

	{"deodorants", "Deodorant"}, {"deodorant", "Deodorant"}, {"antiperspirants", "Deodorant"},

	{"toothpastes", "Oral Care"}, {"toothpaste", "Oral Care"}, {"mouthwashes", "Oral Care"},
	{"oral-care", "Oral Care"}, {"dental-care", "Oral Care"},

	{"baby-care", "Baby Care"}, {"baby-products", "Baby Care"}, {"baby-lotions", "Baby Care"},
	{"baby-shampoos", "Baby Care"}, {"diapers", "Baby Care"},

	{"skin-care", "Skin Care"}, {"skincare", "Skin Care"}, {"anti-aging", "Skin Care"},
	{"acne-treatments", "Skin Care"},
}

var nameKeywordMappings = []mapping{
	{"shampoo", "Shampoo"}, {"conditioner", "Hair Care"}, {"body wash", "Body Wash"},
	{"shower gel", "Body Wash"}, {"lotion", "Body Lotion"}, {"moisturizer", "Body Lotion"},
	{"cream", "Skin Care"}, {"serum", "Skin Care"}, {"sunscreen", "Sunscreen"},
	{"spf", "Sunscreen"}, {"deodorant", "Deodorant"}, {"antiperspirant", "Deodorant"},
	{"toothpaste", "Oral Care"}, {"mouthwash", "Oral Care"}, {"lipstick", "Lip Makeup"},
	{"lip gloss", "Lip Makeup"}, {"lip balm", "Lip Makeup"}, {"mascara", "Eye Makeup"},
	{"eyeliner", "Eye Makeup"}, {"eyeshadow", "Eye Makeup"}, {"eye shadow", "Eye Makeup"},
	{"foundation", "Face Makeup"}, {"concealer", "Face Makeup"}, {"blush", "Face Makeup"},
	{"bronzer", "Face Makeup"}, {"nail polish", "Nail Products"},
	{"nail lacquer", "Nail Products"}, {"face wash", "Face Wash"}, {"cleanser", "Face Wash"},
	{"baby", "Baby Care"},

	{"cereal", "Breakfast Cereal"}, {"granola", "Breakfast Cereal"},
	{"oatmeal", "Breakfast Cereal"}, {"juice", "Beverages"}, {"soda", "Beverages"},
	{"water", "Beverages"}, {"tea", "Beverages"}, {"coffee", "Beverages"},
	{"milk", "Dairy"}, {"cheese", "Dairy"}, {"yogurt", "Dairy"}, {"butter", "Dairy"},
	{"bread", "Bread"}, {"pasta", "Pasta"}, {"noodle", "Pasta"}, {"rice", "Rice"},
	{"chips", "Snacks"}, {"crackers", "Snacks"}, {"popcorn", "Snacks"}, {"pretzel", "Snacks"},
	{"cookie", "Candy & Sweets"}, {"candy", "Candy & Sweets"}, {"chocolate", "Candy & Sweets"},
	{"gummy", "Candy & Sweets"}, {"ice cream", "Candy & Sweets"}, {"sauce", "Condiments"},
	{"ketchup", "Condiments"}, {"mustard", "Condiments"}, {"mayo", "Condiments"},
	{"dressing", "Condiments"}, {"jam", "Spreads"}, {"jelly", "Spreads"},
	{"peanut butter", "Spreads"}, {"nutella", "Spreads"}, {"honey", "Spreads"},
	{"soup", "Canned Soup"}, {"beans", "Beans & Legumes"}, {"nuts", "Nuts & Seeds"},
	{"seeds", "Nuts & Seeds"}, {"almonds", "Nuts & Seeds"}, {"cashews", "Nuts & Seeds"},
	{"peanuts", "Nuts & Seeds"},

	{"cleaner", "Surface Cleaner"}, {"all-purpose", "All-purpose cleaner"},
	{"multi-surface", "Surface Cleaner"}, {"laundry", "Laundry Detergent"},
	{"detergent", "Laundry Detergent"}, {"dish soap", "Dish Soap"},
	{"dishwashing", "Dish Soap"}, {"disinfectant", "Disinfectant"},
	{"sanitizer", "Disinfectant"},
}

var validSubCategories = map[string]bool{
	"Shampoo": true, "Body Wash": true, "Body Lotion": true, "Lotion": true,
	"Face Makeup": true, "Eye Makeup": true, "Lip Makeup": true, "Nail Products": true,
	"Hair Care": true, "Skin Care": true, "Face Care": true, "Face Wash": true,
	"Sunscreen": true, "Deodorant": true, "Oral Care": true, "Baby Care": true,
	"Personal Care - Other": true,

	"Food": true, "Food - Other": true, "Beverages": true, "Snacks": true,
	"Breakfast Cereal": true, "Candy & Sweets": true, "Dairy": true, "Condiments": true,
	"Spreads": true, "Bread": true, "Nuts & Seeds": true, "Beans & Legumes": true,
	"Spices & Seasonings": true, "Rice": true, "Pasta": true, "Canned Vegetables": true,
	"Canned Soup": true, "Frozen Vegetables": true,

	"Surface Cleaner": true, "All-purpose cleaner": true, "Laundry Detergent": true,
	"Dish Soap": true, "Disinfectant": true,

	"Other": true,
}

// ValidSubCategory reports whether s is one of the curated sub-categories.
func ValidSubCategory(s string) bool { return validSubCategories[s] }

// ClassifySubCategory picks a sub-category from the source's own category
// list, then from keywords in the product name, then from the top-level
// category.
func ClassifySubCategory(info ProductInfo) string {
	var table []mapping
	switch info.Source {
	case store.SourceOpenFoodFacts:
		table = offFoodMappings
	case store.SourceOpenBeautyFacts:
		table = obfBeautyMappings
	}
	if table != nil && strings.TrimSpace(info.SourceCategory) != "" {
		for _, cat := range strings.Split(strings.ToLower(info.SourceCategory), ",") {
			if sub, ok := matchCategory(table, cleanCategory(cat)); ok {
				return sub
			}
		}
	}

	if name := strings.ToLower(info.Name); name != "" {
		for _, m := range nameKeywordMappings {
			if strings.Contains(name, m.key) {
				return m.value
			}
		}
	}

	switch info.Category {
	case CategoryPersonalCare:
		return "Personal Care - Other"
	case CategoryFood:
		return "Food - Other"
	case CategoryHomeCleaning:
		return "Surface Cleaner"
	}
	return "Other"
}

// cleanCategory drops a language prefix ("en:") and surrounding space.
func cleanCategory(cat string) string {
	cat = strings.TrimSpace(cat)
	if i := strings.IndexByte(cat, ':'); i >= 0 && i <= 3 {
		cat = cat[i+1:]
	}
	return cat
}

func matchCategory(table []mapping, cat string) (string, bool) {
	if cat == "" {
		return "", false
	}
	for _, m := range table {
		if m.key == cat {
			return m.value, true
		}
	}
	for _, m := range table {
		if strings.Contains(cat, m.key) || strings.Contains(m.key, cat) {
			return m.value, true
		}
	}
	return "", false
}

package grocery

import "strings"

// Category 超市分區
type Category string

const (
	CategoryProduce Category = "Produce"
	CategoryMeat    Category = "Meat"
	CategoryDairy   Category = "Dairy"
	CategoryPantry  Category = "Pantry"
	CategoryFrozen  Category = "Frozen"
	CategoryBakery  Category = "Bakery"
	CategoryOther   Category = "Other"
)

// categoryEntry 一個分區及其關鍵字
type categoryEntry struct {
	category Category
	keywords []string
}

// categoryKeywords 依「比對優先順序」排列的分區關鍵字表
// 順序很重要：先比對較特定的分區以化解模糊案例，
// 例如 "corn tortillas" 要落在 Bakery 而不是 Produce
var categoryKeywords = []categoryEntry{
	{CategoryBakery, []string{
		"bread", "tortilla", "tortillas", "bagel", "muffin", "roll", "bun",
		"pita", "naan",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "turkey", "sausage", "bacon", "ham",
		"lamb", "steak", "ground beef", "fish", "salmon", "tuna", "tilapia",
		"cod", "mahi-mahi", "shrimp", "seafood",
	}},
	{CategoryDairy, []string{
		"milk", "cream", "cheese", "cheddar", "mozzarella", "parmesan",
		"feta", "yogurt", "butter", "egg", "sour cream", "cottage cheese",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "frozen vegetables", "frozen fruit",
		"popsicle",
	}},
	{CategoryPantry, []string{
		"oil", "olive oil", "vegetable oil", "vinegar", "flour", "sugar",
		"salt", "black pepper", "white pepper", "cayenne pepper",
		"red pepper flakes", "spice", "seasoning", "rice", "pasta", "quinoa",
		"oats", "cereal", "can", "canned", "beans", "black beans",
		"chickpeas", "stock", "broth", "sauce", "salsa", "hot sauce",
		"honey", "maple syrup", "peanut butter", "cumin", "paprika",
		"chili powder", "garlic powder", "mustard", "ketchup", "mayo",
		"mayonnaise", "soy sauce", "balsamic", "dijon",
	}},
	{CategoryProduce, []string{
		"lettuce", "spinach", "arugula", "greens", "salad", "tomato",
		"cucumber", "onion", "garlic", "bell pepper", "carrot", "celery",
		"broccoli", "cauliflower", "cabbage", "potato", "sweet potato",
		"avocado", "lime", "lemon", "apple", "banana", "berry", "berries",
		"fruit", "cilantro", "parsley", "basil", "herb", "kale", "zucchini",
		"squash", "mushroom", "pea",
	}},
}

// DisplayOrder 購物清單輸出時的分區順序
var DisplayOrder = []Category{
	CategoryProduce, CategoryMeat, CategoryDairy, CategoryPantry,
	CategoryFrozen, CategoryBakery, CategoryOther,
}

// Categorize 依關鍵字比對將食材歸入超市分區
// 按固定的優先順序逐一檢查，名稱包含關鍵字（不分大小寫）即命中，
// 全部未命中時回傳 Other
func Categorize(name string) Category {
	lower := strings.ToLower(name)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}

	return CategoryOther
}

package suggest

import "context"

// SuggestionRequest 一次餐點建議所需的完整脈絡
type SuggestionRequest struct {
	MealType            string   // breakfast、lunch、dinner
	DietaryRestrictions string   // 使用者飲食限制
	FoodPreferences     string   // 使用者偏好
	Weeknight           bool     // 平日或週末
	MaxPrepMinutes      int      // 備餐時間上限
	RecentlyUsed        []string // 近期用過的餐點名稱，提示避開
}

// SuggestionSource 餐點建議來源
// 以注入的能力呈現：呼叫端拿到 nil 或呼叫失敗時退回決定性選擇，
// 不另外暴露可用性旗標
type SuggestionSource interface {
	SuggestMeal(ctx context.Context, req SuggestionRequest) (string, error)
}

// CuisineClassifier 菜系分類能力，供多樣性評分使用
type CuisineClassifier interface {
	ClassifyCuisine(ctx context.Context, recipeTitle string) (string, error)
}

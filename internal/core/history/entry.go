package history

import (
	"time"

	"meal-planner/internal/core/plan"
)

// 歷史記錄的預設存活天數與檔案格式版本
const (
	DefaultTTLDays = 30
	EntryVersion   = "1.0"
)

// MealRecord 歷史中一餐的關鍵資訊
type MealRecord struct {
	Title    string `json:"title"`
	Filename string `json:"filename,omitempty"`
	Category string `json:"category,omitempty"`
	Cuisine  string `json:"cuisine,omitempty"`
}

// Entry 一週計劃的歷史記錄
type Entry struct {
	Version     string                           `json:"version"`
	CreatedAt   time.Time                        `json:"created_at"`
	TTLDays     int                              `json:"ttl_days"`
	ExpiresAt   time.Time                        `json:"expires_at"`
	WeekStart   string                           `json:"week_start"`
	WeekEnd     string                           `json:"week_end"`
	ProfileName string                           `json:"profile_name"`
	Meals       map[string]map[string]MealRecord `json:"meals"`
}

// Expired 此記錄是否已過期
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// NewEntry 從計劃建立歷史記錄
func NewEntry(p *plan.Plan, ttlDays int, now time.Time) *Entry {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}

	entry := &Entry{
		Version:     EntryVersion,
		CreatedAt:   now,
		TTLDays:     ttlDays,
		ExpiresAt:   now.AddDate(0, 0, ttlDays),
		WeekStart:   p.WeekStart,
		WeekEnd:     p.WeekEnd,
		ProfileName: p.ProfileName,
		Meals:       make(map[string]map[string]MealRecord),
	}

	for _, day := range p.Days {
		records := make(map[string]MealRecord, len(day.Meals))
		for mealType, meal := range day.Meals {
			records[mealType] = MealRecord{
				Title:    meal.Title,
				Filename: meal.Filename,
				Category: meal.Category,
				Cuisine:  meal.Cuisine,
			}
		}
		entry.Meals[day.Name] = records
	}

	return entry
}

// UsedRecipe 近期用過的一道食譜及其使用脈絡
type UsedRecipe struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Category string `json:"category,omitempty"`
	Cuisine  string `json:"cuisine,omitempty"`
	Date     string `json:"date"`
	Day      string `json:"day"`
	MealType string `json:"meal_type"`
}

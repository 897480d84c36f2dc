package plan

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/core/suggest"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// DayNames 一週的天數，固定從 Monday 起算
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// MealTypes 每天的餐別，依排程順序
var MealTypes = []string{"breakfast", "lunch", "dinner"}

// Meal 計劃中的一餐
type Meal struct {
	Title     string `json:"title"`
	Filename  string `json:"filename,omitempty"`
	Category  string `json:"category,omitempty"`
	Cuisine   string `json:"cuisine,omitempty"`
	PrepTime  string `json:"prep_time,omitempty"`
	CookTime  string `json:"cook_time,omitempty"`
	TotalTime string `json:"total_time,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Placeholder 此餐是否為找不到食譜的佔位項目
func (m *Meal) Placeholder() bool {
	return m == nil || strings.HasPrefix(m.Title, "No ")
}

// Day 一天的餐食
type Day struct {
	Name  string           `json:"name"`
	Meals map[string]*Meal `json:"meals"`
}

// Plan 一週的餐食計劃
type Plan struct {
	ProfileName string `json:"profile_name"`
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	Days        []Day  `json:"days"`
}

// Planner 餐食計劃產生器
type Planner struct {
	source suggest.SuggestionSource // 可為 nil，缺席時純決定性選擇
}

// NewPlanner 創建計劃產生器
func NewPlanner(source suggest.SuggestionSource) *Planner {
	return &Planner{source: source}
}

var firstNumberPattern = regexp.MustCompile(`(\d+)`)

// suitable 檢查食譜是否適合在這一天使用
// 目前只看時間：Total Time 超過當日上限即不合格，
// 沒有時間資訊的食譜視為符合平日限制
func suitable(doc *recipe.Document, weeknight bool, cons *Constraints) bool {
	maxTime := cons.Time.MaxWeekendPrepMinutes
	if weeknight {
		maxTime = cons.Time.MaxWeeknightPrepMinutes
	}

	totalTime := doc.Field("Total Time", fmt.Sprintf("%d minutes", cons.Time.MaxWeeknightPrepMinutes))
	if m := firstNumberPattern.FindStringSubmatch(totalTime); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil && minutes > maxTime {
			return false
		}
	}
	return true
}

// Generate 產生一週的餐食計劃
// 逐日逐餐挑選第一個符合條件的食譜：餐別分類要對、時間要夠、
// 近期沒用過；都不符合時放入佔位項目，
// 並在建議來源可用時附上一個餐點構想
func (p *Planner) Generate(ctx context.Context, profile *Profile, recipes []*recipe.Document, cons *Constraints) (*Plan, error) {
	if len(recipes) == 0 {
		return nil, common.ErrNoRecipesAvailable
	}

	startDate, err := time.Parse("2006-01-02", cons.Week.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid week start date %q", common.ErrInvalidConstraints, cons.Week.StartDate)
	}
	endDate, err := time.Parse("2006-01-02", cons.Week.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid week end date %q", common.ErrInvalidConstraints, cons.Week.EndDate)
	}

	common.LogInfo("開始產生餐食計劃",
		zap.String("profile", profile.Name),
		zap.String("week_start", cons.Week.StartDate),
		zap.Int("recipes", len(recipes)),
	)

	plan := &Plan{
		ProfileName: profile.Name,
		WeekStart:   startDate.Format("2006-01-02"),
		WeekEnd:     endDate.Format("2006-01-02"),
	}

	// 近期用過的食譜，避免短期重複
	var recentlyUsed []string
	maxRecentlyUsed := cons.Variety.MinDaysBetweenRepeats
	if maxRecentlyUsed <= 0 {
		maxRecentlyUsed = 3
	}

	currentDate := startDate
	for _, dayName := range DayNames {
		weeknight := currentDate.Weekday() >= time.Monday && currentDate.Weekday() <= time.Friday
		day := Day{Name: dayName, Meals: make(map[string]*Meal)}

		for _, mealType := range MealTypes {
			if cons.MealsPerDay[mealType] <= 0 {
				continue
			}

			chosen := pickRecipe(recipes, mealType, weeknight, cons, recentlyUsed)
			if chosen != nil {
				day.Meals[mealType] = mealFromDocument(chosen)

				recentlyUsed = append(recentlyUsed, chosen.Filename)
				if len(recentlyUsed) > maxRecentlyUsed {
					recentlyUsed = recentlyUsed[1:]
				}
				continue
			}

			// 沒有合適的食譜：放佔位項目，建議來源可用時附上構想
			placeholder := &Meal{
				Title: fmt.Sprintf("No %s recipe available", mealType),
				Note:  "Consider adding more recipes to the database",
			}
			if p.source != nil {
				maxTime := cons.Time.MaxWeekendPrepMinutes
				if weeknight {
					maxTime = cons.Time.MaxWeeknightPrepMinutes
				}
				idea, err := p.source.SuggestMeal(ctx, suggest.SuggestionRequest{
					MealType:            mealType,
					DietaryRestrictions: profile.DietaryRestrictions,
					FoodPreferences:     profile.FoodPreferences,
					Weeknight:           weeknight,
					MaxPrepMinutes:      maxTime,
					RecentlyUsed:        recentlyUsed,
				})
				if err != nil {
					common.LogWarn("餐點建議失敗，使用預設佔位",
						zap.String("meal_type", mealType),
						zap.Error(err),
					)
				} else {
					placeholder.Note = fmt.Sprintf("Suggested idea: %s", idea)
				}
			}
			day.Meals[mealType] = placeholder
		}

		plan.Days = append(plan.Days, day)
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	common.LogInfo("餐食計劃產生完成",
		zap.String("profile", profile.Name),
	)
	return plan, nil
}

// pickRecipe 找出第一個符合條件的食譜
func pickRecipe(recipes []*recipe.Document, mealType string, weeknight bool, cons *Constraints, recentlyUsed []string) *recipe.Document {
	for _, doc := range recipes {
		if !strings.EqualFold(doc.Field("Category", ""), mealType) {
			continue
		}
		if !suitable(doc, weeknight, cons) {
			continue
		}
		if contains(recentlyUsed, doc.Filename) {
			continue
		}
		return doc
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// mealFromDocument 從食譜文件摘出計劃所需的欄位
func mealFromDocument(doc *recipe.Document) *Meal {
	return &Meal{
		Title:     doc.Title,
		Filename:  doc.Filename,
		Category:  doc.Field("Category", ""),
		Cuisine:   doc.Field("Cuisine", ""),
		PrepTime:  doc.Field("Prep Time", ""),
		CookTime:  doc.Field("Cook Time", ""),
		TotalTime: doc.Field("Total Time", ""),
	}
}

// RenderMarkdown 將計劃渲染為 Markdown 文件
func (p *Plan) RenderMarkdown(now time.Time) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# Weekly Meal Plan for %s", p.ProfileName))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("**Week of %s to %s**", p.WeekStart, p.WeekEnd))
	lines = append(lines, "")
	lines = append(lines, "---")
	lines = append(lines, "")

	for _, day := range p.Days {
		lines = append(lines, fmt.Sprintf("## %s", day.Name))
		lines = append(lines, "")

		for _, mealType := range MealTypes {
			meal, ok := day.Meals[mealType]
			if !ok {
				continue
			}

			lines = append(lines, fmt.Sprintf("### %s", titleCase(mealType)))
			lines = append(lines, "")
			lines = append(lines, fmt.Sprintf("**%s**", meal.Title))

			if meal.PrepTime != "" {
				lines = append(lines, fmt.Sprintf("- Prep Time: %s", meal.PrepTime))
			}
			if meal.CookTime != "" {
				lines = append(lines, fmt.Sprintf("- Cook Time: %s", meal.CookTime))
			}
			if meal.TotalTime != "" {
				lines = append(lines, fmt.Sprintf("- Total Time: %s", meal.TotalTime))
			}
			if meal.Note != "" {
				lines = append(lines, fmt.Sprintf("- *Note: %s*", meal.Note))
			}

			lines = append(lines, "")
		}

		lines = append(lines, "---")
		lines = append(lines, "")
	}

	lines = append(lines, "## Plan Information")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("- Generated on: %s", now.Format("2006-01-02 15:04:05")))
	lines = append(lines, "- Generated by: meal-planner")
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// Filename 計劃文件的標準檔名
func (p *Plan) Filename() string {
	return fmt.Sprintf("meal_plan_%s.md", p.WeekStart)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

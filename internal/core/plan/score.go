package plan

import (
	"context"
	"fmt"
	"strings"

	"meal-planner/internal/core/suggest"
)

// 多樣性評分的權重
const (
	cuisineVarietyWeight      = 10 // 每種不同菜系
	recipeDiversityWeight     = 15 // 每道不同食譜
	noConsecutiveRepeatsBonus = 20 // 整週無重複的加分
)

// 違規的扣分值
const (
	recipeRepetitionPenalty       = -10 // 近期重複使用食譜
	consecutiveSameCuisinePenalty = -5  // 連續兩天同菜系
	missingMealPenalty            = -50 // 缺少必要的一餐
	constraintViolationPenalty    = -20 // 一般約束違規
)

// CuisineVariety 菜系多樣性分數明細
type CuisineVariety struct {
	Total                int `json:"total"`
	VarietyPoints        int `json:"variety_points"`
	PenaltyPoints        int `json:"penalty_points"`
	UniqueCuisines       int `json:"unique_cuisines"`
	TotalCuisines        int `json:"total_cuisines"`
	ConsecutivePenalties int `json:"consecutive_penalties"`
}

// RecipeDiversity 食譜多樣性分數明細
type RecipeDiversity struct {
	Total           int `json:"total"`
	DiversityPoints int `json:"diversity_points"`
	NoRepeatsBonus  int `json:"no_repeats_bonus"`
	UniqueRecipes   int `json:"unique_recipes"`
	TotalMeals      int `json:"total_meals"`
	RepetitionCount int `json:"repetition_count"`
}

// RepetitionViolation 一筆重複使用違規
type RepetitionViolation struct {
	Day      string `json:"day"`
	MealType string `json:"meal_type"`
	Recipe   string `json:"recipe"`
	Filename string `json:"filename"`
}

// RepetitionPenalties 重複使用扣分明細
type RepetitionPenalties struct {
	Total           int                   `json:"total"`
	ViolationCount  int                   `json:"violation_count"`
	Violations      []RepetitionViolation `json:"violations,omitempty"`
	MinDaysRequired int                   `json:"min_days_required"`
}

// ConstraintViolation 一筆約束違規
type ConstraintViolation struct {
	Type     string `json:"type"`
	Day      string `json:"day,omitempty"`
	MealType string `json:"meal_type,omitempty"`
	Expected int    `json:"expected,omitempty"`
	Actual   int    `json:"actual,omitempty"`
}

// ConstraintPenalties 約束違規扣分明細
type ConstraintPenalties struct {
	Total             int                   `json:"total"`
	MissingMeals      int                   `json:"missing_meals"`
	VarietyViolations int                   `json:"variety_violations"`
	Violations        []ConstraintViolation `json:"violations,omitempty"`
}

// Score 計劃品質總評
type Score struct {
	TotalScore          int                 `json:"total_score"`
	Grade               string              `json:"grade"`
	CuisineVariety      CuisineVariety      `json:"cuisine_variety"`
	RecipeDiversity     RecipeDiversity     `json:"recipe_diversity"`
	RepetitionPenalties RepetitionPenalties `json:"repetition_penalties"`
	ConstraintPenalties ConstraintPenalties `json:"constraint_penalties"`
}

// Scorer 多樣性評分器
// classifier 可為 nil，沒有它時未知菜系一律視為 Unknown
type Scorer struct {
	classifier suggest.CuisineClassifier
}

// NewScorer 創建評分器
func NewScorer(classifier suggest.CuisineClassifier) *Scorer {
	return &Scorer{classifier: classifier}
}

// Evaluate 計算計劃的完整多樣性分數
// 分數越高代表多樣性與約束符合度越好
func (s *Scorer) Evaluate(ctx context.Context, plan *Plan, cons *Constraints, recentlyUsed []string) *Score {
	score := &Score{
		CuisineVariety:      s.cuisineVariety(ctx, plan),
		RecipeDiversity:     recipeDiversity(plan),
		RepetitionPenalties: repetitionPenalties(plan, cons, recentlyUsed),
		ConstraintPenalties: constraintPenalties(plan, cons),
	}

	score.TotalScore = score.CuisineVariety.Total +
		score.RecipeDiversity.Total +
		score.RepetitionPenalties.Total +
		score.ConstraintPenalties.Total
	score.Grade = gradeFor(score.TotalScore)

	return score
}

func gradeFor(total int) string {
	switch {
	case total >= 200:
		return "A+"
	case total >= 150:
		return "A"
	case total >= 100:
		return "B"
	case total >= 50:
		return "C"
	case total >= 0:
		return "D"
	default:
		return "F"
	}
}

// cuisineVariety 菜系多樣性：不同菜系加分，連續兩天同菜系扣分
// 菜系未知且有分類器時嘗試分類，失敗靜默降級為 Unknown
func (s *Scorer) cuisineVariety(ctx context.Context, plan *Plan) CuisineVariety {
	var cuisines []string
	unique := make(map[string]struct{})
	consecutivePenalties := 0
	prevDayCuisines := make(map[string]struct{})

	for _, day := range plan.Days {
		dayCuisines := make(map[string]struct{})

		for _, mealType := range MealTypes {
			meal, ok := day.Meals[mealType]
			if !ok {
				continue
			}

			cuisine := s.resolveCuisine(ctx, meal)
			if strings.EqualFold(cuisine, "unknown") || cuisine == "" {
				continue
			}

			cuisines = append(cuisines, cuisine)
			unique[cuisine] = struct{}{}
			dayCuisines[cuisine] = struct{}{}
		}

		if len(prevDayCuisines) > 0 && overlaps(prevDayCuisines, dayCuisines) {
			consecutivePenalties++
		}
		prevDayCuisines = dayCuisines
	}

	varietyPoints := len(unique) * cuisineVarietyWeight
	penaltyPoints := consecutivePenalties * consecutiveSameCuisinePenalty

	return CuisineVariety{
		Total:                varietyPoints + penaltyPoints,
		VarietyPoints:        varietyPoints,
		PenaltyPoints:        penaltyPoints,
		UniqueCuisines:       len(unique),
		TotalCuisines:        len(cuisines),
		ConsecutivePenalties: consecutivePenalties,
	}
}

// resolveCuisine 取得一餐的菜系，必要時透過分類器補判
func (s *Scorer) resolveCuisine(ctx context.Context, meal *Meal) string {
	cuisine := strings.TrimSpace(meal.Cuisine)
	if cuisine != "" && !strings.EqualFold(cuisine, "unknown") {
		return cuisine
	}

	// 佔位項目不做分類
	if meal.Placeholder() || s.classifier == nil {
		return "Unknown"
	}

	classified, err := s.classifier.ClassifyCuisine(ctx, meal.Title)
	if err != nil || classified == "" {
		return "Unknown"
	}
	return classified
}

func overlaps(a, b map[string]struct{}) bool {
	for key := range a {
		if _, ok := b[key]; ok {
			return true
		}
	}
	return false
}

// recipeDiversity 食譜多樣性：不同食譜加分，整週無重複再加分
func recipeDiversity(plan *Plan) RecipeDiversity {
	var titles []string
	unique := make(map[string]struct{})

	for _, day := range plan.Days {
		for _, mealType := range MealTypes {
			meal, ok := day.Meals[mealType]
			if !ok || meal.Placeholder() {
				continue
			}
			titles = append(titles, meal.Title)
			unique[meal.Title] = struct{}{}
		}
	}

	diversityPoints := len(unique) * recipeDiversityWeight
	noRepeatsBonus := 0
	if len(unique) == len(titles) && len(titles) > 0 {
		noRepeatsBonus = noConsecutiveRepeatsBonus
	}

	return RecipeDiversity{
		Total:           diversityPoints + noRepeatsBonus,
		DiversityPoints: diversityPoints,
		NoRepeatsBonus:  noRepeatsBonus,
		UniqueRecipes:   len(unique),
		TotalMeals:      len(titles),
		RepetitionCount: len(titles) - len(unique),
	}
}

// repetitionPenalties 重複使用扣分：計劃中用到近期已用過的食譜
func repetitionPenalties(plan *Plan, cons *Constraints, recentlyUsed []string) RepetitionPenalties {
	minDays := cons.Variety.MinDaysBetweenRepeats
	if minDays <= 0 {
		minDays = 3
	}

	recent := make(map[string]struct{}, len(recentlyUsed))
	for _, filename := range recentlyUsed {
		recent[filename] = struct{}{}
	}

	var violations []RepetitionViolation
	for _, day := range plan.Days {
		for _, mealType := range MealTypes {
			meal, ok := day.Meals[mealType]
			if !ok || meal.Filename == "" {
				continue
			}
			if _, used := recent[meal.Filename]; used {
				violations = append(violations, RepetitionViolation{
					Day:      day.Name,
					MealType: mealType,
					Recipe:   meal.Title,
					Filename: meal.Filename,
				})
			}
		}
	}

	return RepetitionPenalties{
		Total:           len(violations) * recipeRepetitionPenalty,
		ViolationCount:  len(violations),
		Violations:      violations,
		MinDaysRequired: minDays,
	}
}

// constraintPenalties 約束違規扣分：缺餐與菜系數量不足
func constraintPenalties(plan *Plan, cons *Constraints) ConstraintPenalties {
	var violations []ConstraintViolation
	missingMeals := 0
	varietyViolations := 0

	for _, day := range plan.Days {
		for _, mealType := range MealTypes {
			if cons.MealsPerDay[mealType] <= 0 {
				continue
			}
			meal := day.Meals[mealType]
			if meal.Placeholder() {
				missingMeals++
				violations = append(violations, ConstraintViolation{
					Type:     "missing_meal",
					Day:      day.Name,
					MealType: mealType,
				})
			}
		}
	}

	if min := cons.Variety.MinUniqueCuisines; min > 0 {
		cuisines := make(map[string]struct{})
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				cuisine := strings.TrimSpace(meal.Cuisine)
				if cuisine != "" && !strings.EqualFold(cuisine, "unknown") {
					cuisines[cuisine] = struct{}{}
				}
			}
		}

		if len(cuisines) < min {
			varietyViolations++
			violations = append(violations, ConstraintViolation{
				Type:     "insufficient_cuisine_variety",
				Expected: min,
				Actual:   len(cuisines),
			})
		}
	}

	return ConstraintPenalties{
		Total:             missingMeals*missingMealPenalty + varietyViolations*constraintViolationPenalty,
		MissingMeals:      missingMeals,
		VarietyViolations: varietyViolations,
		Violations:        violations,
	}
}

// FormatScoreSummary 將分數渲染為計劃內嵌的 Markdown 摘要
func FormatScoreSummary(score *Score) string {
	var lines []string

	lines = append(lines, "## Meal Plan Quality Score")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("**Overall Score**: %d (%s)", score.TotalScore, score.Grade))
	lines = append(lines, "")

	cuisine := score.CuisineVariety
	lines = append(lines, "### Cuisine Variety")
	lines = append(lines, fmt.Sprintf("- Unique cuisines: %d", cuisine.UniqueCuisines))
	lines = append(lines, fmt.Sprintf("- Variety points: +%d", cuisine.VarietyPoints))
	if cuisine.ConsecutivePenalties > 0 {
		lines = append(lines, fmt.Sprintf("- Consecutive cuisine penalties: %d", cuisine.PenaltyPoints))
	}
	lines = append(lines, fmt.Sprintf("- **Subtotal**: %d", cuisine.Total))
	lines = append(lines, "")

	diversity := score.RecipeDiversity
	lines = append(lines, "### Recipe Diversity")
	lines = append(lines, fmt.Sprintf("- Unique recipes: %d / %d", diversity.UniqueRecipes, diversity.TotalMeals))
	lines = append(lines, fmt.Sprintf("- Diversity points: +%d", diversity.DiversityPoints))
	if diversity.NoRepeatsBonus > 0 {
		lines = append(lines, fmt.Sprintf("- No repeats bonus: +%d", diversity.NoRepeatsBonus))
	}
	lines = append(lines, fmt.Sprintf("- **Subtotal**: %d", diversity.Total))
	lines = append(lines, "")

	if rep := score.RepetitionPenalties; rep.ViolationCount > 0 {
		lines = append(lines, "### Repetition Penalties")
		lines = append(lines, fmt.Sprintf("- Violations: %d", rep.ViolationCount))
		lines = append(lines, fmt.Sprintf("- Minimum days required: %d", rep.MinDaysRequired))
		for _, v := range rep.Violations {
			lines = append(lines, fmt.Sprintf("  - %s %s: %s", v.Day, v.MealType, v.Recipe))
		}
		lines = append(lines, fmt.Sprintf("- **Subtotal**: %d", rep.Total))
		lines = append(lines, "")
	}

	if cons := score.ConstraintPenalties; cons.MissingMeals > 0 || cons.VarietyViolations > 0 {
		lines = append(lines, "### Constraint Violations")

		if cons.MissingMeals > 0 {
			lines = append(lines, fmt.Sprintf("- Missing meals: %d", cons.MissingMeals))
			for _, v := range cons.Violations {
				if v.Type == "missing_meal" {
					lines = append(lines, fmt.Sprintf("  - %s %s", v.Day, v.MealType))
				}
			}
		}

		if cons.VarietyViolations > 0 {
			lines = append(lines, fmt.Sprintf("- Variety violations: %d", cons.VarietyViolations))
			for _, v := range cons.Violations {
				if v.Type == "insufficient_cuisine_variety" {
					lines = append(lines, fmt.Sprintf("  - Insufficient cuisine variety: %d < %d required", v.Actual, v.Expected))
				}
			}
		}

		lines = append(lines, fmt.Sprintf("- **Subtotal**: %d", cons.Total))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

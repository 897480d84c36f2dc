package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meal(title, filename, cuisine string) *Meal {
	return &Meal{Title: title, Filename: filename, Cuisine: cuisine}
}

func twoDayPlan() *Plan {
	return &Plan{
		ProfileName: "Test",
		Days: []Day{
			{Name: "Monday", Meals: map[string]*Meal{
				"breakfast": meal("Veggie Omelet", "veggie-omelet.md", "American"),
				"dinner":    meal("Fish Tacos", "fish-tacos.md", "Mexican"),
			}},
			{Name: "Tuesday", Meals: map[string]*Meal{
				"breakfast": meal("Breakfast Burritos", "breakfast-burritos.md", "Mexican"),
				"dinner":    meal("Pasta Primavera", "pasta-primavera.md", "Italian"),
			}},
		},
	}
}

func scoreConstraints() *Constraints {
	cons := &Constraints{}
	cons.MealsPerDay = map[string]int{"breakfast": 1, "dinner": 1}
	cons.Variety.MinDaysBetweenRepeats = 3
	return cons
}

func TestEvaluate(t *testing.T) {
	score := NewScorer(nil).Evaluate(context.Background(), twoDayPlan(), scoreConstraints(), nil)

	// 三種菜系 ×10，連續兩天都有 Mexican −5
	assert.Equal(t, 3, score.CuisineVariety.UniqueCuisines)
	assert.Equal(t, 1, score.CuisineVariety.ConsecutivePenalties)
	assert.Equal(t, 25, score.CuisineVariety.Total)

	// 四道不同食譜 ×15，無重複 +20
	assert.Equal(t, 4, score.RecipeDiversity.UniqueRecipes)
	assert.Equal(t, 20, score.RecipeDiversity.NoRepeatsBonus)
	assert.Equal(t, 80, score.RecipeDiversity.Total)

	assert.Zero(t, score.RepetitionPenalties.Total)
	assert.Zero(t, score.ConstraintPenalties.Total)

	assert.Equal(t, 105, score.TotalScore)
	assert.Equal(t, "B", score.Grade)
}

func TestEvaluateRepetitionPenalty(t *testing.T) {
	score := NewScorer(nil).Evaluate(
		context.Background(),
		twoDayPlan(),
		scoreConstraints(),
		[]string{"fish-tacos.md"},
	)

	require.Equal(t, 1, score.RepetitionPenalties.ViolationCount)
	assert.Equal(t, -10, score.RepetitionPenalties.Total)
	assert.Equal(t, "Monday", score.RepetitionPenalties.Violations[0].Day)
	assert.Equal(t, "Fish Tacos", score.RepetitionPenalties.Violations[0].Recipe)
}

func TestEvaluateMissingMealPenalty(t *testing.T) {
	p := twoDayPlan()
	p.Days[0].Meals["breakfast"] = &Meal{
		Title: "No breakfast recipe available",
		Note:  "Consider adding more recipes to the database",
	}

	score := NewScorer(nil).Evaluate(context.Background(), p, scoreConstraints(), nil)

	assert.Equal(t, 1, score.ConstraintPenalties.MissingMeals)
	assert.Equal(t, -50, score.ConstraintPenalties.Total)
}

func TestEvaluateInsufficientCuisineVariety(t *testing.T) {
	cons := scoreConstraints()
	cons.Variety.MinUniqueCuisines = 5

	score := NewScorer(nil).Evaluate(context.Background(), twoDayPlan(), cons, nil)

	assert.Equal(t, 1, score.ConstraintPenalties.VarietyViolations)
	require.NotEmpty(t, score.ConstraintPenalties.Violations)
	v := score.ConstraintPenalties.Violations[0]
	assert.Equal(t, "insufficient_cuisine_variety", v.Type)
	assert.Equal(t, 5, v.Expected)
	assert.Equal(t, 3, v.Actual)
}

type fakeClassifier struct {
	cuisine string
	err     error
}

func (f *fakeClassifier) ClassifyCuisine(ctx context.Context, title string) (string, error) {
	return f.cuisine, f.err
}

func TestEvaluateClassifierFillsUnknownCuisine(t *testing.T) {
	p := twoDayPlan()
	p.Days[0].Meals["breakfast"].Cuisine = ""

	score := NewScorer(&fakeClassifier{cuisine: "American"}).
		Evaluate(context.Background(), p, scoreConstraints(), nil)
	assert.Equal(t, 3, score.CuisineVariety.UniqueCuisines)

	// 分類失敗時靜默降級為 Unknown，不列入多樣性
	score = NewScorer(&fakeClassifier{err: fmt.Errorf("api down")}).
		Evaluate(context.Background(), p, scoreConstraints(), nil)
	assert.Equal(t, 2, score.CuisineVariety.UniqueCuisines)
	assert.Equal(t, 3, score.CuisineVariety.TotalCuisines)
}

func TestGradeThresholds(t *testing.T) {
	assert.Equal(t, "A+", gradeFor(200))
	assert.Equal(t, "A", gradeFor(150))
	assert.Equal(t, "B", gradeFor(100))
	assert.Equal(t, "C", gradeFor(50))
	assert.Equal(t, "D", gradeFor(0))
	assert.Equal(t, "F", gradeFor(-1))
}

func TestFormatScoreSummary(t *testing.T) {
	score := NewScorer(nil).Evaluate(
		context.Background(),
		twoDayPlan(),
		scoreConstraints(),
		[]string{"fish-tacos.md"},
	)

	summary := FormatScoreSummary(score)

	assert.Contains(t, summary, "## Meal Plan Quality Score")
	assert.Contains(t, summary, fmt.Sprintf("**Overall Score**: %d (%s)", score.TotalScore, score.Grade))
	assert.Contains(t, summary, "### Cuisine Variety")
	assert.Contains(t, summary, "### Recipe Diversity")
	assert.Contains(t, summary, "### Repetition Penalties")
	assert.Contains(t, summary, "Monday dinner: Fish Tacos")
}

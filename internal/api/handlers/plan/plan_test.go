package plan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historyService "meal-planner/internal/core/history"
	planService "meal-planner/internal/core/plan"
	recipeService "meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

const testConstraintsYAML = `week:
  start_date: "2026-01-19"
  end_date: "2026-01-25"

meals_per_day:
  breakfast: 1
  dinner: 1

time:
  max_weeknight_prep_minutes: 45
  max_weekend_prep_minutes: 180

variety:
  min_days_between_repeats: 3
  min_unique_cuisines: 2
`

const testProfile = `# Alex

- **Name**: Alex
- **Dietary Restrictions**: None
- **Food Preferences**: Quick meals
`

const breakfastRecipe = `# Veggie Omelet

- **Category**: Breakfast
- **Cuisine**: American
- **Total Time**: 15 minutes

## Ingredients

- 3 eggs
`

const dinnerRecipe = `# Fish Tacos

- **Category**: Dinner
- **Cuisine**: Mexican
- **Total Time**: 30 minutes

## Ingredients

- 1 lb fish
`

type testEnv struct {
	router   *gin.Engine
	plansDir string
	histDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recipesDir := t.TempDir()
	plansDir := t.TempDir()
	histDir := t.TempDir()
	constraintsDir := t.TempDir()
	profilesDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(recipesDir, "veggie-omelet.md"), []byte(breakfastRecipe), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(recipesDir, "fish-tacos.md"), []byte(dinnerRecipe), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(constraintsDir, "constraints.yaml"), []byte(testConstraintsYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(profilesDir, "alex.md"), []byte(testProfile), 0o644))

	cfg := &config.Config{}
	cfg.Planner = config.PlannerConfig{
		RecipesDir:     recipesDir,
		PlansDir:       plansDir,
		HistoryDir:     histDir,
		ConstraintsDir: constraintsDir,
		ProfilesDir:    profilesDir,
	}
	cfg.History = config.HistoryConfig{Backend: "file", TTLDays: 30}

	store := recipeService.NewFileStore(recipesDir)
	handler := NewHandler(
		store,
		planService.NewPlanner(nil),
		planService.NewScorer(nil),
		historyService.NewFileStore(histDir),
		cfg,
	)

	router := gin.New()
	router.POST("/api/v1/plan/generate", handler.HandleGenerate)
	router.POST("/api/v1/plan/score", handler.HandleScore)

	return &testEnv{router: router, plansDir: plansDir, histDir: histDir}
}

func (e *testEnv) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	env := newTestEnv(t)

	w := env.post("/api/v1/plan/generate", `{"profile": "alex"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GenerateResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))

	assert.Equal(t, "Alex", resp.Plan.ProfileName)
	assert.Equal(t, "meal_plan_2026-01-19.md", resp.Filename)
	assert.Contains(t, resp.Markdown, "# Weekly Meal Plan for Alex")
	assert.Contains(t, resp.Markdown, "**Fish Tacos**")
	assert.NotNil(t, resp.Score)
	assert.Contains(t, resp.ScoreSummary, resp.Score.Grade)

	// 計劃檔與歷史記錄都已落地
	_, err := os.Stat(filepath.Join(env.plansDir, resp.Filename))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.histDir, "history_2026-01-19.json"))
	require.NoError(t, err)
}

func TestHandleGenerateProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.post("/api/v1/plan/generate", `{"profile": "nobody"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Equal(t, "PROFILE_NOT_FOUND", resp.Code)
}

func TestHandleGenerateBadConstraints(t *testing.T) {
	env := newTestEnv(t)

	w := env.post("/api/v1/plan/generate", `{"profile": "alex", "constraints": "missing.yaml"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONSTRAINTS", resp.Code)
}

func TestHandleGenerateInvalidRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.post("/api/v1/plan/generate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleScore(t *testing.T) {
	env := newTestEnv(t)

	plan := &planService.Plan{
		ProfileName: "Alex",
		WeekStart:   "2026-01-19",
		WeekEnd:     "2026-01-25",
		Days: []planService.Day{
			{
				Name: "Monday",
				Meals: map[string]*planService.Meal{
					"breakfast": {Title: "Veggie Omelet", Filename: "veggie-omelet.md", Cuisine: "American"},
					"dinner":    {Title: "Fish Tacos", Filename: "fish-tacos.md", Cuisine: "Mexican"},
				},
			},
		},
	}
	body, err := json.Marshal(ScoreRequest{Plan: plan})
	require.NoError(t, err)

	w := env.post("/api/v1/plan/score", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScoreResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Score)
	assert.NotEmpty(t, resp.Score.Grade)
	assert.Contains(t, resp.Summary, "Meal Plan Quality Score")
}

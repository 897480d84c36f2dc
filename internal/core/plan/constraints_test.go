package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConstraintsYAML = `week:
  start_date: "2026-01-19"
  end_date: "2026-01-25"

meals_per_day:
  breakfast: 1
  lunch: 1
  dinner: 1

time:
  max_weeknight_prep_minutes: 45
  max_weekend_prep_minutes: 180

variety:
  min_days_between_repeats: 3
  min_unique_cuisines: 3
`

func TestLoadConstraints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConstraintsYAML), 0644))

	cons, err := LoadConstraints(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-19", cons.Week.StartDate)
	assert.Equal(t, 1, cons.MealsPerDay["breakfast"])
	assert.Equal(t, 45, cons.Time.MaxWeeknightPrepMinutes)
	assert.Equal(t, 180, cons.Time.MaxWeekendPrepMinutes)
	assert.Equal(t, 3, cons.Variety.MinDaysBetweenRepeats)
	assert.Equal(t, 3, cons.Variety.MinUniqueCuisines)
}

func TestLoadConstraintsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("week:\n  start_date: \"2026-01-19\"\n  end_date: \"2026-01-25\"\n"), 0644))

	cons, err := LoadConstraints(path)
	require.NoError(t, err)

	assert.Equal(t, 45, cons.Time.MaxWeeknightPrepMinutes)
	assert.Equal(t, 180, cons.Time.MaxWeekendPrepMinutes)
	assert.Equal(t, 3, cons.Variety.MinDaysBetweenRepeats)
}

func TestLoadConstraintsMissingDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meals_per_day:\n  dinner: 1\n"), 0644))

	_, err := LoadConstraints(path)
	assert.Error(t, err)
}

func TestLoadConstraintsMissingFile(t *testing.T) {
	_, err := LoadConstraints(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProfileFromDocumentDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.md")
	require.NoError(t, os.WriteFile(path, []byte("# Profile\n\n- **Name**: Ashuah Patel\n- **Dietary Restrictions**: vegetarian\n"), 0644))

	profile, err := LoadProfile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Ashuah Patel", profile.Name)
	assert.Equal(t, "vegetarian", profile.DietaryRestrictions)
	assert.Equal(t, "", profile.FoodPreferences)
}

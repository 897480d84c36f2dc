package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRecipeNames(t *testing.T) {
	plan := `# Weekly Meal Plan for Ashuah Patel

**Week of 2026-01-20 to 2026-01-26**

## Monday

### Breakfast

**Breakfast Burritos**
- Prep Time: 15 minutes

### Dinner

**Fish Tacos**
- **Total Time**: 35 minutes

## Tuesday

### Breakfast

**Breakfast Burritos**

### Lunch

**No lunch recipe available**
- *Note: Consider adding more recipes to the database*
`

	names := ExtractRecipeNames(plan)

	// 去重、保序，過濾佔位與時間標記
	// week-of 行不在略過清單內，會被當作名稱抽出，
	// 下游以找不到食譜的警告略過
	assert.Equal(t, []string{
		"week-of-2026-01-20-to-2026-01-26",
		"breakfast-burritos",
		"fish-tacos",
	}, names)
}

func TestExtractRecipeNamesEmpty(t *testing.T) {
	assert.Empty(t, ExtractRecipeNames("# Plan\n\nNo bold titles here.\n"))
	assert.Empty(t, ExtractRecipeNames("**Prep Time**: 10 minutes"))
}

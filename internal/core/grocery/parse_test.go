package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected *ParsedIngredient
	}{
		{
			"數量 單位 名稱",
			"2 cups flour",
			&ParsedIngredient{Quantity: "2", Unit: "cups", Name: "flour"},
		},
		{
			"分數數量",
			"1/2 teaspoon salt",
			&ParsedIngredient{Quantity: "1/2", Unit: "teaspoon", Name: "salt"},
		},
		{
			"連字號範圍",
			"3-4 tablespoons olive oil",
			&ParsedIngredient{Quantity: "3-4", Unit: "tablespoons", Name: "olive oil"},
		},
		{
			"to 範圍",
			"1 to 2 cups broth",
			&ParsedIngredient{Quantity: "1 to 2", Unit: "cups", Name: "broth"},
		},
		{
			"計數修飾詞作為單位",
			"8 large eggs",
			&ParsedIngredient{Quantity: "8", Unit: "large", Name: "eggs"},
		},
		{
			"項目符號",
			"- 2 cups flour",
			&ParsedIngredient{Quantity: "2", Unit: "cups", Name: "flour"},
		},
		{
			"星號項目符號",
			"* 1 can black beans",
			&ParsedIngredient{Quantity: "1", Unit: "can", Name: "black beans"},
		},
		{
			"第二個 token 非單位時整段為名稱",
			"2 ripe avocados",
			&ParsedIngredient{Quantity: "2", Unit: "", Name: "ripe avocados"},
		},
		{
			"沒有數量的行",
			"Salt and pepper to taste",
			&ParsedIngredient{Quantity: "1", Unit: "", Name: "Salt"},
		},
		{
			"名稱帶括號註記",
			"1 cup onion (about 1 medium)",
			&ParsedIngredient{Quantity: "1", Unit: "cup", Name: "onion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLineSkipped(t *testing.T) {
	assert.Nil(t, ParseLine(""))
	assert.Nil(t, ParseLine("   "))
	assert.Nil(t, ParseLine("## Ingredients"))
	assert.Nil(t, ParseLine("- "))
}

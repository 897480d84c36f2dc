package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"移除括號註記", "onion (about 1/2 cup)", "onion"},
		{"移除逗號後描述", "onion, diced", "onion"},
		{"移除 thinly sliced", "cucumber, thinly sliced", "cucumber"},
		{"移除 to taste", "salt to taste", "salt"},
		{"to taste 大小寫", "salt To Taste", "salt"},
		{"and 字尾折疊為第一項", "salt and pepper", "salt"},
		{"juice of 改寫", "juice of 1 lime", "lime juice"},
		{"juice of 兩顆", "juice of 2 lemons", "lemons juice"},
		{"移除開頭修飾詞", "fresh cilantro", "cilantro"},
		{"移除 dried", "dried oregano", "oregano"},
		{"壓縮多餘空白", "olive   oil", "olive oil"},
		{"組合規則", "onion, diced (about 1/2 cup)", "onion"},
		{"清空時保留原文", "(optional)", "(optional)"},
		{"普通名稱原樣保留", "flour", "flour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanName(tt.input))
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"onion, diced (about 1/2 cup)",
		"juice of 1 lime",
		"fresh cilantro",
		"salt and pepper to taste",
		"flour",
	}

	for _, input := range inputs {
		once := CleanName(input)
		assert.Equal(t, once, CleanName(once), "input: %s", input)
	}
}

package grocery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// LineSource 供應食譜原始食材行的外部來源
// 核心只知道「給我食譜 X 的食材行」，不關心檔案路徑或文件結構
type LineSource interface {
	IngredientLines(ctx context.Context, recipe string) ([]string, error)
}

// Item 購物清單中的一個項目
type Item struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit,omitempty"`
	Quantity float64  `json:"quantity"`
	Category Category `json:"category"`
}

// Section 購物清單的一個分區
type Section struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// List 組裝完成的購物清單，回傳後不再變動
type List struct {
	Sections []Section `json:"sections"`
}

// Generator 購物清單產生器，負責串起整條解析、合併、分類管線
type Generator struct {
	source LineSource
}

// NewGenerator 創建購物清單產生器
func NewGenerator(source LineSource) *Generator {
	return &Generator{source: source}
}

// Build 從一批食譜組裝購物清單
// 找不到的食譜記錄警告後跳過，不中斷整批處理；
// 其餘取得失敗的錯誤原樣回傳給呼叫端
func (g *Generator) Build(ctx context.Context, recipes []string) (*List, error) {
	var all []ParsedIngredient

	for _, name := range recipes {
		lines, err := g.source.IngredientLines(ctx, name)
		if err != nil {
			if errors.Is(err, common.ErrRecipeNotFound) {
				common.LogWarn("找不到食譜，跳過",
					zap.String("recipe", name),
				)
				continue
			}
			return nil, fmt.Errorf("failed to load ingredients for %q: %w", name, err)
		}

		for _, line := range lines {
			if parsed := ParseLine(line); parsed != nil {
				all = append(all, *parsed)
			}
		}
	}

	merged := Merge(all)

	// 分類並分桶
	buckets := make(map[Category][]Item, len(DisplayOrder))
	for key, quantity := range merged {
		category := Categorize(key.Name)
		buckets[category] = append(buckets[category], Item{
			Name:     key.Name,
			Unit:     key.Unit,
			Quantity: quantity,
			Category: category,
		})
	}

	// 各分區內依名稱排序，名稱相同時依單位排序以維持輸出穩定
	list := &List{}
	for _, category := range DisplayOrder {
		items := buckets[category]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Name != items[j].Name {
				return items[i].Name < items[j].Name
			}
			return items[i].Unit < items[j].Unit
		})
		list.Sections = append(list.Sections, Section{
			Category: category,
			Items:    items,
		})
	}

	return list, nil
}

// Empty 清單是否沒有任何項目
func (l *List) Empty() bool {
	return len(l.Sections) == 0
}

// Markdown 將購物清單渲染為帶勾選框的 Markdown 文件
func (l *List) Markdown() string {
	if l.Empty() {
		return "# Grocery List\n\nNo ingredients found in the specified recipes.\n"
	}

	lines := []string{"# Grocery List\n"}

	for _, section := range l.Sections {
		lines = append(lines, fmt.Sprintf("## %s\n", section.Category))

		for _, item := range section.Items {
			qty := FormatQuantity(item.Quantity)
			unit := PluralizeUnit(item.Unit, item.Quantity)

			// "- [ ] 2 cups flour" 或 "- [ ] 8 eggs"（無單位）
			if unit != "" {
				lines = append(lines, fmt.Sprintf("- [ ] %s %s %s", qty, unit, item.Name))
			} else {
				lines = append(lines, fmt.Sprintf("- [ ] %s %s", qty, item.Name))
			}
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

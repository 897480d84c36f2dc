package grocery

import "strings"

// MergeKey 判定兩個食材是否為同一購物清單項目的鍵
type MergeKey struct {
	Name string // 小寫、空白壓縮後的食材名稱
	Unit string // 正規化後的單位（可為空）
}

// Merge 合併多份食譜的食材並加總數量
// 相同 (名稱, 單位) 的項目數量相加，例如 "2 cups flour" + "1 cup flour"
// 會合併為 3 cup flour；加總具交換律，輸入順序不影響結果
func Merge(ingredients []ParsedIngredient) map[MergeKey]float64 {
	merged := make(map[MergeKey]float64, len(ingredients))

	for _, ing := range ingredients {
		key := MergeKey{
			Name: strings.Join(strings.Fields(strings.ToLower(ing.Name)), " "),
			Unit: NormalizeUnit(ing.Unit),
		}
		merged[key] += ParseQuantity(ing.Quantity)
	}

	return merged
}

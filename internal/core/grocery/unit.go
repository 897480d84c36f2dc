package grocery

import "strings"

// knownUnits 行解析器使用的計量單位詞彙表
// 注意：刻意不收錄單獨的 "t"，因為太容易誤判食材名稱中的單字，
// 使用者應改用 "tsp" 或 "ts"
var knownUnits = map[string]struct{}{
	"tbsp": {}, "tbs": {}, "tb": {},
	"tsp": {}, "ts": {},
	"cup": {}, "cups": {}, "c": {},
	"oz": {}, "ounce": {}, "ounces": {},
	"lb": {}, "lbs": {}, "pound": {}, "pounds": {},
	"g": {}, "gram": {}, "grams": {},
	"kg": {}, "ml": {}, "l": {},
	"can": {}, "cans": {},
	"jar": {}, "jars": {},
	"package": {}, "packages": {},
	"box": {}, "boxes": {},
	"large": {}, "medium": {}, "small": {}, "whole": {},
	"tablespoon": {}, "tablespoons": {},
	"teaspoon": {}, "teaspoons": {},
	"clove": {}, "cloves": {},
	"count": {},
}

// unitAliases 單位縮寫對應的標準寫法
var unitAliases = map[string]string{
	"tbsp": "tablespoon", "tbs": "tablespoon", "tb": "tablespoon",
	"tablespoon": "tablespoon", "tablespoons": "tablespoon",
	"tsp": "teaspoon", "ts": "teaspoon",
	"teaspoon": "teaspoon", "teaspoons": "teaspoon",
	"c": "cup", "cup": "cup", "cups": "cup",
	"oz": "ounce", "ounce": "ounce", "ounces": "ounce",
	"lb": "pound", "lbs": "pound", "pound": "pound", "pounds": "pound",
	"g": "gram", "gram": "gram", "grams": "gram",
	"can": "can", "cans": "can",
}

// countQualifiers 純計數修飾詞，正規化後以空字串表示以利合併
var countQualifiers = map[string]struct{}{
	"large": {}, "medium": {}, "small": {}, "whole": {}, "count": {},
}

// IsKnownUnit 判斷 token 是否為已知的計量單位（不分大小寫）
func IsKnownUnit(token string) bool {
	_, ok := knownUnits[strings.ToLower(token)]
	return ok
}

// NormalizeUnit 將單位縮寫正規化為標準寫法
// 計數修飾詞（large、whole 等）回傳空字串；未知單位轉小寫原樣保留，
// 寧可保留原文也不拒絕資料
func NormalizeUnit(unit string) string {
	lower := strings.ToLower(strings.TrimSpace(unit))
	if lower == "" {
		return ""
	}
	if _, ok := countQualifiers[lower]; ok {
		return ""
	}
	if canonical, ok := unitAliases[lower]; ok {
		return canonical
	}
	return lower
}

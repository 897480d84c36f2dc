package grocery

import (
	"regexp"
	"strings"
)

// 名稱清理規則（順序固定，後面的規則處理前面規則的輸出）
var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	descriptorPattern    = regexp.MustCompile(`,\s*(diced|chopped|sliced|minced|halved|thinly sliced|optional|for serving|drained and rinsed).*$`)
	toTastePattern       = regexp.MustCompile(`(?i)\s+to taste.*$`)
	andClausePattern     = regexp.MustCompile(`\s+and\s+.+$`)
	juiceOfPattern       = regexp.MustCompile(`(?i)^juice of \d+\s+(.+)`)
	leadQualifierPattern = regexp.MustCompile(`(?i)^(fresh|dried|frozen|canned|shredded|chopped|sliced|diced|minced)\s+`)
)

// CleanName 清理食材名稱，移除括號註記與多餘描述
// 例如 "onion, diced (about 1/2 cup)" 會變成 "onion"，
// "juice of 1 lime" 會改寫成 "lime juice"
// 注意："salt and pepper" 這類複合詞會被折疊為第一項（"salt"），
// 以利調味料合併，這是已知的限制
func CleanName(name string) string {
	original := strings.TrimSpace(name)

	// 移除括號內的註記
	name = parentheticalPattern.ReplaceAllString(name, "")

	// 移除逗號後的常見處理描述
	name = descriptorPattern.ReplaceAllString(name, "")

	// 移除 "to taste" 片語
	name = toTastePattern.ReplaceAllString(name, "")

	// 移除 "and X" 字尾
	name = andClausePattern.ReplaceAllString(name, "")

	// 處理 "juice of N X" 格式，改寫為 "X juice"
	if m := juiceOfPattern.FindStringSubmatch(name); m != nil {
		return m[1] + " juice"
	}

	// 移除開頭的修飾詞（fresh、dried 等）
	name = leadQualifierPattern.ReplaceAllString(name, "")

	// 壓縮多餘空白
	name = strings.Join(strings.Fields(name), " ")

	// 防禦性回退：清理到空字串時保留原始輸入
	if name == "" {
		return original
	}
	return name
}

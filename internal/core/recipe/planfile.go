package recipe

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// planSkipPhrases 計劃文件中不是食譜名稱的粗體字
var planSkipPhrases = []string{
	"no ",
	"recipe available",
	"breakfast",
	"lunch",
	"dinner",
	"prep time",
	"cook time",
	"total time",
}

// ExtractRecipeNames 從餐食計劃文件中抽出食譜名稱
// 計劃文件以 **Bold** 標示每餐的食譜，這裡過濾掉佔位與時間標記，
// 將 "Breakfast Burritos" 轉為 "breakfast-burritos" 的檔名形式並去重
func ExtractRecipeNames(content string) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, m := range boldPattern.FindAllStringSubmatch(content, -1) {
		title := strings.TrimSpace(m[1])
		if title == "" || isSkipPhrase(title) {
			continue
		}

		slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		names = append(names, slug)
	}

	return names
}

func isSkipPhrase(title string) bool {
	lower := strings.ToLower(title)
	for _, skip := range planSkipPhrases {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

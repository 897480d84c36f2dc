package grocery

import (
	"regexp"
	"strings"
)

// ParsedIngredient 單行食材解析結果
type ParsedIngredient struct {
	Quantity string // 數量的原始表達式（"2"、"1/2"、"3-4"）
	Unit     string // 計量單位，無明確單位時為空字串
	Name     string // 清理後的食材名稱
}

var (
	bulletPattern = regexp.MustCompile(`^[-•*]\s*`)
	// 格式：數量表達式 + 一個 token + 其餘內容（"2 cups flour"）
	ingredientPattern = regexp.MustCompile(`^([\d./\-]+(?:\s+to\s+[\d./\-]+)?)\s+(\S+)\s+(.+)$`)
)

// ParseLine 解析一行食材文字，抽出數量、單位與名稱
// 可處理常見的幾種格式：
//   - "2 cups flour"
//   - "1/2 teaspoon salt"
//   - "3-4 tablespoons olive oil"
//   - "8 large eggs"
//   - "Salt and pepper to taste"
//
// 空行與標題行回傳 nil
func ParseLine(line string) *ParsedIngredient {
	// 移除開頭的項目符號與空白
	line = bulletPattern.ReplaceAllString(strings.TrimSpace(line), "")

	// 跳過空行與段落標題
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if m := ingredientPattern.FindStringSubmatch(line); m != nil {
		quantity := strings.TrimSpace(m[1])
		token := strings.TrimSpace(m[2])
		rest := strings.TrimSpace(m[3])

		// 第二個 token 是單位時直接採用；否則 token 連同其餘內容
		// 整段視為食材名稱，交給名稱清理處理
		if IsKnownUnit(token) {
			return &ParsedIngredient{
				Quantity: quantity,
				Unit:     token,
				Name:     CleanName(rest),
			}
		}
		return &ParsedIngredient{
			Quantity: quantity,
			Unit:     "",
			Name:     CleanName(token + " " + rest),
		}
	}

	// 沒有數量表達式的行，整行當作食材名稱
	return &ParsedIngredient{
		Quantity: "1",
		Unit:     "",
		Name:     CleanName(line),
	}
}

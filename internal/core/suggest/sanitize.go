package suggest

import "strings"

// maxInputLength 使用者輸入進入提示詞前的長度上限，防止提示注入
const maxInputLength = 500

// sanitizeInput 清理要放進提示詞的使用者文字
// 截斷過長輸入、以允許清單過濾字元、壓縮空白
func sanitizeInput(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if len(text) > maxInputLength {
		text = text[:maxInputLength]
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if isAllowedChar(c) {
			b.WriteRune(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isAllowedChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune(" .,;:!?-'\"()/&", c)
}

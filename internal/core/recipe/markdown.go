package recipe

import (
	"regexp"
	"strings"
)

// Document 解析後的 Markdown 文件
// 食譜與使用者檔案共用同一種結構：標題、`- **Key**: Value` 欄位與原始內容
type Document struct {
	Title    string            // 第一個 `# ` 標題
	Fields   map[string]string // `- **Key**: Value` 中繼資料
	Content  string            // 完整原始內容
	Filename string            // 來源檔名，僅 FileStore 載入時填入
}

var (
	titlePattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	fieldPattern = regexp.MustCompile(`(?m)^-\s+\*\*([^*]+)\*\*:\s+(.+)$`)
)

// ParseDocument 解析 Markdown 內容，抽出標題與中繼資料欄位
func ParseDocument(content string) *Document {
	doc := &Document{
		Fields:  make(map[string]string),
		Content: content,
	}

	if m := titlePattern.FindStringSubmatch(content); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}

	for _, m := range fieldPattern.FindAllStringSubmatch(content, -1) {
		key := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		doc.Fields[key] = value
	}

	return doc
}

// Field 取得中繼資料欄位，不存在時回傳預設值
func (d *Document) Field(key, fallback string) string {
	if value, ok := d.Fields[key]; ok {
		return value
	}
	return fallback
}

package recipe

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// FileStore 以目錄中的 Markdown 檔案為後端的食譜儲存庫
// 食譜名稱對應 <name>.md，名稱本身帶 .md 副檔名時也接受
type FileStore struct {
	dir string
}

// NewFileStore 創建食譜儲存庫
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// path 將食譜名稱轉為檔案路徑
func (s *FileStore) path(name string) string {
	filename := name
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}
	return filepath.Join(s.dir, filename)
}

// Load 載入並解析單一食譜
func (s *FileStore) Load(ctx context.Context, name string) (*Document, error) {
	path := s.path(name)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, err
	}

	doc := ParseDocument(string(content))
	doc.Filename = filepath.Base(path)
	return doc, nil
}

// LoadAll 載入目錄中的所有食譜
func (s *FileStore) LoadAll(ctx context.Context) ([]*Document, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.md"))
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			common.LogWarn("讀取食譜失敗，跳過",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		doc := ParseDocument(string(content))
		doc.Filename = filepath.Base(path)
		docs = append(docs, doc)
	}

	common.LogInfo("食譜載入完成",
		zap.String("dir", s.dir),
		zap.Int("count", len(docs)),
	)
	return docs, nil
}

// IngredientLines 取出 ## Ingredients 段落中的食材行
// 遇到下一個 ## 標題即停止，### 子段落標題跳過，只收集 - 或 * 開頭的行
func (s *FileStore) IngredientLines(ctx context.Context, recipe string) ([]string, error) {
	doc, err := s.Load(ctx, recipe)
	if err != nil {
		return nil, err
	}

	var lines []string
	inSection := false

	for _, raw := range strings.Split(doc.Content, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "## Ingredients") {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(line, "## ") && !strings.Contains(line, "Ingredients") {
			break
		}
		if inSection && strings.HasPrefix(line, "###") {
			continue
		}
		if inSection && (strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")) {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

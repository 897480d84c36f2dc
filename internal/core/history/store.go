package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"meal-planner/internal/core/plan"
	"meal-planner/internal/pkg/common"
)

// Store 歷史記錄儲存介面
type Store interface {
	// Save 寫入一週計劃的歷史記錄
	Save(ctx context.Context, entry *Entry) error
	// Entries 讀取所有歷史記錄，預設略過已過期者
	Entries(ctx context.Context, includeExpired bool) ([]*Entry, error)
}

// FileStore 以 JSON 檔案保存歷史記錄
type FileStore struct {
	dir string
}

// NewFileStore 建立檔案歷史儲存
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(weekStart string) string {
	return filepath.Join(s.dir, fmt.Sprintf("history_%s.json", weekStart))
}

// Save 寫入 history_<week_start>.json，同週記錄會被覆蓋
func (s *FileStore) Save(_ context.Context, entry *Entry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	path := s.path(entry.WeekStart)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	common.LogInfo("已保存歷史記錄",
		zap.String("week_start", entry.WeekStart),
		zap.Int("ttl_days", entry.TTLDays),
	)
	return nil
}

// Entries 讀取所有歷史記錄，無法解析的檔案記錄警告後略過
func (s *FileStore) Entries(_ context.Context, includeExpired bool) ([]*Entry, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "history_*.json"))
	if err != nil {
		return nil, fmt.Errorf("list history files: %w", err)
	}

	now := time.Now()
	entries := make([]*Entry, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			common.LogWarn("無法讀取歷史檔案",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		var entry Entry
		if err := common.ParseJSONBytes(data, &entry); err != nil {
			common.LogWarn("歷史檔案格式錯誤",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if !includeExpired && entry.Expired(now) {
			continue
		}
		entries = append(entries, &entry)
	}

	sortEntries(entries)
	return entries, nil
}

// sortEntries 依週起始日由新至舊排序
func sortEntries(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WeekStart > entries[j].WeekStart
	})
}

// RecentlyUsed 回傳最近 daysBack 天內用過的食譜
func RecentlyUsed(ctx context.Context, store Store, daysBack int, now time.Time) ([]UsedRecipe, error) {
	entries, err := store.Entries(ctx, false)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -daysBack)
	var used []UsedRecipe
	for _, entry := range entries {
		weekStart, err := time.Parse("2006-01-02", entry.WeekStart)
		if err != nil {
			common.LogWarn("歷史記錄的週起始日無法解析",
				zap.String("week_start", entry.WeekStart),
			)
			continue
		}

		for i, dayName := range plan.DayNames {
			date := weekStart.AddDate(0, 0, i)
			if date.Before(cutoff) || date.After(now) {
				continue
			}
			records, ok := entry.Meals[dayName]
			if !ok {
				continue
			}
			for _, mealType := range plan.MealTypes {
				record, ok := records[mealType]
				if !ok || record.Filename == "" {
					continue
				}
				used = append(used, UsedRecipe{
					Title:    record.Title,
					Filename: record.Filename,
					Category: record.Category,
					Cuisine:  record.Cuisine,
					Date:     date.Format("2006-01-02"),
					Day:      dayName,
					MealType: mealType,
				})
			}
		}
	}
	return used, nil
}

// LastUsed 回傳食譜最近一次使用的日期，從未使用時回傳空字串
func LastUsed(ctx context.Context, store Store, filename string, now time.Time) (string, error) {
	used, err := RecentlyUsed(ctx, store, 365, now)
	if err != nil {
		return "", err
	}

	last := ""
	for _, u := range used {
		if u.Filename == filename && u.Date > last {
			last = u.Date
		}
	}
	return last, nil
}

// DaysSinceUsed 回傳食譜距今幾天前用過，從未使用時 ok 為 false
func DaysSinceUsed(ctx context.Context, store Store, filename string, now time.Time) (int, bool, error) {
	last, err := LastUsed(ctx, store, filename, now)
	if err != nil {
		return 0, false, err
	}
	if last == "" {
		return 0, false, nil
	}

	date, err := time.Parse("2006-01-02", last)
	if err != nil {
		return 0, false, fmt.Errorf("parse last used date: %w", err)
	}
	days := int(now.Sub(date).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true, nil
}

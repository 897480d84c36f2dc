package plan

import (
	"context"
	"os"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"
)

// Profile 使用者檔案，來自 Markdown 文件的中繼資料欄位
type Profile struct {
	Name                string
	DietaryRestrictions string
	FoodPreferences     string
}

// ProfileFromDocument 從解析後的 Markdown 文件建立使用者檔案
func ProfileFromDocument(doc *recipe.Document) *Profile {
	return &Profile{
		Name:                doc.Field("Name", "Unknown"),
		DietaryRestrictions: doc.Field("Dietary Restrictions", "None"),
		FoodPreferences:     doc.Field("Food Preferences", ""),
	}
}

// LoadProfile 從檔案載入使用者檔案
func LoadProfile(ctx context.Context, path string) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrProfileNotFound
		}
		return nil, err
	}
	return ProfileFromDocument(recipe.ParseDocument(string(content))), nil
}

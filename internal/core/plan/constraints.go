package plan

import (
	"fmt"

	"github.com/spf13/viper"
)

// Constraints 餐食計劃的規則設定，來自 YAML 檔
type Constraints struct {
	Week struct {
		StartDate string `mapstructure:"start_date"`
		EndDate   string `mapstructure:"end_date"`
	} `mapstructure:"week"`
	MealsPerDay map[string]int `mapstructure:"meals_per_day"`
	Time        struct {
		MaxWeeknightPrepMinutes int `mapstructure:"max_weeknight_prep_minutes"`
		MaxWeekendPrepMinutes   int `mapstructure:"max_weekend_prep_minutes"`
	} `mapstructure:"time"`
	Variety struct {
		MinDaysBetweenRepeats int `mapstructure:"min_days_between_repeats"`
		MinUniqueCuisines     int `mapstructure:"min_unique_cuisines"`
	} `mapstructure:"variety"`
}

// LoadConstraints 從 YAML 檔載入計劃約束
func LoadConstraints(path string) (*Constraints, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// 預設值：未指定時沿用原系統的寬鬆設定
	v.SetDefault("time.max_weeknight_prep_minutes", 45)
	v.SetDefault("time.max_weekend_prep_minutes", 180)
	v.SetDefault("variety.min_days_between_repeats", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read constraints file: %w", err)
	}

	var cons Constraints
	if err := v.Unmarshal(&cons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal constraints: %w", err)
	}

	if err := validateConstraints(&cons); err != nil {
		return nil, err
	}
	return &cons, nil
}

func validateConstraints(cons *Constraints) error {
	if cons.Week.StartDate == "" || cons.Week.EndDate == "" {
		return fmt.Errorf("constraints week start/end dates are required")
	}
	if cons.Time.MaxWeeknightPrepMinutes <= 0 || cons.Time.MaxWeekendPrepMinutes <= 0 {
		return fmt.Errorf("constraints time limits must be positive")
	}
	return nil
}

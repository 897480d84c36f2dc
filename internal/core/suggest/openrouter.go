package suggest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouterSource 透過 OpenRouter API 產生餐點建議
// 實作 SuggestionSource 與 CuisineClassifier；所有失敗路徑都回傳錯誤，
// 由呼叫端退回決定性選擇
type OpenRouterSource struct {
	config *config.Config
	client *resty.Client
	cache  *CacheManager

	mu       sync.Mutex
	lastCall time.Time
}

// NewOpenRouterSource 創建 OpenRouter 建議來源
func NewOpenRouterSource(cfg *config.Config, cache *CacheManager) *OpenRouterSource {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://meal-planner.local").
		SetHeader("X-Title", "Meal Planner")

	return &OpenRouterSource{
		config: cfg,
		client: client,
		cache:  cache,
	}
}

// SuggestMeal 取得一個餐點建議
func (s *OpenRouterSource) SuggestMeal(ctx context.Context, req SuggestionRequest) (string, error) {
	prompt := buildMealPrompt(req)

	// 先查快取
	if cached, err := s.cache.Get(ctx, prompt); err == nil {
		return cached, nil
	}

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	suggestion := cleanSuggestion(raw)
	if suggestion == "" {
		return "", fmt.Errorf("empty suggestion from model")
	}

	if err := s.cache.Set(ctx, prompt, suggestion); err != nil {
		common.LogWarn("建議快取寫入失敗",
			zap.Error(err),
		)
	}
	return suggestion, nil
}

// ClassifyCuisine 分類食譜的菜系，回傳單一菜系名稱
func (s *OpenRouterSource) ClassifyCuisine(ctx context.Context, recipeTitle string) (string, error) {
	title := sanitizeInput(recipeTitle)
	if title == "" {
		return "", fmt.Errorf("empty recipe title")
	}

	prompt := fmt.Sprintf(
		"Classify the cuisine type of this recipe. Return only the cuisine name (e.g., Italian, Mexican, Asian, American, Mediterranean, etc.).\n\nRecipe: %s",
		title,
	)

	if cached, err := s.cache.Get(ctx, prompt); err == nil {
		return cached, nil
	}

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	cuisine := strings.TrimSpace(raw)
	if cuisine == "" {
		return "", fmt.Errorf("empty cuisine from model")
	}

	if err := s.cache.Set(ctx, prompt, cuisine); err != nil {
		common.LogWarn("建議快取寫入失敗",
			zap.Error(err),
		)
	}
	return cuisine, nil
}

// complete 送出一次對話補全請求
func (s *OpenRouterSource) complete(ctx context.Context, prompt string) (string, error) {
	if !s.config.OpenRouter.Enabled {
		return "", common.ErrSuggestionUnavailable
	}

	if err := s.checkInterval(); err != nil {
		return "", err
	}

	req := map[string]interface{}{
		"model": s.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": "You are a helpful meal planning assistant. Provide concise, practical meal suggestions.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens": s.config.OpenRouter.MaxTokens,
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogSuggestionCall(time.Since(start), err, "")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}

// checkInterval 外呼前的最小間隔檢查
func (s *OpenRouterSource) checkInterval() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interval := s.config.OpenRouter.MinInterval; interval > 0 {
		if since := time.Since(s.lastCall); since < interval {
			return fmt.Errorf("%w: retry after %s", common.ErrTooManyRequests, interval-since)
		}
	}
	s.lastCall = time.Now()
	return nil
}

// buildMealPrompt 組裝餐點建議的提示詞
// 所有來自使用者的欄位都先經過 sanitizeInput
func buildMealPrompt(req SuggestionRequest) string {
	dayType := "weekend"
	if req.Weeknight {
		dayType = "weeknight"
	}

	restrictions := sanitizeInput(req.DietaryRestrictions)
	if restrictions == "" {
		restrictions = "None"
	}
	preferences := sanitizeInput(req.FoodPreferences)
	mealType := sanitizeInput(req.MealType)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a creative meal planning assistant. Suggest a %s meal idea.\n\n", mealType)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Meal type: %s\n", mealType)
	fmt.Fprintf(&b, "- Day type: %s\n", dayType)
	fmt.Fprintf(&b, "- Maximum preparation time: %d minutes\n", req.MaxPrepMinutes)
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", restrictions)
	fmt.Fprintf(&b, "- Food preferences: %s\n\n", preferences)

	var recent []string
	for _, meal := range req.RecentlyUsed {
		if clean := sanitizeInput(meal); clean != "" {
			recent = append(recent, clean)
		}
	}
	if len(recent) > 0 {
		fmt.Fprintf(&b, "Recently used meals (please avoid): %s\n\n", strings.Join(recent, ", "))
	}

	b.WriteString("Please suggest ONE specific meal name only. Keep it simple and practical.\n")
	b.WriteString("Format: Just the meal name, nothing else.\n")
	b.WriteString("Example: \"Chicken Teriyaki with Rice\" or \"Veggie Omelet\"\n\n")
	b.WriteString("Meal suggestion:")

	return b.String()
}

// cleanSuggestion 清理模型回應：去引號、壓縮空白
func cleanSuggestion(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'“”‘’")
	return strings.Join(strings.Fields(s), " ")
}

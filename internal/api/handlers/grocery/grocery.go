package grocery

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	groceryService "meal-planner/internal/core/grocery"
	recipeService "meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListRequest 從食譜名稱列表產生購物清單
type ListRequest struct {
	Recipes []string `json:"recipes" binding:"required,min=1"` // 食譜名稱或檔名
}

// FromPlanRequest 從已保存的週計劃產生購物清單
type FromPlanRequest struct {
	Plan string `json:"plan" binding:"required"` // 計劃檔名，如 meal_plan_2026-01-19.md
}

// ListResponse 購物清單響應
type ListResponse struct {
	Markdown string                   `json:"markdown"`
	Sections []groceryService.Section `json:"sections"`
	Recipes  []string                 `json:"recipes"`
}

// Handler 購物清單處理程序
type Handler struct {
	generator *groceryService.Generator
	plansDir  string
}

// NewHandler 創建購物清單處理程序
func NewHandler(generator *groceryService.Generator, plansDir string) *Handler {
	return &Handler{
		generator: generator,
		plansDir:  plansDir,
	}
}

// HandleList 從食譜列表產生購物清單
func (h *Handler) HandleList(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始產生購物清單",
		zap.Int("recipe_count", len(req.Recipes)),
		zap.String("request_id", requestID),
	)

	h.respondWithList(c, req.Recipes, requestID)
}

// HandleFromPlan 從已保存的週計劃產生購物清單
func (h *Handler) HandleFromPlan(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req FromPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 只取檔名部分，避免路徑跳脫
	name := filepath.Base(req.Plan)
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	content, err := os.ReadFile(filepath.Join(h.plansDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			common.LogWarn("找不到指定的計劃",
				zap.String("plan", name),
				zap.String("request_id", requestID),
			)
			respondError(c, common.ErrPlanNotFound)
			return
		}
		common.LogError("無法讀取計劃檔案",
			zap.Error(err),
			zap.String("plan", name),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInternalError)
		return
	}

	recipes := recipeService.ExtractRecipeNames(string(content))
	common.LogInfo("從計劃擷取食譜",
		zap.String("plan", name),
		zap.Int("recipe_count", len(recipes)),
		zap.String("request_id", requestID),
	)

	h.respondWithList(c, recipes, requestID)
}

func (h *Handler) respondWithList(c *gin.Context, recipes []string, requestID string) {
	list, err := h.generator.Build(c.Request.Context(), recipes)
	if err != nil {
		common.LogError("購物清單產生失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Markdown: list.Markdown(),
		Sections: list.Sections,
		Recipes:  recipes,
	})
}

// ensureRequestID 讀取或補上 X-Request-ID
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

func respondError(c *gin.Context, err *common.CustomError) {
	c.JSON(err.Status, common.ErrorResponse{
		Code:    err.Code,
		Message: err.Message,
	})
}

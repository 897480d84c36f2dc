package plan

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	historyService "meal-planner/internal/core/history"
	planService "meal-planner/internal/core/plan"
	recipeService "meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 產生一週餐食計劃
type GenerateRequest struct {
	Profile     string `json:"profile" binding:"required"` // 使用者檔案名稱
	Constraints string `json:"constraints,omitempty"`      // 約束檔名，省略時使用 constraints.yaml
}

// GenerateResponse 計劃產生結果
type GenerateResponse struct {
	Plan         *planService.Plan  `json:"plan"`
	Markdown     string             `json:"markdown"`
	Filename     string             `json:"filename"`
	Score        *planService.Score `json:"score"`
	ScoreSummary string             `json:"score_summary"`
}

// ScoreRequest 為既有計劃評分
type ScoreRequest struct {
	Plan        *planService.Plan `json:"plan" binding:"required"`
	Constraints string            `json:"constraints,omitempty"`
}

// ScoreResponse 評分結果
type ScoreResponse struct {
	Score   *planService.Score `json:"score"`
	Summary string             `json:"summary"`
}

// Handler 餐食計劃處理程序
type Handler struct {
	recipes *recipeService.FileStore
	planner *planService.Planner
	scorer  *planService.Scorer
	history historyService.Store
	cfg     *config.Config
}

// NewHandler 創建餐食計劃處理程序
func NewHandler(recipes *recipeService.FileStore, planner *planService.Planner, scorer *planService.Scorer, history historyService.Store, cfg *config.Config) *Handler {
	return &Handler{
		recipes: recipes,
		planner: planner,
		scorer:  scorer,
		history: history,
		cfg:     cfg,
	}
}

// HandleGenerate 產生計劃、評分、保存並記入歷史
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := ensureRequestID(c)
	ctx := c.Request.Context()

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始處理計劃產生請求",
		zap.String("profile", req.Profile),
		zap.String("request_id", requestID),
	)

	profile, err := planService.LoadProfile(ctx, h.profilePath(req.Profile))
	if err != nil {
		h.respondDomainError(c, err, requestID)
		return
	}

	cons, err := planService.LoadConstraints(h.constraintsPath(req.Constraints))
	if err != nil {
		common.LogWarn("約束檔案載入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInvalidConstraints)
		return
	}

	recipes, err := h.recipes.LoadAll(ctx)
	if err != nil {
		common.LogError("食譜載入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInternalError)
		return
	}

	generated, err := h.planner.Generate(ctx, profile, recipes, cons)
	if err != nil {
		h.respondDomainError(c, err, requestID)
		return
	}

	// 評分使用既有歷史，不含本次計劃
	recentlyUsed := h.recentFilenames(c, cons, requestID)
	score := h.scorer.Evaluate(ctx, generated, cons, recentlyUsed)

	markdown := generated.RenderMarkdown(time.Now())
	filename := generated.Filename()
	if err := h.savePlan(filename, markdown); err != nil {
		common.LogError("計劃檔案保存失敗",
			zap.Error(err),
			zap.String("filename", filename),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInternalError)
		return
	}

	// 歷史記錄失敗不影響本次結果
	if h.history != nil {
		entry := historyService.NewEntry(generated, h.cfg.History.TTLDays, time.Now())
		if err := h.history.Save(ctx, entry); err != nil {
			common.LogWarn("歷史記錄保存失敗",
				zap.Error(err),
				zap.String("week_start", generated.WeekStart),
				zap.String("request_id", requestID),
			)
		}
	}

	common.LogInfo("計劃產生完成",
		zap.String("profile", profile.Name),
		zap.String("filename", filename),
		zap.Int("score", score.TotalScore),
		zap.String("grade", score.Grade),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, GenerateResponse{
		Plan:         generated,
		Markdown:     markdown,
		Filename:     filename,
		Score:        score,
		ScoreSummary: planService.FormatScoreSummary(score),
	})
}

// HandleScore 為請求中附帶的計劃評分
func (h *Handler) HandleScore(c *gin.Context) {
	requestID := ensureRequestID(c)
	ctx := c.Request.Context()

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cons, err := planService.LoadConstraints(h.constraintsPath(req.Constraints))
	if err != nil {
		common.LogWarn("約束檔案載入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, common.ErrInvalidConstraints)
		return
	}

	recentlyUsed := h.recentFilenames(c, cons, requestID)
	score := h.scorer.Evaluate(ctx, req.Plan, cons, recentlyUsed)

	c.JSON(http.StatusOK, ScoreResponse{
		Score:   score,
		Summary: planService.FormatScoreSummary(score),
	})
}

// recentFilenames 從歷史取出近期用過的食譜檔名，失敗時回傳空集合
func (h *Handler) recentFilenames(c *gin.Context, cons *planService.Constraints, requestID string) []string {
	if h.history == nil {
		return nil
	}

	daysBack := cons.Variety.MinDaysBetweenRepeats
	if daysBack <= 0 {
		daysBack = 3
	}

	used, err := historyService.RecentlyUsed(c.Request.Context(), h.history, daysBack, time.Now())
	if err != nil {
		common.LogWarn("無法讀取歷史記錄",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		return nil
	}

	filenames := make([]string, 0, len(used))
	for _, u := range used {
		filenames = append(filenames, u.Filename)
	}
	return filenames
}

func (h *Handler) profilePath(name string) string {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ".md") {
		base += ".md"
	}
	return filepath.Join(h.cfg.Planner.ProfilesDir, base)
}

func (h *Handler) constraintsPath(name string) string {
	if name == "" {
		name = "constraints.yaml"
	}
	return filepath.Join(h.cfg.Planner.ConstraintsDir, filepath.Base(name))
}

func (h *Handler) savePlan(filename, markdown string) error {
	if err := os.MkdirAll(h.cfg.Planner.PlansDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(h.cfg.Planner.PlansDir, filename), []byte(markdown), 0o644)
}

// respondDomainError 將業務錯誤轉為對應的 HTTP 響應
func (h *Handler) respondDomainError(c *gin.Context, err error, requestID string) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		common.LogWarn("計劃請求失敗",
			zap.String("code", custom.Code),
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, custom)
		return
	}

	common.LogError("計劃請求發生未預期錯誤",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	respondError(c, common.ErrInternalError)
}

func respondError(c *gin.Context, err *common.CustomError) {
	c.JSON(err.Status, common.ErrorResponse{
		Code:    err.Code,
		Message: err.Message,
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

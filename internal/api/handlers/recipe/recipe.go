package recipe

import (
	"errors"
	"net/http"

	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sodium ceiling bounds enforced at the boundary. The engine receives an
// already-clamped value.
const (
	defaultSodiumMaxMg = 1500
	minSodiumMaxMg     = 500
	maxSodiumMaxMg     = 3000
)

// healthProfilePayload is the wire shape of the health profile. The ceiling
// is a pointer so "absent" and "present but zero" stay distinguishable.
// Unknown fields sent by older clients are ignored.
type healthProfilePayload struct {
	DailySodiumMax  *int   `json:"dailySodiumMax"`
	BirthDate       string `json:"birthDate"`
	HasDiabetes     bool   `json:"hasDiabetes"`
	HasRenalDisease bool   `json:"hasRenalDisease"`
}

// recommendRequest is the POST /api/recommend body.
type recommendRequest struct {
	Ingredients   []string              `json:"ingredients"`
	HealthProfile *healthProfilePayload `json:"healthProfile"`
}

// Handler serves the recipe endpoints.
type Handler struct {
	engine *recommend.Engine
}

// NewHandler creates a recipe handler backed by the engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{engine: engine}
}

// HandleGetRecipes returns the normalized static catalog.
func (h *Handler) HandleGetRecipes(c *gin.Context) {
	recipes := h.engine.Catalog()
	if recipes == nil {
		recipes = []common.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleRecommend validates the request body, builds the engine request,
// and returns the ranked recipe list.
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least one ingredient"})
		return
	}
	if req.HealthProfile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing health profile"})
		return
	}

	engineReq := common.RecommendationRequest{
		Pantry: req.Ingredients,
		Profile: common.HealthProfile{
			DailySodiumMaxMg: clampSodiumMax(req.HealthProfile.DailySodiumMax),
			BirthDate:        req.HealthProfile.BirthDate,
			HasDiabetes:      req.HealthProfile.HasDiabetes,
			HasRenalDisease:  req.HealthProfile.HasRenalDisease,
		},
	}

	recipes, err := h.engine.Recommend(c.Request.Context(), engineReq)
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}
	if recipes == nil {
		recipes = []common.Recipe{}
	}

	common.LogInfo("recommendation served",
		zap.String("request_id", requestID),
		zap.Int("results", len(recipes)),
	)

	c.JSON(http.StatusOK, recipes)
}

func (h *Handler) writeError(c *gin.Context, requestID string, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var custom *common.CustomError
	if errors.As(err, &custom) {
		common.LogError("recommendation failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("code", custom.Code),
		)
		c.JSON(custom.Status, gin.H{"error": custom.Message, "code": custom.Code})
		return
	}

	common.LogError("recommendation failed",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed"})
}

// clampSodiumMax applies the default and the valid range for the daily
// sodium ceiling.
func clampSodiumMax(value *int) int {
	if value == nil || *value <= 0 {
		return defaultSodiumMaxMg
	}
	if *value < minSodiumMaxMg {
		return minSodiumMaxMg
	}
	if *value > maxSodiumMaxMg {
		return maxSodiumMaxMg
	}
	return *value
}

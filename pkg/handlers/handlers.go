package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
	"github.com/oakhill-retail/shift-roster-engine/pkg/auth"
	"github.com/oakhill-retail/shift-roster-engine/pkg/database"
)

// Handler contains dependencies for the route handlers.
type Handler struct {
	DB  *gorm.DB
	Cfg config.Config
}

// AuthMiddleware verifies the JWT token for admin routes.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for roster-generation routes using HMAC.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 1000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// GenerateRosterInput is the JSON body for the roster-generation endpoint
// (spec.md §6 "GenerateRequest" plus the employees/store the core needs).
type GenerateRosterInput struct {
	StoreID             string                `json:"store_id"`
	Request             models.GenerateRequest `json:"request"`
	Employees           []models.Employee      `json:"employees"`
	Store               models.StoreProfile     `json:"store"`
	StationRequirements map[string]int          `json:"station_requirements"`
}

// GenerateRoster runs the full Demand -> Matcher -> Scheduler -> Validator
// -> Resolver pipeline for one store and returns the RosterResponse.
func (h *Handler) GenerateRoster(c *gin.Context) {
	var input GenerateRosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orchestrator := engine.New(h.Cfg)
	resp, err := orchestrator.Generate(c.Request.Context(), input.Request, input.Employees, input.Store, input.StationRequirements)
	if err != nil {
		var fatalErr *engine.FatalError
		if errors.As(err, &fatalErr) {
			c.JSON(statusForFatal(fatalErr.Kind), gin.H{"error": fatalErr.Error(), "kind": fatalErr.Kind})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.recordRun(c, input.StoreID, resp)
	c.JSON(http.StatusOK, resp)
}

// statusForFatal maps the core's error taxonomy onto HTTP status codes.
func statusForFatal(kind engine.FatalErrorKind) int {
	switch kind {
	case engine.ErrInvalidRequest, engine.ErrInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// recordRun persists a RosterRun audit row and upserts the day's APIUsage
// row for whichever key authenticated this request, if any.
func (h *Handler) recordRun(c *gin.Context, storeID string, resp *engine.RosterResponse) {
	var keyID uint
	if apiKeyRaw, exists := c.Get("apiKey"); exists {
		apiKey := apiKeyRaw.(*database.APIKey)
		keyID = apiKey.ID
		h.recordUsage(apiKey, len(resp.Schedules))
	}

	h.DB.Create(&database.RosterRun{
		RunID:                 resp.RunID,
		KeyID:                 keyID,
		StoreID:               storeID,
		Status:                resp.Status,
		EmployeeCount:         len(resp.Schedules),
		InitialConflictCount:  len(resp.InitialConflicts),
		FinalConflictCount:    len(resp.FinalConflicts),
		ResolutionsApplied:    resp.ResolutionsApplied,
		GenerationTimeSeconds: resp.GenerationTimeSeconds,
	})
}

// recordUsage upserts the day's APIUsage row for an authenticated key.
func (h *Handler) recordUsage(apiKey *database.APIKey, employeeCount int) {
	today := time.Now().Format("2006-01-02")

	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", 1),
			"total_employees": gorm.Expr("total_employees + ?", employeeCount),
			"total_rosters":   gorm.Expr("total_rosters + ?", 1),
		}),
	}).Create(&database.APIUsage{
		KeyID:          apiKey.ID,
		Date:           today,
		RequestCount:   1,
		TotalEmployees: employeeCount,
		TotalRosters:   1,
	})
}

// Login handles admin login.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy.
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 1000
	}

	key := auth.GenerateHMACKey(req.Name)

	preview := "****"
	if len(key) > 8 {
		preview = key[:3] + "..." + key[len(key)-4:]
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: preview,
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys.
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key.
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.APIKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key.
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key.
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// ListRuns returns recent roster-generation runs for a store, newest first.
func (h *Handler) ListRuns(c *gin.Context) {
	storeID := c.Query("store_id")
	q := h.DB.Order("created_at desc").Limit(50)
	if storeID != "" {
		q = q.Where("store_id = ?", storeID)
	}
	var runs []database.RosterRun
	q.Find(&runs)
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

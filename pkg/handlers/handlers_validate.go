package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateRosterInput does a cheap structural check of a GenerateRosterInput
// payload without running the pipeline, so a caller can catch malformed
// requests before paying for a solver run.
func (h *Handler) ValidateRosterInput(c *gin.Context) {
	var input GenerateRosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "at least one employee is required"})
		return
	}

	req := input.Request.WithDefaults()
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	seen := make(map[string]bool, len(input.Employees))
	for _, emp := range input.Employees {
		if seen[emp.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "duplicate employee ID: " + emp.ID})
			return
		}
		seen[emp.ID] = true
	}

	hasManager := false
	for _, emp := range input.Employees {
		if emp.IsManager {
			hasManager = true
			break
		}
	}
	if !hasManager {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "at least one manager is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count": len(input.Employees),
			"weeks":          req.Weeks,
		},
	})
}

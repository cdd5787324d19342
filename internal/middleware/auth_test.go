package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-middleware-testing")
}

func TestAuthRequired_NoHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	token, _ := utils.GenerateToken(1, "jmorris", models.RoleManager, 24)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserID)
		username, _ := c.Get(ContextUsername)
		role, _ := c.Get(ContextRole)
		c.JSON(200, gin.H{
			"user_id":  userID,
			"username": username,
			"role":     role,
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func roleRouter(role string, gate gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(ContextRole, role)
		}
		c.Next()
	})
	router.Use(gate)
	router.GET("/gated", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func gatedRequest(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/gated", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRequireRoles_ExactMatchOnly(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		expected int
	}{
		{"admin passes admin gate", models.RoleAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"manager fails admin gate", models.RoleManager, []string{models.RoleAdmin}, http.StatusForbidden},
		{"no implied hierarchy", models.RoleAdmin, []string{models.RoleManager}, http.StatusForbidden},
		{"master role is its own string", models.RoleMasterGST, []string{models.RoleMasterIncomeTax}, http.StatusForbidden},
		{"master role passes own gate", models.RoleMasterGST, []string{models.RoleMasterGST}, http.StatusOK},
		{"multi-role gate", models.RoleManager, []string{models.RoleAdmin, models.RoleManager}, http.StatusOK},
		{"client fails staff gate", models.RoleClient, []string{models.RoleAdmin, models.RoleManager, models.RoleEmployee}, http.StatusForbidden},
		{"missing role", "", []string{models.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := roleRouter(tt.role, RequireRoles(tt.allowed...))
			if code := gatedRequest(router); code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, code)
			}
		})
	}
}

func TestAdminRequired(t *testing.T) {
	if code := gatedRequest(roleRouter(models.RoleAdmin, AdminRequired())); code != http.StatusOK {
		t.Errorf("admin: expected %d, got %d", http.StatusOK, code)
	}
	if code := gatedRequest(roleRouter(models.RoleClient, AdminRequired())); code != http.StatusForbidden {
		t.Errorf("client: expected %d, got %d", http.StatusForbidden, code)
	}
}

func TestBuilderRequired(t *testing.T) {
	if code := gatedRequest(roleRouter(models.RoleManager, BuilderRequired())); code != http.StatusOK {
		t.Errorf("manager: expected %d, got %d", http.StatusOK, code)
	}
	if code := gatedRequest(roleRouter(models.RoleEmployee, BuilderRequired())); code != http.StatusForbidden {
		t.Errorf("employee: expected %d, got %d", http.StatusForbidden, code)
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("expected 0 for missing user_id, got %d", id)
	}

	c.Set(ContextUserID, uint(42))
	if id := GetUserID(c); id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestGetUsername(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if name := GetUsername(c); name != "" {
		t.Errorf("expected empty string for missing username, got %q", name)
	}

	c.Set(ContextUsername, "jmorris")
	if name := GetUsername(c); name != "jmorris" {
		t.Errorf("expected %q, got %q", "jmorris", name)
	}
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if role := GetRole(c); role != "" {
		t.Errorf("expected empty string for missing role, got %q", role)
	}

	c.Set(ContextRole, models.RoleAdmin)
	if role := GetRole(c); role != models.RoleAdmin {
		t.Errorf("expected %q, got %q", models.RoleAdmin, role)
	}
}

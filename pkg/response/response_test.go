package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestError_AppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewNotFound("form not found"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 404 {
		t.Errorf("expected code 404, got %d", resp.Code)
	}
	if resp.Message != "form not found" {
		t.Errorf("expected message 'form not found', got %q", resp.Message)
	}
}

func TestError_GenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("database exploded"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 500 {
		t.Errorf("expected code 500, got %d", resp.Code)
	}
}

func TestError_ValidationDetails(t *testing.T) {
	missing := []string{"Amount", "Signature"}
	w := performRequest(func(c *gin.Context) {
		Error(c, NewValidation("missing required fields", missing))
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	resp := parseResponse(t, w)
	details, ok := resp.Details.([]interface{})
	if !ok {
		t.Fatalf("expected details to be a list, got %T", resp.Details)
	}
	if len(details) != 2 {
		t.Errorf("expected 2 violations, got %d", len(details))
	}
	if details[0] != "Amount" {
		t.Errorf("first violation = %v, expected %q", details[0], "Amount")
	}
}

func TestNewInvalidComponent(t *testing.T) {
	err := NewInvalidComponent("component 'chat' not in catalog for role 'client'")

	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus = %d, expected %d", err.HTTPStatus, http.StatusUnprocessableEntity)
	}
	if err.Code != 422 {
		t.Errorf("Code = %d, expected 422", err.Code)
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := NewForbidden("admin access required")
	if err.Error() != "admin access required" {
		t.Errorf("Error() = %q, expected %q", err.Error(), "admin access required")
	}
}

func TestConvenienceHelpers(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		code    int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, "bad") }, http.StatusBadRequest, 400},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "no token") }, http.StatusUnauthorized, 401},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "denied") }, http.StatusForbidden, 403},
		{"NotFound", func(c *gin.Context) { NotFound(c, "gone") }, http.StatusNotFound, 404},
		{"ServerError", func(c *gin.Context) { ServerError(c, "boom") }, http.StatusInternalServerError, 500},
	}

	for _, tc := range cases {
		w := performRequest(tc.handler)
		if w.Code != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.status, w.Code)
		}
		resp := parseResponse(t, w)
		if resp.Code != tc.code {
			t.Errorf("%s: expected code %d, got %d", tc.name, tc.code, resp.Code)
		}
	}
}

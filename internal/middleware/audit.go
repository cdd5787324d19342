package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/firmdesk/backend/internal/services"
)

// Audit records every write operation (POST/PUT/PATCH/DELETE) passing
// through it as an AuditEvent. Recording is best-effort and never blocks
// or fails the request.
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "PATCH" && method != "DELETE" {
			c.Next()
			return
		}

		// Clearing the audit log must not record itself.
		if method == "DELETE" && c.FullPath() == "/api/audit" {
			c.Next()
			return
		}

		// Capture request body (up to 2000 chars for Details)
		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > 2000 {
				bodySnippet = bodySnippet[:2000] + "...[truncated]"
			}
			bodySnippet = maskSensitiveFields(bodySnippet)
		}

		c.Next()

		userID := GetUserID(c)
		username := GetUsername(c)
		status := c.Writer.Status()
		action := actionFromRoute(c.FullPath(), method)

		var uid *uint
		if userID > 0 {
			uid = &userID
		}

		services.RecordAudit(uid, username, action,
			formatAuditMessage(username, method, c.Request.URL.Path, status),
			c.ClientIP(), c.Request.UserAgent(),
			map[string]interface{}{
				"method": method,
				"path":   c.Request.URL.Path,
				"status": status,
				"body":   bodySnippet,
			})
	}
}

// actionFromRoute derives an action code from a Gin route pattern,
// e.g. "/api/forms/:id" + "PUT" -> "forms.update".
func actionFromRoute(fullPath, method string) string {
	path := strings.TrimPrefix(fullPath, "/api/")

	parts := strings.SplitN(path, "/", 2)
	entity := parts[0]
	if entity == "" {
		entity = "unknown"
	}

	var verb string
	switch method {
	case "POST":
		verb = "create"
	case "PUT", "PATCH":
		verb = "update"
	case "DELETE":
		verb = "delete"
	default:
		verb = strings.ToLower(method)
	}

	// Suffix routes get their own verb, e.g. "submissions/:id/review" -> "submissions.review"
	if len(parts) == 2 {
		tail := parts[1]
		switch {
		case strings.HasSuffix(tail, "/review"):
			verb = "review"
		case strings.HasSuffix(tail, "/paid"):
			verb = "paid"
		case strings.HasSuffix(tail, "/payments"):
			entity = "payments"
		case strings.HasSuffix(tail, "/components"), strings.HasSuffix(tail, "/tabs"):
			entity = "dashboard"
		}
	}
	if entity == "submissions" && verb == "create" {
		verb = "submit"
	}

	return entity + "." + verb
}

// formatAuditMessage creates a human-readable audit message.
func formatAuditMessage(username, method, path string, status int) string {
	var b strings.Builder
	b.WriteString(username)
	b.WriteString(" ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	if status >= 200 && status < 300 {
		b.WriteString(" ok")
	} else {
		b.WriteString(" failed")
	}
	return b.String()
}

// maskSensitiveFields replaces sensitive values in JSON body
func maskSensitiveFields(body string) string {
	sensitiveKeys := []string{"password", "api_key", "apiKey", "secret", "token"}
	lower := strings.ToLower(body)
	for _, key := range sensitiveKeys {
		if strings.Contains(lower, key) {
			body = maskJSONValue(body, key)
		}
	}
	return body
}

// maskJSONValue does a best-effort mask of JSON string values for a given key
func maskJSONValue(body, key string) string {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, "\""+key+"\"")
	if idx == -1 {
		return body
	}

	colonIdx := strings.Index(body[idx+len(key)+2:], ":")
	if colonIdx == -1 {
		return body
	}
	valueStart := idx + len(key) + 2 + colonIdx + 1

	for valueStart < len(body) && (body[valueStart] == ' ' || body[valueStart] == '\t') {
		valueStart++
	}

	if valueStart >= len(body) {
		return body
	}

	if body[valueStart] == '"' {
		endQuote := strings.Index(body[valueStart+1:], "\"")
		if endQuote == -1 {
			return body
		}
		return body[:valueStart+1] + "***" + body[valueStart+1+endQuote:]
	}

	return body
}

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// claimString extracts a string claim from the verified token, or "".
func claimString(r *http.Request, key string) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func claimEmployeeID(r *http.Request) string {
	return claimString(r, "employee_id")
}

func claimOrganizationID(r *http.Request) string {
	return claimString(r, "organization_id")
}

func isAdmin(r *http.Request) bool {
	return claimString(r, "role") == "admin"
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

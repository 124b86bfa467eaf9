package request

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// RouteStringParam returns a URL route parameter as string.
func RouteStringParam(r *http.Request, param string) string {
	vars := mux.Vars(r)
	return strings.TrimSpace(vars[param])
}

// QueryStringParam returns a query string parameter as string.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		value = defaultValue
	}
	return value
}

// QueryIntParam returns a query string parameter as integer.
func QueryIntParam(r *http.Request, param string, defaultValue int) int {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if val < 0 {
		return defaultValue
	}

	return val
}

// QueryBoolParam returns a query string parameter as boolean.
func QueryBoolParam(r *http.Request, param string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(param))
	if err != nil {
		return false
	}
	return value
}

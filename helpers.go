package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// parseQueryParams extracts common query parameters from HTTP request
func parseQueryParams(r *http.Request) QueryParams {
	params := QueryParams{
		Page:     1,
		PageSize: 50,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			params.Page = page
		}
	}

	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if pageSize, err := strconv.Atoi(pageSizeStr); err == nil && pageSize > 0 && pageSize <= 200 {
			params.PageSize = pageSize
		}
	}

	params.Team = r.URL.Query().Get("team")
	params.Hand = r.URL.Query().Get("hand")
	params.Sort = r.URL.Query().Get("sort")
	params.Order = r.URL.Query().Get("order")

	// Default order to ASC if not specified
	if params.Order != "desc" {
		params.Order = "asc"
	}

	return params
}

// calculateOffset calculates slice offset for pagination
func calculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// buildPaginatedResponse creates a paginated response
func buildPaginatedResponse(data interface{}, total, page, pageSize int) PaginatedResponse {
	totalPages := (total + pageSize - 1) / pageSize
	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	writeJSON(w, APIError{Error: message})
}

// contextWithTimeout creates a context with a default timeout
func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}

// parseBatterID parses the batter id path variable
func parseBatterID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("batter id cannot be empty")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid batter id: %s", raw)
	}
	return id, nil
}

// validatePageParams validates pagination parameters
func validatePageParams(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("invalid page: must be >= 1")
	}
	if pageSize < 1 || pageSize > 200 {
		return fmt.Errorf("invalid page_size: must be between 1 and 200")
	}
	return nil
}

// parseIntParam safely parses integer parameter
func parseIntParam(param string, defaultValue int) int {
	if param == "" {
		return defaultValue
	}
	if val, err := strconv.Atoi(param); err == nil {
		return val
	}
	return defaultValue
}

// parseFloatParam safely parses float parameter
func parseFloatParam(param string, defaultValue float64) float64 {
	if param == "" {
		return defaultValue
	}
	if val, err := strconv.ParseFloat(param, 64); err == nil && val > 0 {
		return val
	}
	return defaultValue
}

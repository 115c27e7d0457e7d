package main

import (
	"time"

	"cricket-scout/analysis"
	"cricket-scout/models"
)

// APIError represents an error response
type APIError struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// QueryParams holds common query parameters
type QueryParams struct {
	Page     int
	PageSize int
	Team     string
	Hand     string
	Sort     string
	Order    string
}

// BatterSummary is the list-view shape of a batter
type BatterSummary struct {
	BatterID int64       `json:"batter_id"`
	Name     string      `json:"name"`
	Team     string      `json:"team"`
	TeamRank *int        `json:"team_runs_rank,omitempty"`
	Hand     models.Hand `json:"batting_hand"`
}

// TeamSummary lists a team and its squad size
type TeamSummary struct {
	Name       string `json:"name"`
	NumBatters int    `json:"num_batters"`
}

// WriteupResponse is the scouting report payload
type WriteupResponse struct {
	ReportID    string                    `json:"report_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	BatterID    int64                     `json:"batter_id"`
	Name        string                    `json:"name"`
	BattingHand models.Hand               `json:"batting_hand"`
	Insights    []analysis.Insight        `json:"insights"`
	Text        string                    `json:"text"`
	WordCount   int                       `json:"word_count"`
	LineCount   int                       `json:"line_count"`
	Validation  analysis.ValidationResult `json:"validation"`
}

// OutliersResponse carries a batter's outlier breakdown
type OutliersResponse struct {
	BatterID  int64                   `json:"batter_id"`
	Name      string                  `json:"name"`
	Threshold float64                 `json:"threshold"`
	Length    analysis.OutlierResult  `json:"length"`
	Line      analysis.OutlierResult  `json:"line"`
}

// BowlerTypesResponse carries the per bowler type matchup table
type BowlerTypesResponse struct {
	BatterID int64                    `json:"batter_id"`
	Rows     []analysis.BowlerTypeRow `json:"rows"`
}

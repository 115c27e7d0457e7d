package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cricket-scout/models"
)

func TestParseQueryParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/batters", nil)

	params := parseQueryParams(r)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, "asc", params.Order)
	assert.Empty(t, params.Team)
	assert.Empty(t, params.Hand)
}

func TestParseQueryParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/batters?page=3&page_size=20&team=CSK&hand=LHB&sort=name&order=desc", nil)

	params := parseQueryParams(r)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, "CSK", params.Team)
	assert.Equal(t, "LHB", params.Hand)
	assert.Equal(t, "name", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestParseQueryParamsRejectsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/batters?page=-1&page_size=9999&order=sideways", nil)

	params := parseQueryParams(r)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, "asc", params.Order)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, calculateOffset(1, 50))
	assert.Equal(t, 50, calculateOffset(2, 50))
	assert.Equal(t, 40, calculateOffset(3, 20))
}

func TestBuildPaginatedResponse(t *testing.T) {
	response := buildPaginatedResponse([]string{"a", "b"}, 101, 2, 50)

	assert.Equal(t, 101, response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 50, response.PageSize)
	assert.Equal(t, 3, response.TotalPages)
}

func TestParseBatterID(t *testing.T) {
	id, err := parseBatterID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := parseBatterID(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestValidatePageParams(t *testing.T) {
	assert.NoError(t, validatePageParams(1, 50))
	assert.Error(t, validatePageParams(0, 50))
	assert.Error(t, validatePageParams(1, 0))
	assert.Error(t, validatePageParams(1, 201))
}

func TestParseIntParam(t *testing.T) {
	assert.Equal(t, 10, parseIntParam("", 10))
	assert.Equal(t, 25, parseIntParam("25", 10))
	assert.Equal(t, 10, parseIntParam("abc", 10))
}

func TestParseFloatParam(t *testing.T) {
	assert.Equal(t, 1.5, parseFloatParam("", 1.5))
	assert.Equal(t, 2.0, parseFloatParam("2.0", 1.5))
	assert.Equal(t, 1.5, parseFloatParam("-1", 1.5))
	assert.Equal(t, 1.5, parseFloatParam("junk", 1.5))
}

func testRecords() []models.BatterRecord {
	return []models.BatterRecord{
		models.NewBatterRecord(3, "C Batter", "MI", nil, models.RightHand, nil),
		models.NewBatterRecord(1, "A Batter", "CSK", nil, models.LeftHand, nil),
		models.NewBatterRecord(2, "B Batter", "CSK", nil, models.RightHand, nil),
	}
}

func TestFilterBattersByTeam(t *testing.T) {
	filtered := filterBatters(testRecords(), QueryParams{Team: "csk"})

	assert.Len(t, filtered, 2)
	for _, rec := range filtered {
		assert.Equal(t, "CSK", rec.Team)
	}
}

func TestFilterBattersByHand(t *testing.T) {
	filtered := filterBatters(testRecords(), QueryParams{Hand: "LHB"})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "A Batter", filtered[0].Name)
}

func TestSortBatters(t *testing.T) {
	records := testRecords()
	sortBatters(records, QueryParams{Sort: "name", Order: "asc"})
	assert.Equal(t, "A Batter", records[0].Name)
	assert.Equal(t, "C Batter", records[2].Name)

	sortBatters(records, QueryParams{Sort: "name", Order: "desc"})
	assert.Equal(t, "C Batter", records[0].Name)

	sortBatters(records, QueryParams{})
	assert.Equal(t, int64(1), records[0].BatterID)
	assert.Equal(t, int64(3), records[2].BatterID)
}

func TestToSummaries(t *testing.T) {
	summaries := toSummaries(testRecords())

	assert.Len(t, summaries, 3)
	assert.Equal(t, int64(3), summaries[0].BatterID)
	assert.Equal(t, "C Batter", summaries[0].Name)
	assert.Equal(t, "MI", summaries[0].Team)
	assert.Equal(t, models.RightHand, summaries[0].Hand)
}

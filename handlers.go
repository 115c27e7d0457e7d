package main

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cricket-scout/analysis"
	"cricket-scout/models"
	"cricket-scout/store"
)

const populationCacheKey = "population"

// population returns the resolved batter population, loading it from the
// store on a cache miss.
func (s *Server) population(r *http.Request) (*models.StatPopulation, error) {
	if cached, found := s.queryCache.Get(populationCacheKey); found {
		appMetrics.IncrementCacheHit()
		return cached.(*models.StatPopulation), nil
	}
	appMetrics.IncrementCacheMiss()

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	pop, err := s.store.LoadPopulation(ctx)
	if err != nil {
		return nil, err
	}
	s.queryCache.Set(populationCacheKey, pop, s.config.Cache.PopulationTTL)
	return pop, nil
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	apiInfo := map[string]interface{}{
		"service": "Cricket Scouting API",
		"version": "1.0.0",
		"status":  "online",
		"time":    time.Now().UTC(),
		"endpoints": map[string]interface{}{
			"health":  "/api/v1/health",
			"teams":   "/api/v1/teams",
			"batters": "/api/v1/batters",
			"zones":   "/api/v1/zones",
			"status":  "/api/v1/status",
			"metrics": "/api/v1/metrics",
		},
		"documentation": "Opposition batting analysis with outlier detection, scouting write-ups and wagon wheel charts",
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		apiInfo["status"] = "degraded"
		apiInfo["database"] = "disconnected"
	} else {
		apiInfo["database"] = "connected"
	}

	writeJSON(w, apiInfo)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"database": "connected",
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		health["database"] = "disconnected"
		health["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, health)
}

func (s *Server) apiStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"service": "Cricket Scouting API",
		"version": "1.0.0",
		"status":  "online",
		"time":    time.Now().UTC(),
	}

	pop, err := s.population(r)
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "disconnected"
		writeJSON(w, status)
		return
	}

	status["database"] = "connected"
	status["data"] = pop.Summary()
	writeJSON(w, status)
}

func (s *Server) getTeamsHandler(w http.ResponseWriter, r *http.Request) {
	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return
	}

	teams := pop.Teams()
	summaries := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		summaries = append(summaries, TeamSummary{
			Name:       team,
			NumBatters: len(pop.TeamBatters(team)),
		})
	}

	writeJSON(w, map[string]interface{}{
		"teams": summaries,
		"count": len(summaries),
	})
}

func (s *Server) getTeamBattersHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team := vars["team"]

	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return
	}

	records := pop.TeamBatters(team)
	if len(records) == 0 {
		writeError(w, "Team not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"team":    team,
		"batters": toSummaries(records),
		"count":   len(records),
	})
}

func (s *Server) getBattersHandler(w http.ResponseWriter, r *http.Request) {
	params := parseQueryParams(r)
	if err := validatePageParams(params.Page, params.PageSize); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return
	}

	records := filterBatters(pop.Records, params)
	sortBatters(records, params)

	total := len(records)
	offset := calculateOffset(params.Page, params.PageSize)
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}

	response := buildPaginatedResponse(toSummaries(records[offset:end]), total, params.Page, params.PageSize)
	writeJSON(w, response)
}

func (s *Server) getBatterHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.batterFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, rec)
}

func (s *Server) getZonesHandler(w http.ResponseWriter, r *http.Request) {
	hand := models.ParseHand(r.URL.Query().Get("hand"))
	writeJSON(w, map[string]interface{}{
		"batting_hand": hand,
		"zones":        models.ZoneMapping(hand),
	})
}

func (s *Server) getOutliersHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.batterFromRequest(w, r)
	if !ok {
		return
	}

	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return
	}

	threshold := parseFloatParam(r.URL.Query().Get("threshold"), s.config.Analysis.OutlierThreshold)
	outliers := analysis.DetectOutliers(pop, rec, threshold)

	writeJSON(w, OutliersResponse{
		BatterID:  rec.BatterID,
		Name:      rec.Name,
		Threshold: threshold,
		Length:    outliers.Length,
		Line:      outliers.Line,
	})
}

func (s *Server) getWriteupHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.batterFromRequest(w, r)
	if !ok {
		return
	}

	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return
	}

	writeup := analysis.GenerateWriteup(pop, rec, s.config.Analysis.OutlierThreshold)
	validation := analysis.ValidateWriteup(writeup,
		s.config.Analysis.MaxWriteupWords, s.config.Analysis.MaxWriteupLines)

	response := WriteupResponse{
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		BatterID:    writeup.BatterID,
		Name:        writeup.Name,
		BattingHand: writeup.Hand,
		Insights:    writeup.Insights,
		Text:        writeup.Text,
		WordCount:   writeup.WordCount,
		LineCount:   writeup.LineCount,
		Validation:  validation,
	}

	if !validation.Valid {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	writeJSON(w, response)
}

func (s *Server) getWagonWheelHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	batterID, err := parseBatterID(vars["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	counts, err := s.store.ZoneCounts(ctx, batterID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, "Batter not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, "Failed to query zone counts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, analysis.BuildWagonWheel(counts))
}

func (s *Server) getBowlerTypesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	batterID, err := parseBatterID(vars["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	exists, err := s.store.BatterExists(ctx, batterID)
	if err != nil {
		writeError(w, "Failed to query batter", http.StatusInternalServerError)
		return
	}
	if !exists {
		writeError(w, "Batter not found", http.StatusNotFound)
		return
	}

	stats, err := s.store.BowlerTypeStats(ctx, batterID)
	if err != nil {
		writeError(w, "Failed to query bowler types", http.StatusInternalServerError)
		return
	}

	writeJSON(w, BowlerTypesResponse{
		BatterID: batterID,
		Rows:     analysis.BuildBowlerTypeTable(stats),
	})
}

// batterFromRequest resolves the {id} path variable against the population.
func (s *Server) batterFromRequest(w http.ResponseWriter, r *http.Request) (models.BatterRecord, bool) {
	vars := mux.Vars(r)
	batterID, err := parseBatterID(vars["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return models.BatterRecord{}, false
	}

	pop, err := s.population(r)
	if err != nil {
		writeError(w, "Failed to load batters", http.StatusInternalServerError)
		return models.BatterRecord{}, false
	}

	rec, found := pop.ByID(batterID)
	if !found {
		writeError(w, "Batter not found", http.StatusNotFound)
		return models.BatterRecord{}, false
	}
	return rec, true
}

func toSummaries(records []models.BatterRecord) []BatterSummary {
	summaries := make([]BatterSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, BatterSummary{
			BatterID: rec.BatterID,
			Name:     rec.Name,
			Team:     rec.Team,
			TeamRank: rec.TeamRank,
			Hand:     rec.Hand,
		})
	}
	return summaries
}

func filterBatters(records []models.BatterRecord, params QueryParams) []models.BatterRecord {
	filtered := make([]models.BatterRecord, 0, len(records))
	for _, rec := range records {
		if params.Team != "" && !strings.EqualFold(rec.Team, params.Team) {
			continue
		}
		if params.Hand != "" && rec.Hand != models.ParseHand(params.Hand) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func sortBatters(records []models.BatterRecord, params QueryParams) {
	less := func(a, b models.BatterRecord) bool { return a.BatterID < b.BatterID }
	switch params.Sort {
	case "name":
		less = func(a, b models.BatterRecord) bool { return a.Name < b.Name }
	case "team":
		less = func(a, b models.BatterRecord) bool { return a.Team < b.Team }
	}

	sort.SliceStable(records, func(i, j int) bool {
		if params.Order == "desc" {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

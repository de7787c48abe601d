package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// Query parameters accepted by the ranking endpoints
const (
	paramSteel      = "steel"
	paramTop        = "top"
	paramElongation = "w_elong"
	paramResistance = "w_res"
	paramYield      = "w_ced"
	paramTime       = "w_time"
)

// RankingHandler serves rankings computed from a trial source.
// The source is read on every request so edits to the workbook are picked up.
type RankingHandler struct {
	source  loader.Source
	columns model.Columns
	weights model.Weights
	metrics *Metrics
	logger  *zap.Logger
}

// NewRankingHandler creates a handler with the default weights used when a request sets none
func NewRankingHandler(src loader.Source, cols model.Columns, weights model.Weights, metrics *Metrics, logger *zap.Logger) *RankingHandler {
	return &RankingHandler{
		source:  src,
		columns: cols,
		weights: weights,
		metrics: metrics,
		logger:  logger,
	}
}

// Scores returns every scored trial, score descending.
// GET /api/v1/scores?steel=&top=&w_elong=&w_res=&w_ced=&w_time=
func (h *RankingHandler) Scores(w http.ResponseWriter, r *http.Request) {
	result, ok := h.rank(w, r, "scores")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewRankingView(result))
}

// Best returns the best furnace per steel type.
// GET /api/v1/best?steel=&w_elong=&w_res=&w_ced=&w_time=
func (h *RankingHandler) Best(w http.ResponseWriter, r *http.Request) {
	result, ok := h.rank(w, r, "best")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, NewBestRankingView(result))
}

// Steels lists the distinct steel types.
// GET /api/v1/steels
func (h *RankingHandler) Steels(w http.ResponseWriter, r *http.Request) {
	steels, err := services.ListSteels(r.Context(), h.source, h.columns, h.logger)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if steels == nil {
		steels = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"steels": steels})
}

func (h *RankingHandler) rank(w http.ResponseWriter, r *http.Request, route string) (*services.RankResult, bool) {
	query := r.URL.Query()

	weights, err := ParseWeights(query, h.weights)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, false
	}

	opts := services.RankOptions{Steel: query.Get(paramSteel)}
	if top := query.Get(paramTop); top != "" {
		opts.Top, err = strconv.Atoi(top)
		if err != nil || opts.Top < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "top must be a non-negative integer"})
			return nil, false
		}
	}

	start := time.Now()
	result, err := services.RankFurnaces(r.Context(), h.source, h.columns, weights, opts, h.logger)
	h.metrics.rankDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}

	h.metrics.trialsScored.Set(float64(result.Total))
	h.metrics.steelsReported.Set(float64(len(result.Steels)))

	return result, true
}

// writeError maps service errors to status codes
func (h *RankingHandler) writeError(w http.ResponseWriter, err error) {
	var schemaErr *loader.SchemaError
	var unknownSteel *services.UnknownSteelError

	switch {
	case errors.As(err, &unknownSteel):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":  err.Error(),
			"steels": unknownSteel.Known,
		})
	case errors.As(err, &schemaErr):
		h.metrics.loadErrors.WithLabelValues("schema").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   err.Error(),
			"missing": schemaErr.Missing,
		})
	default:
		h.metrics.loadErrors.WithLabelValues("read").Inc()
		h.logger.Error("Failed to rank furnaces", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// ParseWeights overrides defaults with any weight parameters present in query
func ParseWeights(query url.Values, defaults model.Weights) (model.Weights, error) {
	weights := defaults
	targets := []struct {
		param string
		dst   *float64
	}{
		{paramElongation, &weights.Elongation},
		{paramResistance, &weights.Resistance},
		{paramYield, &weights.Yield},
		{paramTime, &weights.Time},
	}

	for _, t := range targets {
		raw := query.Get(t.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Weights{}, fmt.Errorf("%s must be a finite number, got %q", t.param, raw)
		}
		*t.dst = v
	}

	return weights, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

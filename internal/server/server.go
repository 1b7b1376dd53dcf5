// Package server exposes the correction pipeline and the custom-rule
// dictionary over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/dictionary"
	"github.com/vyakarni1/vyakarni/internal/highlight"
	"github.com/vyakarni1/vyakarni/internal/model"
	"github.com/vyakarni1/vyakarni/internal/pipeline"
)

// RebuildFunc reassembles the pipeline after the rule table changes.
type RebuildFunc func(ctx context.Context) (*pipeline.Pipeline, error)

// Server serves the correction API. The pipeline pointer is swapped
// wholesale on rule changes; requests in flight keep the pipeline they
// started with.
type Server struct {
	mu      sync.RWMutex
	pipe    *pipeline.Pipeline
	store   *dictionary.Store
	rebuild RebuildFunc
	log     *zap.Logger
}

// New creates a Server around an assembled pipeline.
func New(pipe *pipeline.Pipeline, store *dictionary.Store, rebuild RebuildFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{pipe: pipe, store: store, rebuild: rebuild, log: log}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/correct", s.handleCorrect)
	mux.HandleFunc("/api/v1/highlight", s.handleHighlight)
	mux.HandleFunc("/api/v1/dictionary-rule", s.handleRuleAdd)
	mux.HandleFunc("/api/v1/dictionary-rule/", s.handleRuleRemove)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) current() *pipeline.Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipe
}

// Reload swaps in a freshly assembled pipeline.
func (s *Server) Reload(ctx context.Context) error {
	if s.rebuild == nil {
		return nil
	}
	pipe, err := s.rebuild(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pipe = pipe
	s.mu.Unlock()
	return nil
}

type correctRequest struct {
	Text string `json:"text"`
}

func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) *model.Result {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return nil
	}
	var req correctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil
	}

	start := time.Now()
	res, err := s.current().Run(r.Context(), req.Text)
	if err != nil {
		var stageErr *pipeline.StageError
		switch {
		case errors.As(err, &stageErr):
			s.log.Error("pipeline stage failed",
				zap.Int("stage", stageErr.Index),
				zap.String("name", stageErr.Name),
				zap.Error(stageErr.Err))
			writeError(w, http.StatusBadGateway, "AI सेवा अनुपलब्ध: "+stageErr.Name)
		case errors.Is(err, context.Canceled):
			// client went away; nothing to write
		default:
			s.log.Error("pipeline failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "correction failed")
		}
		return nil
	}
	s.log.Info("correction served",
		zap.String("request_id", res.RequestID),
		zap.Int("corrections", len(res.Corrections)),
		zap.Duration("took", time.Since(start)))
	return res
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	res := s.runPipeline(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	res := s.runPipeline(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*model.Result
		Segments []model.Segment `json:"segments"`
	}{
		Result:   res,
		Segments: highlight.BuildSegments(res.Original, res.Corrections),
	})
}

type ruleRequest struct {
	Incorrect string `json:"incorrect"`
	Correct   string `json:"correct"`
}

func (s *Server) handleRuleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "rule store not configured")
		return
	}
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		strings.TrimSpace(req.Incorrect) == "" || strings.TrimSpace(req.Correct) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.store.Add(r.Context(), req.Incorrect, req.Correct); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRuleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "rule store not configured")
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/dictionary-rule/")
	incorrect, err := url.PathUnescape(raw)
	if err != nil || incorrect == "" {
		writeError(w, http.StatusBadRequest, "incorrect form is required")
		return
	}
	if err := s.store.Remove(r.Context(), incorrect); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "redis": "ok"}
	code := http.StatusOK
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, status)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

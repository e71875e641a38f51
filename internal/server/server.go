// Package server implements the HTTP and JSON-RPC job service around the
// annealing solver: start a job, poll its progress, cancel it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/copyleftdev/TUNNL/internal/config"
	"github.com/copyleftdev/TUNNL/internal/optimization"
	"github.com/copyleftdev/TUNNL/internal/optimization/annealing"
)

// jobState tracks one annealing job. Guarded by Server.jobsMu.
type jobState struct {
	ID          string
	Status      string // "pending", "running", "completed", "failed", "cancelled"
	StartTime   time.Time
	EndTime     *time.Time
	Progress    float64
	LastReport  *optimization.Progress
	Result      *optimization.Result
	Cancel      context.CancelFunc
	LastUpdated time.Time
}

// Server manages annealing jobs and serves their REST and JSON-RPC surface.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics

	// Registry backs this server's /metrics endpoint
	registry *prometheus.Registry

	jobs   map[string]*jobState
	jobsMu sync.RWMutex
}

// NewServer creates a new server instance with the given config and logger.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  newMetrics(registry),
		registry: registry,
		jobs:     make(map[string]*jobState),
	}
}

// RegisterRoutes mounts the job API on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/anneal", s.handleStart)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/anneal/{id}", s.handleCancel)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// startRequest carries the job parameters; absent fields fall back to the
// configured annealing defaults.
type startRequest struct {
	Cities            *int     `json:"cities,omitempty"`
	MaxIterations     *int     `json:"max_iterations,omitempty"`
	StartTemperature  *float64 `json:"start_temperature,omitempty"`
	Alpha             *float64 `json:"alpha,omitempty"`
	TunnelProbability *float64 `json:"tunnel_probability,omitempty"`
	Seed              *int64   `json:"seed,omitempty"`
	Restarts          *int     `json:"restarts,omitempty"`
}

// jobConfig merges the request with the configured defaults.
func (s *Server) jobConfig(req startRequest) (optimization.Config, int, error) {
	cfg := s.cfg.AnnealingDefaults()
	restarts := s.cfg.Annealing.Restarts

	if req.Cities != nil {
		cfg.Cities = *req.Cities
	}
	if req.MaxIterations != nil {
		cfg.MaxIterations = *req.MaxIterations
	}
	if req.StartTemperature != nil {
		cfg.StartTemperature = *req.StartTemperature
	}
	if req.Alpha != nil {
		cfg.Alpha = *req.Alpha
	}
	if req.TunnelProbability != nil {
		cfg.TunnelProbability = *req.TunnelProbability
	}
	if req.Seed != nil {
		cfg.RandomSeed = *req.Seed
	}
	if req.Restarts != nil {
		restarts = *req.Restarts
	}
	if restarts < 1 {
		return cfg, 0, optimization.NewInvalidConfiguration("restarts must be at least 1")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, 0, err
	}
	return cfg, restarts, nil
}

// startJob validates the request, registers the job and launches it.
func (s *Server) startJob(req startRequest) (map[string]interface{}, error) {
	cfg, restarts, err := s.jobConfig(req)
	if err != nil {
		return nil, err
	}

	id := fmt.Sprintf("job_%d", time.Now().UnixNano())
	ctx, cancel := context.WithCancel(context.Background())

	state := &jobState{
		ID:          id,
		Status:      "pending",
		StartTime:   time.Now(),
		Cancel:      cancel,
		LastUpdated: time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[id] = state
	s.jobsMu.Unlock()

	s.metrics.jobsStarted.Inc()

	go s.runJob(ctx, id, cfg, restarts)

	return map[string]interface{}{
		"job_id": id,
		"status": "pending",
	}, nil
}

// runJob executes one annealing job and records its outcome.
func (s *Server) runJob(ctx context.Context, id string, cfg optimization.Config, restarts int) {
	s.setJobStatus(id, "running")
	s.metrics.jobsRunning.Inc()
	defer s.metrics.jobsRunning.Dec()

	maxIter := cfg.MaxIterations
	cfg.Observer = optimization.ObserverFunc(func(p optimization.Progress) {
		s.metrics.bestError.Set(p.BestError)

		s.jobsMu.Lock()
		defer s.jobsMu.Unlock()
		state, ok := s.jobs[id]
		if !ok {
			return
		}
		report := p
		state.LastReport = &report
		state.Progress = float64(p.Iteration) / float64(maxIter)
		state.LastUpdated = time.Now()
	})

	start := time.Now()
	result, err := annealing.SolveParallel(ctx, cfg, restarts)
	elapsed := time.Since(start)

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	state, ok := s.jobs[id]
	if !ok {
		return
	}
	if state.Status == "cancelled" {
		s.metrics.jobsCompleted.WithLabelValues("cancelled").Inc()
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			state.Status = "cancelled"
			s.metrics.jobsCompleted.WithLabelValues("cancelled").Inc()
		} else {
			s.logger.Error("annealing job failed",
				zap.String("job_id", id),
				zap.Error(err),
			)
			state.Status = "failed"
			s.metrics.jobsCompleted.WithLabelValues("failed").Inc()
		}
	} else {
		state.Status = "completed"
		state.Result = result
		state.Progress = 1.0
		s.metrics.jobsCompleted.WithLabelValues("completed").Inc()
		s.metrics.solveDuration.Observe(elapsed.Seconds())
		s.logger.Info("annealing job completed",
			zap.String("job_id", id),
			zap.Float64("best_error", result.BestSolution.Error),
			zap.Int("iterations", result.Iterations),
			zap.String("reason", string(result.Reason)),
			zap.Duration("elapsed", elapsed),
		)
	}

	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now
}

// setJobStatus moves a pending job to the given status. Jobs already in a
// terminal state (for example cancelled before the goroutine started) are
// left untouched.
func (s *Server) setJobStatus(id, status string) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	if state, ok := s.jobs[id]; ok && state.Status == "pending" {
		state.Status = status
		state.LastUpdated = time.Now()
	}
}

// jobStatus builds the status payload for one job.
func (s *Server) jobStatus(id string) (map[string]interface{}, error) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	state, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job not found")
	}

	response := map[string]interface{}{
		"job_id":      state.ID,
		"status":      state.Status,
		"progress":    state.Progress,
		"start_time":  state.StartTime.Format(time.RFC3339),
		"last_update": state.LastUpdated.Format(time.RFC3339),
	}

	if state.EndTime != nil {
		response["end_time"] = state.EndTime.Format(time.RFC3339)
	}

	if state.LastReport != nil {
		response["last_report"] = map[string]interface{}{
			"iteration":     state.LastReport.Iteration,
			"jump_distance": state.LastReport.JumpDistance,
			"temperature":   state.LastReport.Temperature,
			"best_error":    state.LastReport.BestError,
		}
	}

	if state.Result != nil {
		response["result"] = map[string]interface{}{
			"best_tour":              state.Result.BestSolution.Tour,
			"best_error":             state.Result.BestSolution.Error,
			"iterations":             state.Result.Iterations,
			"reason":                 string(state.Result.Reason),
			"candidate_error_mean":   state.Result.CandidateErrorMean,
			"candidate_error_stddev": state.Result.CandidateErrorStdDev,
		}
	}

	return response, nil
}

// cancelJob cancels a running job.
func (s *Server) cancelJob(id string) error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	state, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("job not found")
	}

	switch state.Status {
	case "completed", "failed", "cancelled":
		return fmt.Errorf("cannot cancel job with status: %s", state.Status)
	}

	if state.Cancel != nil {
		state.Cancel()
	}

	state.Status = "cancelled"
	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now

	s.logger.Info("annealing job cancelled", zap.String("job_id", id))
	return nil
}

// Close cancels all running jobs.
func (s *Server) Close() error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	for _, job := range s.jobs {
		if job.Cancel != nil {
			job.Cancel()
		}
	}
	return nil
}

// handleStart handles POST /api/v1/anneal.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.startJob(req)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(result)
}

// handleStatus handles GET /api/v1/status/{id}.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing job ID", http.StatusBadRequest)
		return
	}

	result, err := s.jobStatus(id)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// handleCancel handles DELETE /api/v1/anneal/{id}.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing job ID", http.StatusBadRequest)
		return
	}

	err := s.cancelJob(id)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "cancellation requested",
	})
}

// handleJSONRPC handles JSON-RPC 2.0 requests.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, -32700, "Parse error", nil)
		return
	}

	if request.JSONRPC != "2.0" {
		s.respondWithError(w, -32600, "Invalid Request", nil)
		return
	}

	var result interface{}
	var err error

	switch request.Method {
	case "anneal.start":
		var req startRequest
		if len(request.Params) > 0 {
			if err := json.Unmarshal(request.Params, &req); err != nil {
				s.respondWithError(w, -32602, "Invalid params", request.ID)
				return
			}
		}
		result, err = s.startJob(req)
	case "anneal.status":
		var req struct {
			JobID string `json:"job_id"`
		}
		if err := json.Unmarshal(request.Params, &req); err != nil || req.JobID == "" {
			s.respondWithError(w, -32602, "Invalid params", request.ID)
			return
		}
		result, err = s.jobStatus(req.JobID)
	case "anneal.cancel":
		var req struct {
			JobID string `json:"job_id"`
		}
		if err := json.Unmarshal(request.Params, &req); err != nil || req.JobID == "" {
			s.respondWithError(w, -32602, "Invalid params", request.ID)
			return
		}
		err = s.cancelJob(req.JobID)
		result = map[string]string{"status": "cancellation requested"}
	default:
		s.respondWithError(w, -32601, "Method not found", request.ID)
		return
	}

	if err != nil {
		s.respondWithError(w, -32000, err.Error(), request.ID)
		return
	}

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// respondWithError sends a JSON-RPC 2.0 error response.
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Error("rpc request error",
		zap.Int("code", code),
		zap.String("message", message),
	)

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

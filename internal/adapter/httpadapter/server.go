package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/emissions-dashboard/internal/dashboard"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dashboard is the set of interactions the HTTP API exposes.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Sectors() []string
	Fuels() []string
	States() []string
	SectorMap(ctx context.Context, sector string) domain.MapFrame
	FuelMap(ctx context.Context, fuel string) domain.MapFrame
	RiskMap(ctx context.Context, sector string) domain.MapFrame
	StateRisk(ctx context.Context, state string) (dashboard.StateRisk, error)
	Profile(ctx context.Context, state string) (domain.StateProfile, error)
	Recommend(ctx context.Context, income float64) (dashboard.RecommendResult, error)
}

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, dash Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/sectors", s.handleList(dash.Sectors))
	mux.HandleFunc("GET /api/fuels", s.handleList(dash.Fuels))
	mux.HandleFunc("GET /api/states", s.handleList(dash.States))
	mux.HandleFunc("GET /api/maps/sector", s.handleMap("sector", dash.SectorMap))
	mux.HandleFunc("GET /api/maps/fuel", s.handleMap("fuel", dash.FuelMap))
	mux.HandleFunc("GET /api/maps/risk", s.handleMap("sector", dash.RiskMap))
	mux.HandleFunc("GET /api/states/{state}", s.handleProfile)
	mux.HandleFunc("GET /api/states/{state}/risk", s.handleStateRisk)
	mux.HandleFunc("GET /api/recommendation", s.handleRecommend)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleList(list func() []string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sharedobs.WriteJSON(w, http.StatusOK, list())
	}
}

func (s *Server) handleMap(param string, render func(context.Context, string) domain.MapFrame) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get(param))
		if category == "" {
			writeError(w, http.StatusBadRequest, "missing "+param+" parameter")
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, render(r.Context(), category))
	}
}

func (s *Server) handleStateRisk(w http.ResponseWriter, r *http.Request) {
	risk, err := s.dash.StateRisk(r.Context(), r.PathValue("state"))
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, risk)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.dash.Profile(r.Context(), r.PathValue("state"))
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, profile)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("income"))
	income, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(income) || math.IsInf(income, 0) {
		writeError(w, http.StatusBadRequest, "income must be a number")
		return
	}

	result, err := s.dash.Recommend(r.Context(), income)
	if errors.Is(err, dashboard.ErrIncomeTooLow) || errors.Is(err, dashboard.ErrInvalidIncome) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("recommendation failed", "error", err, "income", income)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) writeStateError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownState) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("state lookup failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}

package routes

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/api/handlers"
	"github.com/udhe/healthintelligence/backend/internal/api/middleware"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	ingestionHandler  *handlers.IngestionHandler
	analyticsHandler  *handlers.AnalyticsHandler
	predictionHandler *handlers.PredictionHandler
	wardRiskHandler   *handlers.WardRiskHandler
	statusHandler     *handlers.StatusHandler
	ambulanceHandler  *handlers.AmbulanceHandler
	reportHandler     *handlers.ReportHandler
	sseHandler        *handlers.SSEHandler
	wsHandler         *handlers.WSHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	logger          zerolog.Logger
}

// NewRouter creates a new router
func NewRouter(
	ingestionHandler *handlers.IngestionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	predictionHandler *handlers.PredictionHandler,
	wardRiskHandler *handlers.WardRiskHandler,
	statusHandler *handlers.StatusHandler,
	ambulanceHandler *handlers.AmbulanceHandler,
	reportHandler *handlers.ReportHandler,
	sseHandler *handlers.SSEHandler,
	wsHandler *handlers.WSHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		ingestionHandler:  ingestionHandler,
		analyticsHandler:  analyticsHandler,
		predictionHandler: predictionHandler,
		wardRiskHandler:   wardRiskHandler,
		statusHandler:     statusHandler,
		ambulanceHandler:  ambulanceHandler,
		reportHandler:     reportHandler,
		sseHandler:        sseHandler,
		wsHandler:         wsHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		logger:          logger,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Ingestion endpoints
	r.mux.HandleFunc("POST /api/ingest/reports", r.ingestionHandler.IngestReport)
	r.mux.HandleFunc("POST /api/ingest/transactions", r.ingestionHandler.IngestTransaction)
	r.mux.HandleFunc("GET /api/logs/recent", r.ingestionHandler.RecentLogs)

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/outbreaks", r.analyticsHandler.GetOutbreaks)
	r.mux.HandleFunc("GET /api/risk/maternal", r.analyticsHandler.GetMaternalRisk)

	// Capacity prediction endpoints
	r.mux.HandleFunc("GET /api/predictions/facilities", r.predictionHandler.GetAllForecasts)
	r.mux.HandleFunc("GET /api/predictions/facilities/{id}/beds", r.predictionHandler.GetBedForecast)
	r.mux.HandleFunc("GET /api/predictions/facilities/{id}/icu", r.predictionHandler.GetICUForecast)

	// Ward risk endpoints
	r.mux.HandleFunc("GET /api/risk/wards", r.wardRiskHandler.GetAllWards)
	r.mux.HandleFunc("GET /api/risk/wards/critical", r.wardRiskHandler.GetCriticalWards)
	r.mux.HandleFunc("GET /api/risk/wards/{ward}", r.wardRiskHandler.GetWard)

	// Facility status endpoints
	r.mux.HandleFunc("POST /api/facility-status", r.statusHandler.ReportStatus)
	r.mux.HandleFunc("GET /api/facility-status/totals", r.statusHandler.GetTotals)
	r.mux.HandleFunc("GET /api/facility-status/{id}", r.statusHandler.GetStatus)

	// Ambulance endpoints
	r.mux.HandleFunc("POST /api/ambulances", r.ambulanceHandler.UpdateAmbulance)
	r.mux.HandleFunc("GET /api/ambulances", r.ambulanceHandler.ListAmbulances)
	r.mux.HandleFunc("GET /api/ambulances/nearest", r.ambulanceHandler.GetNearest)

	// Composite city report
	r.mux.HandleFunc("GET /api/reports/city", r.reportHandler.GetCityReport)

	// Live feeds
	r.mux.HandleFunc("GET /api/stream/facilities/{id}", r.sseHandler.StreamFacilityEvents)
	r.mux.HandleFunc("GET /ws/logs", r.wsHandler.StreamLogs)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(r.logger)(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}

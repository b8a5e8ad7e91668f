package httpapi

import (
	"net/http"

	"salespoint/export"
	"salespoint/metrics"
	"salespoint/models"
	"salespoint/service"

	"github.com/go-chi/chi/v5"
)

// TeamDirectory resolves the teams the API serves
type TeamDirectory interface {
	HasTeam(team models.Team) bool
	TeamLabel(team models.Team) string
}

// Services bundles everything the handlers call into
type Services struct {
	Teams      TeamDirectory
	Clock      service.Clock
	Entries    service.EntryService
	Settings   service.SettingsService
	Rollup     service.MonthlyRollupService
	Dashboards service.DashboardService
	SmartInput service.SmartInputService
	Coaching   service.CoachingService
	Renderer   *export.ReportRenderer
	Metrics    *metrics.Metrics
}

type handler struct {
	Services
}

// NewRouter builds the HTTP surface of the pacing tool
func NewRouter(svc Services) http.Handler {
	if svc.Renderer == nil {
		svc.Renderer = export.NewReportRenderer(nil)
	}
	h := &handler{Services: svc}

	mux := chi.NewRouter()
	mux.Use(RequestID, Logger(svc.Metrics))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if svc.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	mux.Route("/api/teams/{team}", func(r chi.Router) {
		r.Use(h.requireTeam)

		r.Get("/dashboard", h.getDashboard)

		r.Get("/entries", h.getEntries)
		r.Post("/entries", h.recordEntry)
		r.Delete("/entries/{checkpoint}", h.deleteEntry)
		r.Post("/reset", h.resetDay)

		r.Get("/months/{month}/progress", h.getMonthlyProgress)
		r.Put("/months/{month}/progress", h.overrideMonthlyProgress)
		r.Delete("/months/{month}/progress", h.clearMonthlyProgress)

		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.saveSettings)
		r.Post("/settings/weights/reset", h.resetWeights)
		r.Put("/settings/weights/{checkpoint}", h.setWeight)
		r.Put("/settings/goals/{key}", h.setCoreGoal)
		r.Put("/settings/month-info/{key}", h.setMonthInfo)
		r.Post("/settings/products", h.addProduct)
		r.Put("/settings/products/{id}", h.updateProduct)
		r.Delete("/settings/products/{id}", h.removeProduct)

		r.Get("/export/summary.csv", h.exportSummaryCSV)
		r.Get("/export/detail.csv", h.exportDetailCSV)
		r.Get("/export/report.png", h.exportReportPNG)

		r.Post("/smart-input", h.smartInput)
		r.Post("/coaching", h.coaching)
	})

	return mux
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salespoint/export"
	"salespoint/models"
	"salespoint/service"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func (h *handler) requireTeam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		team := models.Team(chi.URLParam(r, "team"))
		if h.Teams != nil && !h.Teams.HasTeam(team) {
			writeError(w, r, fmt.Errorf("%w: %s", models.ErrUnknownTeam, team))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func teamParam(r *http.Request) models.Team {
	return models.Team(chi.URLParam(r, "team"))
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today
func (h *handler) dateParam(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.Clock.Today(), true
	}
	date, err := service.ParseDate(raw, h.Clock.Location())
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func monthParam(r *http.Request) (models.YearMonth, bool) {
	month, err := models.ParseYearMonth(chi.URLParam(r, "month"))
	return month, err == nil
}

func checkpointParam(r *http.Request) (models.Checkpoint, bool) {
	c, err := models.ParseCheckpoint(chi.URLParam(r, "checkpoint"))
	return c, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "body", "invalid JSON body")
		return false
	}
	return true
}

type valueRequest struct {
	Value *float64 `json:"value"`
}

type productRequest struct {
	Name string `json:"name"`
	Goal int    `json:"goal"`
}

type entryResponse struct {
	Entries  []models.CheckpointEntry `json:"entries"`
	Replaced bool                     `json:"replaced"`
	Notice   string                   `json:"notice,omitempty"`
}

func newEntryResponse(result *service.EntryResult) entryResponse {
	entries := append([]models.CheckpointEntry{}, result.Record.Entries...)
	models.SortEntries(entries)
	return entryResponse{Entries: entries, Replaced: result.Replaced, Notice: result.Notice}
}

func (h *handler) loadDashboard(w http.ResponseWriter, r *http.Request) (*models.Dashboard, bool) {
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return nil, false
	}

	opts := service.DashboardOptions{
		Scope: models.SimulationScope{Product: r.URL.Query().Get("product")},
	}
	if raw := r.URL.Query().Get("adjust"); raw != "" {
		adjust, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(w, "adjust", "adjust must be a number")
			return nil, false
		}
		opts.AdjustmentPerHour = adjust
	}

	dashboard, err := h.Dashboards.GetDashboard(r.Context(), teamParam(r), date, opts)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return dashboard, true
}

func (h *handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *handler) getEntries(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return
	}
	entries, err := h.Entries.GetEntries(r.Context(), teamParam(r), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *handler) recordEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return
	}
	var entry models.CheckpointEntry
	if !decodeBody(w, r, &entry) {
		return
	}
	result, err := h.Entries.RecordEntry(r.Context(), teamParam(r), date, entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(result))
}

func (h *handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	checkpoint, ok := checkpointParam(r)
	if !ok {
		badRequest(w, "checkpoint", "unknown reporting time")
		return
	}
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return
	}
	result, err := h.Entries.DeleteEntry(r.Context(), teamParam(r), date, checkpoint)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(result))
}

func (h *handler) resetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return
	}
	result, err := h.Entries.ResetDay(r.Context(), teamParam(r), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryResponse(result))
}

func (h *handler) getMonthlyProgress(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		badRequest(w, "month", "month must be YYYY-MM")
		return
	}

	// Product goals come from the settings in effect at the end of the month, or today
	asOf := month.FirstDay(h.Clock.Location()).AddDate(0, 1, -1)
	if today := h.Clock.Today(); today.Before(asOf) {
		asOf = today
	}
	settings, err := h.Settings.GetSettings(r.Context(), teamParam(r), asOf)
	if err != nil {
		writeError(w, r, err)
		return
	}

	progress, err := h.Rollup.Rollup(r.Context(), teamParam(r), month, settings.ProductGoals)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *handler) overrideMonthlyProgress(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		badRequest(w, "month", "month must be YYYY-MM")
		return
	}
	var snapshot models.MonthlyProgressSnapshot
	if !decodeBody(w, r, &snapshot) {
		return
	}
	if err := h.Rollup.Override(r.Context(), teamParam(r), month, snapshot); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearMonthlyProgress(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		badRequest(w, "month", "month must be YYYY-MM")
		return
	}
	if err := h.Rollup.ClearOverride(r.Context(), teamParam(r), month); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeSettings(w http.ResponseWriter, r *http.Request, settings *models.TeamSettings, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(r)
	if !ok {
		badRequest(w, "date", "date must be YYYY-MM-DD")
		return
	}
	settings, err := h.Settings.GetSettings(r.Context(), teamParam(r), date)
	h.writeSettings(w, r, settings, err)
}

func (h *handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.TeamSettings
	if !decodeBody(w, r, &settings) {
		return
	}
	saved, err := h.Settings.SaveSettings(r.Context(), teamParam(r), settings)
	h.writeSettings(w, r, saved, err)
}

func (h *handler) resetWeights(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.ResetWeights(r.Context(), teamParam(r))
	h.writeSettings(w, r, settings, err)
}

func (h *handler) decodeValue(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req valueRequest
	if !decodeBody(w, r, &req) {
		return 0, false
	}
	if req.Value == nil {
		badRequest(w, "value", "value is required")
		return 0, false
	}
	return *req.Value, true
}

func (h *handler) setWeight(w http.ResponseWriter, r *http.Request) {
	checkpoint, ok := checkpointParam(r)
	if !ok {
		badRequest(w, "checkpoint", "unknown reporting time")
		return
	}
	value, ok := h.decodeValue(w, r)
	if !ok {
		return
	}
	settings, err := h.Settings.SetWeight(r.Context(), teamParam(r), checkpoint, value)
	h.writeSettings(w, r, settings, err)
}

func (h *handler) setCoreGoal(w http.ResponseWriter, r *http.Request) {
	value, ok := h.decodeValue(w, r)
	if !ok {
		return
	}
	key := service.CoreGoalKey(chi.URLParam(r, "key"))
	settings, err := h.Settings.SetCoreGoal(r.Context(), teamParam(r), key, value)
	h.writeSettings(w, r, settings, err)
}

func (h *handler) setMonthInfo(w http.ResponseWriter, r *http.Request) {
	value, ok := h.decodeValue(w, r)
	if !ok {
		return
	}
	key := service.MonthInfoKey(chi.URLParam(r, "key"))
	settings, err := h.Settings.SetMonthInfoOverride(r.Context(), teamParam(r), key, int(value))
	h.writeSettings(w, r, settings, err)
}

func (h *handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	settings, err := h.Settings.AddProductGoal(r.Context(), teamParam(r), req.Name, req.Goal)
	h.writeSettings(w, r, settings, err)
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "id", "product id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	settings, err := h.Settings.UpdateProductGoal(r.Context(), teamParam(r), id, req.Name, req.Goal)
	h.writeSettings(w, r, settings, err)
}

func (h *handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	settings, err := h.Settings.RemoveProductGoal(r.Context(), teamParam(r), id)
	h.writeSettings(w, r, settings, err)
}

func attachmentName(dashboard *models.Dashboard, kind, ext string) string {
	return fmt.Sprintf("salespoint-%s-%s-%s.%s", dashboard.Team, kind, service.DateKey(dashboard.Date), ext)
}

func (h *handler) exportCSV(w http.ResponseWriter, r *http.Request, kind string, write func(*bytes.Buffer, *models.Dashboard) error) {
	dashboard, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, dashboard); err != nil {
		writeError(w, r, fmt.Errorf("failed to write %s csv: %w", kind, err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(dashboard, kind, "csv")))
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) exportSummaryCSV(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, r, "summary", func(buf *bytes.Buffer, d *models.Dashboard) error {
		return export.WriteSummaryCSV(buf, d)
	})
}

func (h *handler) exportDetailCSV(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, r, "detail", func(buf *bytes.Buffer, d *models.Dashboard) error {
		return export.WriteDetailCSV(buf, d)
	})
}

func (h *handler) exportReportPNG(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	png, err := h.Renderer.Render(dashboard)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to render report: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachmentName(dashboard, "report", "png")))
	_, _ = w.Write(png)
}

type smartInputRequest struct {
	Text string `json:"text"`
}

func (h *handler) smartInput(w http.ResponseWriter, r *http.Request) {
	var req smartInputRequest
	if !decodeBody(w, r, &req) {
		return
	}
	draft, err := h.SmartInput.ParseReport(r.Context(), teamParam(r), req.Text)
	if h.Metrics != nil && strings.TrimSpace(req.Text) != "" {
		h.Metrics.ObserveAI("smart_input", err)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
}

func (h *handler) coaching(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	team := teamParam(r)
	label := string(team)
	if h.Teams != nil {
		label = h.Teams.TeamLabel(team)
	}

	advice, err := h.Coaching.GenerateCoaching(r.Context(), dashboard, label)
	if h.Metrics != nil {
		h.Metrics.ObserveAI("coaching", err)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

package analytichttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/salespulse/salespulse/internal/analytics"
	"github.com/salespulse/salespulse/internal/analytics/export"
	"github.com/salespulse/salespulse/internal/analytics/svg"
	"github.com/salespulse/salespulse/internal/analytics/ui"
	"github.com/salespulse/salespulse/internal/imgshare"
	"github.com/salespulse/salespulse/internal/view"
)

const requestTimeout = 10 * time.Second

// maxUploadBytes bounds the chart image payload accepted for download/share.
const maxUploadBytes = 4 << 20

// maxRank caps the top-N product ranking, both for request parameters and the
// configured default.
const maxRank = 50

// DashboardService defines the aggregate pipeline contract used by the handler.
type DashboardService interface {
	BuildDashboard(ctx context.Context, rank int) (*analytics.Dashboard, error)
	ListTables(ctx context.Context) ([]string, error)
}

// ShareStore keeps uploaded chart images retrievable by token.
type ShareStore interface {
	Put(ctx context.Context, img imgshare.Image) (string, error)
	Get(ctx context.Context, token string) (imgshare.Image, error)
}

// Handler coordinates HTTP requests for the sales dashboard.
type Handler struct {
	logger    *slog.Logger
	service   DashboardService
	templates *view.Engine
	line      ui.LineRenderer
	bar       ui.BarRenderer
	pie       ui.PieRenderer
	heat      ui.HeatmapRenderer
	shares    ShareStore
	validate  *validator.Validate
	csvPool   sync.Pool
	rank      int
}

// NewHandler constructs the dashboard HTTP handler. defaultRank is the top-N
// size used when the request does not override it.
func NewHandler(logger *slog.Logger, service DashboardService, templates *view.Engine, line ui.LineRenderer, bar ui.BarRenderer, pie ui.PieRenderer, heat ui.HeatmapRenderer, shares ShareStore, defaultRank int) *Handler {
	if defaultRank <= 0 {
		defaultRank = 10
	}
	if defaultRank > maxRank {
		defaultRank = maxRank
	}
	h := &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		line:      line,
		bar:       bar,
		pie:       pie,
		heat:      heat,
		shares:    shares,
		validate:  validator.New(),
		rank:      defaultRank,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

type dashboardQuery struct {
	Granularity string `validate:"omitempty,oneof=yearly quarterly monthly daily"`
	Rank        int    `validate:"gte=1,lte=50"`
}

func (h *Handler) parseFilters(r *http.Request) (ui.DashboardFilters, error) {
	q := dashboardQuery{
		Granularity: strings.TrimSpace(r.URL.Query().Get("granularity")),
		Rank:        h.rank,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("rank")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return ui.DashboardFilters{}, validationError{field: "rank"}
		}
		q.Rank = value
	}
	if err := h.validate.Struct(q); err != nil {
		return ui.DashboardFilters{}, validationError{field: "query"}
	}

	kind := analytics.PeriodMonthly
	if q.Granularity != "" {
		parsed, err := analytics.ParsePeriodKind(q.Granularity)
		if err != nil {
			return ui.DashboardFilters{}, validationError{field: "granularity"}
		}
		kind = parsed
	}
	return ui.DashboardFilters{Granularity: kind, Rank: q.Rank}, nil
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		h.handleFilterError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.BuildDashboard(ctx, filters.Rank)
	if err != nil {
		h.handleServerError(w, "build dashboard", err)
		return
	}

	vm, err := h.buildViewModel(filters, data)
	if err != nil {
		h.handleServerError(w, "render charts", err)
		return
	}

	viewData := view.TemplateData{
		Title:       "Sales Dashboard",
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) buildViewModel(filters ui.DashboardFilters, data *analytics.Dashboard) (ui.DashboardViewModel, error) {
	if h.line == nil || h.bar == nil || h.pie == nil || h.heat == nil {
		return ui.DashboardViewModel{}, fmt.Errorf("svg renderer missing")
	}
	vm := ui.DashboardViewModel{
		Filters:     filters,
		KPI:         ui.ToKPI(data.KPI),
		TopProducts: ui.ToRankedProducts(data.TopProducts),
		Tables:      data.Tables,
	}

	topSeries := make([]float64, 0, len(data.TopProducts))
	topLabels := make([]string, 0, len(data.TopProducts))
	for _, product := range data.TopProducts {
		topSeries = append(topSeries, product.Total)
		topLabels = append(topLabels, product.Name)
	}
	if len(topSeries) == 0 {
		topSeries = []float64{0}
		topLabels = []string{"No products"}
	}
	topSVG, err := h.bar.HBars(svg.DefaultWidth, svg.DefaultHeight, topSeries, topLabels, svg.BarOpts{
		Title:       fmt.Sprintf("Top %d Selling Products", filters.Rank),
		Description: "Best sellers ranked by total sales",
	})
	if err != nil {
		return ui.DashboardViewModel{}, err
	}
	vm.TopSVG = topSVG

	trendSVG, err := h.renderTrend(filters.Granularity, data)
	if err != nil {
		return ui.DashboardViewModel{}, err
	}
	vm.TrendSVG = trendSVG

	yearSeries, yearLabels := ui.TrendSeries(data.Yearly)
	pieSVG, err := h.pie.Pie(svg.DefaultHeight, yearSeries, yearLabels, svg.PieOpts{
		Title:       "Yearly Sales Distribution",
		Description: "Share of total sales per year",
	})
	if err != nil {
		return ui.DashboardViewModel{}, err
	}
	vm.PieSVG = pieSVG

	rows, cols := ui.HeatmapGrid(data.Heatmap)
	heatSVG, err := h.heat.Heatmap(svg.DefaultWidth, svg.DefaultHeight+60, rows, cols, data.Heatmap.Values, svg.HeatmapOpts{
		Title:       "Sales Heat Map",
		Description: "Total sales by month and year",
	})
	if err != nil {
		return ui.DashboardViewModel{}, err
	}
	vm.HeatmapSVG = heatSVG

	return vm, nil
}

func (h *Handler) renderTrend(kind analytics.PeriodKind, data *analytics.Dashboard) (template.HTML, error) {
	title := fmt.Sprintf("Sales Trend (%s)", kind)
	switch kind {
	case analytics.PeriodDaily:
		series, overlay, labels := ui.DailySeries(data.Daily)
		return h.line.Line(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.LineOpts{
			Title:       title,
			Description: "Daily sales with 30-day moving average",
			Overlay:     overlay,
		})
	case analytics.PeriodYearly:
		series, labels := ui.TrendSeries(data.Yearly)
		return h.bar.Bars(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.BarOpts{
			Title:       title,
			Description: "Total sales per year",
		})
	case analytics.PeriodQuarterly:
		series, labels := ui.TrendSeries(data.Quarterly)
		return h.line.Line(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.LineOpts{
			Title:       title,
			Description: "Total sales per quarter",
			ShowDots:    true,
		})
	case analytics.PeriodMonthly:
		series, labels := ui.TrendSeries(data.Monthly)
		return h.line.Line(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.LineOpts{
			Title:       title,
			Description: "Total sales per month",
			ShowDots:    true,
		})
	default:
		return "", fmt.Errorf("%w: %d", analytics.ErrUnknownPeriod, kind)
	}
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		h.handleFilterError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.BuildDashboard(ctx, filters.Rank)
	if err != nil {
		h.handleServerError(w, "build dashboard", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteKPICSV(buf, data.KPI); err != nil {
		h.handleServerError(w, "write kpi csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteTrendCSV(buf, "Year", data.Yearly); err != nil {
		h.handleServerError(w, "write yearly csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteTrendCSV(buf, "Quarter", data.Quarterly); err != nil {
		h.handleServerError(w, "write quarterly csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteTrendCSV(buf, "Month", data.Monthly); err != nil {
		h.handleServerError(w, "write monthly csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteTopProductsCSV(buf, data.TopProducts); err != nil {
		h.handleServerError(w, "write top products csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteHeatmapCSV(buf, data.Heatmap); err != nil {
		h.handleServerError(w, "write heatmap csv", err)
		return
	}

	filename := fmt.Sprintf("sales-dashboard-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleTables(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	names, err := h.service.ListTables(ctx)
	if err != nil {
		h.handleServerError(w, "list tables", err)
		return
	}

	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tablesResponse{Tables: names}); err != nil {
		h.logError("stream tables", err)
	}
}

type tablesResponse struct {
	Tables []string `json:"tables"`
}

type shareResponse struct {
	Token string `json:"token"`
}

// handleDownload echoes an uploaded chart image back as a file attachment so
// the browser offers a save dialog.
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	img, filename, err := readUpload(r)
	if err != nil {
		http.Error(w, "image payload required", http.StatusBadRequest)
		return
	}
	if filename == "" {
		filename = "chart.png"
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(img.Data); err != nil {
		h.logError("stream download", err)
	}
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	if h.shares == nil {
		h.handleServerError(w, "share store", errors.New("share store not configured"))
		return
	}
	img, _, err := readUpload(r)
	if err != nil {
		http.Error(w, "image payload required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	token, err := h.shares.Put(ctx, img)
	if err != nil {
		h.handleServerError(w, "store shared image", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(shareResponse{Token: token}); err != nil {
		h.logError("stream share token", err)
	}
}

func (h *Handler) handleShared(w http.ResponseWriter, r *http.Request, token string) {
	if h.shares == nil {
		h.handleServerError(w, "share store", errors.New("share store not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	img, err := h.shares.Get(ctx, token)
	if err != nil {
		if errors.Is(err, imgshare.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.handleServerError(w, "load shared image", err)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="chart.png"`)
	if _, err := w.Write(img.Data); err != nil {
		h.logError("stream shared image", err)
	}
}

// readUpload accepts either a multipart form with an "image" field or a raw
// request body.
func readUpload(r *http.Request) (imgshare.Image, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("image")
		if err != nil {
			return imgshare.Image{}, "", err
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return imgshare.Image{}, "", err
		}
		if len(data) == 0 {
			return imgshare.Image{}, "", errors.New("empty upload")
		}
		return imgshare.Image{ContentType: http.DetectContentType(data), Data: data}, header.Filename, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return imgshare.Image{}, "", err
	}
	if len(data) == 0 {
		return imgshare.Image{}, "", errors.New("empty upload")
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return imgshare.Image{ContentType: contentType, Data: data}, "", nil
}

func (h *Handler) handleFilterError(w http.ResponseWriter, err error) {
	var vErr validationError
	if errors.As(err, &vErr) {
		http.Error(w, "invalid query parameter", http.StatusBadRequest)
		return
	}
	h.handleServerError(w, "parse filters", err)
}

func (h *Handler) handleServerError(w http.ResponseWriter, msg string, err error) {
	h.logError(msg, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
}

type validationError struct {
	field string
}

func (v validationError) Error() string {
	return fmt.Sprintf("invalid %s", v.field)
}

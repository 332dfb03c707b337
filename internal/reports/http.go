package reports

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/rs/zerolog"
)

type Backend interface {
	ReportList(ctx context.Context) ([]backend.ReportSummary, error)
	ReportDetail(ctx context.Context, id int) (*backend.ReportDetail, error)
}

type handler struct {
	backend Backend
	view    *view.Renderer
}

func RegisterHandler(
	ctx context.Context,
	api huma.API,
	router chi.Router,
	middleware middleware.Middleware,
	backend Backend,
	renderer *view.Renderer,
) {
	h := handler{backend, renderer}

	pages := router.With(session.RequireSession)
	pages.Get("/dashboard/reports", h.List)
	pages.Get("/reports/detail", h.Detail)

	huma.Register(api, huma.Operation{
		OperationID: "get-report-detail",
		Method:      http.MethodGet,
		Path:        "/api/reports/{reportId}",
		Summary:     "Get a report detail",
		Tags:        []string{constant.OAPI_TAG_REPORT},
		Security:    []map[string][]string{{constant.OAPI_SECURITY_SCHEME: {}}},
		Middlewares: huma.Middlewares{middleware.NewSessionAuthorization(ctx)},
		Errors:      []int{http.StatusNotFound},
	}, h.GetReportDetail)
}

func (h handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := reportsPage{Page: view.NewPage(r, "Raporlarım")}

	reports, err := h.backend.ReportList(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to load report list")
		reports = []backend.ReportSummary{}
	}
	page.Reports = reports
	h.view.Render(w, http.StatusOK, "reports", page)
}

func (h handler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	page := reportDetailPage{Page: view.NewPage(r, "Rapor Detayı")}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		page.Error = constant.MSG_REPORT_INVALID_ID
		h.view.Render(w, http.StatusOK, "report_detail", page)
		return
	}

	report, err := h.backend.ReportDetail(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Int("report_id", id).Msg("failed to load report detail")
		page.Error = "API Hatası: " + backend.Message(err, constant.MSG_REPORT_EMPTY)
		page.RawBody = backend.Body(err)
		h.view.Render(w, http.StatusOK, "report_detail", page)
		return
	}

	logger.Info().Int("report_id", id).Msg("report detail loaded")
	page.Report = report
	h.view.Render(w, http.StatusOK, "report_detail", page)
}

func (h handler) GetReportDetail(ctx context.Context, req *ReportDetailRequest) (*ReportDetailResponse, error) {
	report, err := h.backend.ReportDetail(ctx, req.ReportID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int("report_id", req.ReportID).Msg("failed to load report detail")
		return nil, &detailError{
			status:  http.StatusNotFound,
			IsError: true,
			Message: backend.Message(err, constant.MSG_REPORT_NOT_FOUND),
		}
	}
	return &ReportDetailResponse{Body: *report}, nil
}

package dashboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/rs/zerolog"
)

type Backend interface {
	KvkkText(ctx context.Context, id int) (*backend.KvkkText, error)
	SaveKvkkApproval(ctx context.Context, req backend.KvkkApprovalRequest) (*backend.KvkkApproval, error)
}

type handler struct {
	config   config.Config
	backend  Backend
	sessions *session.Manager
	view     *view.Renderer
}

func RegisterHandler(
	ctx context.Context,
	api huma.API,
	router chi.Router,
	middleware middleware.Middleware,
	config config.Config,
	backend Backend,
	sessions *session.Manager,
	renderer *view.Renderer,
) {
	h := handler{config, backend, sessions, renderer}

	pages := router.With(session.RequireSession)
	pages.Get("/dashboard", h.Index)
	pages.Get("/dashboard/help", h.Help)

	huma.Register(api, huma.Operation{
		OperationID: "get-kvkk-text",
		Method:      http.MethodGet,
		Path:        "/api/kvkk/{id}",
		Summary:     "Get a KVKK consent text",
		Tags:        []string{constant.OAPI_TAG_KVKK},
		Security:    []map[string][]string{{constant.OAPI_SECURITY_SCHEME: {}}},
		Middlewares: huma.Middlewares{middleware.NewSessionAuthorization(ctx)},
	}, h.GetKvkkText)

	huma.Register(api, huma.Operation{
		OperationID: "save-kvkk-approval",
		Method:      http.MethodPost,
		Path:        "/api/kvkk/approval",
		Summary:     "Record the customer's answer to the KVKK text",
		Tags:        []string{constant.OAPI_TAG_KVKK},
		Security:    []map[string][]string{{constant.OAPI_SECURITY_SCHEME: {}}},
		Middlewares: huma.Middlewares{middleware.NewSessionAuthorization(ctx)},
	}, h.SaveKvkkApproval)
}

func (h handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customer, _ := session.FromContext(ctx)
	flash := h.sessions.PopFlash(w, r)

	page := dashboardPage{Page: view.NewPage(r, "Anasayfa")}
	page.Success, page.Error = flash.Success, flash.Error

	if customer.KvkkPending {
		text, err := h.backend.KvkkText(ctx, h.config.Kvkk.DocumentID)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int("kvkk_id", h.config.Kvkk.DocumentID).Msg("failed to load kvkk text")
			page.KvkkError = backend.Message(err, "")
		} else {
			page.Kvkk = text
		}
	}

	h.view.Render(w, http.StatusOK, "dashboard", page)
}

func (h handler) Help(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "help", view.NewPage(r, "Yardım Merkezi"))
}

func (h handler) GetKvkkText(ctx context.Context, req *KvkkTextRequest) (*struct{ Body backend.KvkkText }, error) {
	text, err := h.backend.KvkkText(ctx, req.ID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int("kvkk_id", req.ID).Msg("failed to load kvkk text")
		return nil, huma.NewError(http.StatusBadGateway, backend.Message(err, ""))
	}
	return &struct{ Body backend.KvkkText }{Body: *text}, nil
}

func (h handler) SaveKvkkApproval(ctx context.Context, req *KvkkApprovalRequest) (*KvkkApprovalResponse, error) {
	customer, _ := session.FromContext(ctx)
	logger := zerolog.Ctx(ctx)

	kvkkID := req.Body.KvkkID
	if kvkkID == 0 {
		kvkkID = h.config.Kvkk.DocumentID
	}

	out := &KvkkApprovalResponse{}
	approval, err := h.backend.SaveKvkkApproval(ctx, backend.KvkkApprovalRequest{
		CustomerID: customer.CustomerID,
		KvkkID:     kvkkID,
		IsOk:       req.Body.IsOk,
	})
	if err != nil {
		logger.Warn().Err(err).Int64("customer_id", customer.CustomerID).Msg("kvkk approval failed")
		out.Body.Message = backend.Message(err, "")
		return out, nil
	}

	updated := *customer
	updated.KvkkPending = false
	cookie, err := h.sessions.SessionCookie(updated)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("customer_id", customer.CustomerID).
		Int("kvkk_id", kvkkID).
		Bool("approved", req.Body.IsOk).
		Msg("kvkk answer recorded")
	out.SetCookie = []http.Cookie{*cookie}
	out.Body.Success = true
	out.Body.Message = approval.Message
	return out, nil
}

package profile

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/rs/zerolog"
)

type Backend interface {
	CustomerAddress(ctx context.Context, customerID int64) (*backend.Address, error)
	JobInfo(ctx context.Context, customerID int64) (*backend.Job, error)
	WifeInfo(ctx context.Context, customerID int64) (*backend.WifeInfo, error)
	FinanceInfo(ctx context.Context, customerID int64) (*backend.Finance, error)
	SaveCustomerAddress(ctx context.Context, req backend.SaveAddressRequest) error
	SaveJobInfo(ctx context.Context, req backend.SaveJobRequest) error
	SaveWifeInfo(ctx context.Context, customerID int64, req backend.SaveWifeInfoRequest) error
	SaveFinanceInfo(ctx context.Context, req backend.SaveFinanceRequest) error
}

type handler struct {
	backend  Backend
	sessions *session.Manager
	view     *view.Renderer
}

func RegisterHandler(router chi.Router, backend Backend, sessions *session.Manager, renderer *view.Renderer) {
	h := handler{backend, sessions, renderer}

	pages := router.With(session.RequireSession)
	pages.Get("/dashboard/profile", h.Profile)
	pages.Post("/dashboard/profile/address", h.SaveAddress)
	pages.Post("/dashboard/profile/job", h.SaveJob)
	pages.Post("/dashboard/profile/wife", h.SaveWife)
	pages.Post("/dashboard/profile/finance", h.SaveFinance)
}

// load fills every tab from the backend. A tab whose data cannot be loaded
// stays empty.
func (h handler) load(ctx context.Context, customerID int64, page *profilePage) {
	logger := zerolog.Ctx(ctx).With().Int64("customer_id", customerID).Logger()

	page.Address = backend.SaveAddressRequest{CustomerID: customerID}
	if address, err := h.backend.CustomerAddress(ctx, customerID); err != nil {
		logger.Warn().Err(err).Msg("failed to load address")
	} else {
		page.Address = addressForm(customerID, address)
	}

	page.Job = backend.SaveJobRequest{CustomerID: customerID}
	if job, err := h.backend.JobInfo(ctx, customerID); err != nil {
		logger.Warn().Err(err).Msg("failed to load job info")
	} else {
		page.Job = jobForm(customerID, job)
	}

	page.Wife = backend.SaveWifeInfoRequest{CustomerID: customerID}
	if wife, err := h.backend.WifeInfo(ctx, customerID); err != nil {
		logger.Warn().Err(err).Msg("failed to load wife info")
	} else {
		page.Wife = wifeForm(customerID, wife)
	}

	page.Finance = backend.SaveFinanceRequest{CustomerID: customerID}
	if finance, err := h.backend.FinanceInfo(ctx, customerID); err != nil {
		logger.Warn().Err(err).Msg("failed to load finance info")
	} else {
		page.Finance = financeForm(customerID, finance)
	}
}

func (h handler) newPage(r *http.Request) profilePage {
	return profilePage{
		Page:      view.NewPage(r, "Profilim"),
		ActiveTab: TabAddress,
		Tabs:      tabs,
		HomeTypes: homeTypes,
		Sectors:   sectors,
	}
}

func (h handler) Profile(w http.ResponseWriter, r *http.Request) {
	customer, _ := session.FromContext(r.Context())
	flash := h.sessions.PopFlash(w, r)

	page := h.newPage(r)
	page.Success, page.Error = flash.Success, flash.Error
	if flash.ActiveTab != "" {
		page.ActiveTab = flash.ActiveTab
	}
	h.load(r.Context(), customer.CustomerID, &page)
	h.view.Render(w, http.StatusOK, "profile", page)
}

// saveTab runs the decode, validate, save and redirect cycle shared by the
// tabs. keep puts the posted form back on the page after a reload.
func saveTab[T any](
	h handler,
	w http.ResponseWriter,
	r *http.Request,
	tab, prefix, success string,
	prepare func(customerID int64, req *T),
	save func(ctx context.Context, customerID int64, req T) error,
	keep func(page *profilePage, req T),
) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	customer, _ := session.FromContext(ctx)

	var req T
	page := h.newPage(r)
	page.ActiveTab = tab
	if err := form.Decode(r, prefix, &req); err != nil {
		logger.Warn().Err(err).Str("tab", tab).Msg("failed to decode profile form")
		h.load(ctx, customer.CustomerID, &page)
		page.Error = constant.MSG_INVALID_FORM
		h.view.Render(w, http.StatusOK, "profile", page)
		return
	}
	prepare(customer.CustomerID, &req)

	if errs := form.Validate(req); errs != nil {
		h.load(ctx, customer.CustomerID, &page)
		keep(&page, req)
		page.Errors = errs
		page.Error = constant.MSG_INVALID_FORM
		h.view.Render(w, http.StatusOK, "profile", page)
		return
	}

	if err := save(ctx, customer.CustomerID, req); err != nil {
		logger.Error().Err(err).Str("tab", tab).Int64("customer_id", customer.CustomerID).Msg("failed to save profile")
		h.load(ctx, customer.CustomerID, &page)
		keep(&page, req)
		page.Error = backend.Message(err, constant.MSG_INVALID_FORM)
		h.view.Render(w, http.StatusOK, "profile", page)
		return
	}

	logger.Info().Str("tab", tab).Int64("customer_id", customer.CustomerID).Msg("profile saved")
	h.sessions.SetFlash(w, session.Flash{Success: success, ActiveTab: tab})
	http.Redirect(w, r, "/dashboard/profile", http.StatusSeeOther)
}

func (h handler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	saveTab(h, w, r, TabAddress, "Address", constant.MSG_ADDRESS_SAVED,
		func(id int64, req *backend.SaveAddressRequest) { req.CustomerID = id },
		func(ctx context.Context, _ int64, req backend.SaveAddressRequest) error {
			return h.backend.SaveCustomerAddress(ctx, req)
		},
		func(page *profilePage, req backend.SaveAddressRequest) { page.Address = req },
	)
}

func (h handler) SaveJob(w http.ResponseWriter, r *http.Request) {
	saveTab(h, w, r, TabJob, "Job", constant.MSG_JOB_SAVED,
		func(id int64, req *backend.SaveJobRequest) { req.CustomerID = id },
		func(ctx context.Context, _ int64, req backend.SaveJobRequest) error {
			return h.backend.SaveJobInfo(ctx, req)
		},
		func(page *profilePage, req backend.SaveJobRequest) { page.Job = req },
	)
}

func (h handler) SaveWife(w http.ResponseWriter, r *http.Request) {
	saveTab(h, w, r, TabWife, "Wife", constant.MSG_WIFE_SAVED,
		func(id int64, req *backend.SaveWifeInfoRequest) { req.CustomerID = id },
		func(ctx context.Context, id int64, req backend.SaveWifeInfoRequest) error {
			return h.backend.SaveWifeInfo(ctx, id, req)
		},
		func(page *profilePage, req backend.SaveWifeInfoRequest) { page.Wife = req },
	)
}

func (h handler) SaveFinance(w http.ResponseWriter, r *http.Request) {
	saveTab(h, w, r, TabFinance, "Finance", constant.MSG_FINANCE_SAVED,
		func(id int64, req *backend.SaveFinanceRequest) { req.CustomerID = id },
		func(ctx context.Context, _ int64, req backend.SaveFinanceRequest) error {
			return h.backend.SaveFinanceInfo(ctx, req)
		},
		func(page *profilePage, req backend.SaveFinanceRequest) { page.Finance = req },
	)
}

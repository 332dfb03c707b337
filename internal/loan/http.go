package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type handler struct {
	sessions *session.Manager
	view     *view.Renderer
}

// RegisterHandler mounts the loan application wizard. There is no upstream
// endpoint for applications yet, so accepted applications only get a
// reference number.
func RegisterHandler(router chi.Router, sessions *session.Manager, renderer *view.Renderer) {
	h := handler{sessions, renderer}

	pages := router.With(session.RequireSession)
	pages.Get("/loan/apply", h.Apply)
	pages.Post("/loan/apply", h.Submit)
	pages.Get("/loan/result", h.Result)
}

func (h handler) newPage(r *http.Request) applyPage {
	return applyPage{
		Page:      view.NewPage(r, "Kredi Başvurusu"),
		LoanTypes: loanTypes,
		LoanTerms: loanTerms,
		Form:      Application{LoanAmount: defaultLoanAmount},
	}
}

func (h handler) Apply(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "loan_apply", h.newPage(r))
}

func (h handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	customer, _ := session.FromContext(ctx)
	page := h.newPage(r)

	var app Application
	if err := form.Decode(r, "", &app); err != nil {
		logger.Warn().Err(err).Msg("failed to decode loan application")
		page.Error = constant.MSG_LOAN_FAILED
		h.view.Render(w, http.StatusOK, "loan_apply", page)
		return
	}
	page.Form = app

	if errs := form.Validate(app); errs != nil {
		page.Errors = errs
		h.view.Render(w, http.StatusOK, "loan_apply", page)
		return
	}

	number := ulid.Make().String()
	logger.Info().
		Int64("customer_id", customer.CustomerID).
		Str("application", number).
		Str("loan_type", app.LoanType).
		Float64("amount", app.LoanAmount).
		Int("term", app.LoanTerm).
		Msg("loan application received")

	h.sessions.SetFlash(w, session.Flash{Success: constant.MSG_LOAN_APPLIED + number})
	http.Redirect(w, r, "/loan/result", http.StatusSeeOther)
}

func (h handler) Result(w http.ResponseWriter, r *http.Request) {
	flash := h.sessions.PopFlash(w, r)
	page := view.NewPage(r, "Başvuru Sonucu")
	page.Success, page.Error = flash.Success, flash.Error
	h.view.Render(w, http.StatusOK, "loan_result", page)
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/rs/zerolog"
)

// Backend is the part of the upstream client the sign in flow needs.
type Backend interface {
	VerifyUser(ctx context.Context, req backend.VerifyUserRequest) (*backend.VerifyUserResponse, error)
	GenerateOtp(ctx context.Context, tckn, gsm string) (*backend.GenerateOtpResponse, error)
	SendOtpSms(ctx context.Context, gsm, code string) (*backend.SendOtpSmsResponse, error)
	VerifyOtp(ctx context.Context, code string) (*backend.VerifyOtpResponse, error)
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

	router.Get("/", h.Index)
	router.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/otp", h.OtpPage)
		r.Post("/otp", h.VerifyOtp)
		r.Post("/logout", h.Logout)
	})

	huma.Register(api, huma.Operation{
		OperationID: "resend-otp",
		Method:      http.MethodPost,
		Path:        "/api/otp/resend",
		Summary:     "Send a new SMS one-time password",
		Description: "Requires the pending login cookie issued after the TCKN/GSM check.",
		Tags:        []string{constant.OAPI_TAG_AUTH},
	}, h.ResendOtp)
}

func (h handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

func (h handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearPending(w)
	h.view.Render(w, http.StatusOK, "login", loginPage{Page: view.NewPage(r, "Giriş")})
}

func (h handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req backend.VerifyUserRequest
	if err := form.Decode(r, "", &req); err != nil {
		logger.Warn().Err(err).Msg("failed to decode login form")
	}
	req.TCKN = strings.TrimSpace(req.TCKN)
	req.GSM = strings.TrimSpace(req.GSM)

	page := loginPage{Page: view.NewPage(r, "Giriş"), TCKN: req.TCKN, GSM: req.GSM}
	if page.Errors = form.Validate(req); page.Errors != nil {
		h.view.Render(w, http.StatusOK, "login", page)
		return
	}

	user, err := h.backend.VerifyUser(ctx, req)
	if err != nil {
		logger.Warn().Err(err).Msg("login rejected")
		page.Error = constant.MSG_LOGIN_FAILED + " " + backend.Message(err, "")
		h.view.Render(w, http.StatusOK, "login", page)
		return
	}

	pending := session.Pending{
		CustomerID: user.CustomerID,
		TCKN:       req.TCKN,
		GSM:        req.GSM,
		IsNewUser:  user.IsNewUser,
	}
	if message, err := h.dispatchOtp(ctx, pending); err != nil {
		page.Error = message
		h.view.Render(w, http.StatusOK, "login", page)
		return
	}
	if err := h.sessions.IssuePending(w, pending); err != nil {
		logger.Error().Err(err).Msg("failed to issue pending login")
		page.Error = constant.MSG_LOGIN_FAILED
		h.view.Render(w, http.StatusOK, "login", page)
		return
	}

	logger.Info().Int64("customer_id", user.CustomerID).Msg("otp sent, awaiting verification")
	http.Redirect(w, r, "/auth/otp", http.StatusSeeOther)
}

// dispatchOtp generates a fresh code and sends it by SMS. On failure the
// returned message is safe to show to the customer.
func (h handler) dispatchOtp(ctx context.Context, p session.Pending) (string, error) {
	logger := zerolog.Ctx(ctx)

	otp, err := h.backend.GenerateOtp(ctx, p.TCKN, p.GSM)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate otp")
		return backend.Message(err, constant.MSG_OTP_NOT_GENERATED), err
	}
	if h.config.IsDevelopment {
		logger.Debug().Str("otp", otp.Code()).Msg("generated otp")
	}

	if _, err := h.backend.SendOtpSms(ctx, p.GSM, otp.Code()); err != nil {
		logger.Error().Err(err).Msg("failed to send otp sms")
		return backend.Message(err, constant.MSG_SMS_NOT_SENT), err
	}
	return "", nil
}

func (h handler) OtpPage(w http.ResponseWriter, r *http.Request) {
	pending, ok := session.PendingFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}
	h.view.Render(w, http.StatusOK, "otp", otpPage{Page: view.NewPage(r, "SMS Doğrulama"), GSM: pending.GSM})
}

func (h handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	pending, ok := session.PendingFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	var req OtpRequest
	if err := form.Decode(r, "", &req); err != nil {
		logger.Warn().Err(err).Msg("failed to decode otp form")
	}
	req.Code = strings.TrimSpace(req.Code)

	page := otpPage{Page: view.NewPage(r, "SMS Doğrulama"), GSM: pending.GSM}
	if page.Errors = form.Validate(req); page.Errors != nil {
		page.Error = constant.MSG_OTP_INVALID_INPUT
		h.view.Render(w, http.StatusOK, "otp", page)
		return
	}

	verified, err := h.backend.VerifyOtp(ctx, req.Code)
	if err != nil {
		logger.Warn().Err(err).Int64("customer_id", pending.CustomerID).Msg("otp rejected")
		page.Error = constant.MSG_OTP_FAILED + " " + backend.Message(err, "")
		h.view.Render(w, http.StatusOK, "otp", page)
		return
	}

	err = h.sessions.IssueSession(w, session.Session{
		CustomerID:  pending.CustomerID,
		TCKN:        pending.TCKN,
		GSM:         pending.GSM,
		Token:       verified.Token,
		IsNewUser:   pending.IsNewUser,
		KvkkPending: pending.IsNewUser || h.config.Kvkk.ShowForAll,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to issue session")
		h.view.Error(w, http.StatusInternalServerError, constant.MSG_OTP_FAILED)
		return
	}
	h.sessions.ClearPending(w)

	logger.Info().Int64("customer_id", pending.CustomerID).Msg("customer signed in")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h handler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		zerolog.Ctx(r.Context()).Info().Int64("customer_id", s.CustomerID).Msg("customer signed out")
	}
	h.sessions.ClearAll(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h handler) ResendOtp(ctx context.Context, _ *struct{}) (*struct{ Body ResendResponse }, error) {
	out := &struct{ Body ResendResponse }{}

	pending, ok := session.PendingFromContext(ctx)
	if !ok {
		out.Body.Message = constant.MSG_SESSION_MISSING
		return out, nil
	}

	logger := zerolog.Ctx(ctx)
	otp, err := h.backend.GenerateOtp(ctx, pending.TCKN, pending.GSM)
	if err != nil {
		logger.Error().Err(err).Msg("failed to regenerate otp")
		out.Body.Message = constant.MSG_OTP_NOT_GENERATED
		return out, nil
	}
	if h.config.IsDevelopment {
		logger.Debug().Str("otp", otp.Code()).Msg("generated otp")
	}
	if _, err := h.backend.SendOtpSms(ctx, pending.GSM, otp.Code()); err != nil {
		logger.Error().Err(err).Msg("failed to resend otp sms")
		out.Body.Message = constant.MSG_SMS_NOT_SENT
		return out, nil
	}

	out.Body.Success = true
	out.Body.Message = constant.MSG_SMS_RESENT
	return out, nil
}

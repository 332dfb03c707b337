package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	verifyErr   error
	generateErr error
	sendErr     error
	otpErr      error
	isNewUser   bool
	sent        []string
	verified    []string
}

func (f *fakeBackend) VerifyUser(_ context.Context, req backend.VerifyUserRequest) (*backend.VerifyUserResponse, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &backend.VerifyUserResponse{CustomerID: 42, TCKN: req.TCKN, GSM: req.GSM, IsNewUser: f.isNewUser}, nil
}

func (f *fakeBackend) GenerateOtp(context.Context, string, string) (*backend.GenerateOtpResponse, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &backend.GenerateOtpResponse{OTPCode: 123456}, nil
}

func (f *fakeBackend) SendOtpSms(_ context.Context, gsm, code string) (*backend.SendOtpSmsResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, gsm+":"+code)
	return &backend.SendOtpSmsResponse{Sent: true}, nil
}

func (f *fakeBackend) VerifyOtp(_ context.Context, code string) (*backend.VerifyOtpResponse, error) {
	f.verified = append(f.verified, code)
	if f.otpErr != nil {
		return nil, f.otpErr
	}
	return &backend.VerifyOtpResponse{Token: "idc-token"}, nil
}

type testServer struct {
	handler  http.Handler
	sessions *session.Manager
}

func newTestServer(t *testing.T, fake *fakeBackend, cfg config.Config) testServer {
	t.Helper()
	cfg.Session = config.Session{
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
		PendingTTL: 10 * time.Minute,
	}
	renderer, err := view.New()
	require.NoError(t, err)
	sessions := session.NewManager(cfg.Session)

	router := chi.NewMux()
	router.Use(sessions.Middleware)
	api := humachi.New(router, huma.DefaultConfig(constant.OAPI_TITLE, constant.OAPI_VERSION))
	RegisterHandler(context.Background(), api, router, middleware.NewMiddleware(api, cfg), cfg, fake, sessions, renderer)
	return testServer{handler: router, sessions: sessions}
}

func (s testServer) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s testServer) pendingCookie(t *testing.T, p session.Pending) *http.Cookie {
	rec := httptest.NewRecorder()
	require.NoError(t, s.sessions.IssuePending(rec, p))
	return cookie(rec, constant.COOKIE_PENDING)
}

func TestIndexRedirect(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, config.Config{})

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	issued := httptest.NewRecorder()
	require.NoError(t, srv.sessions.IssueSession(issued, session.Session{CustomerID: 1}))
	rec = srv.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie(issued, constant.COOKIE_SESSION))
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLogin(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		fake := &fakeBackend{}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/login", url.Values{"TCKN": {"123"}, "GSM": {"4551112233"}}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "TCKN 11 haneli olmalıdır.")
		assert.Empty(t, fake.sent)
	})

	t.Run("rejected by backend", func(t *testing.T) {
		fake := &fakeBackend{verifyErr: &backend.Error{Message: "Kullanıcı bulunamadı."}}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/login", url.Values{"TCKN": {"12345678901"}, "GSM": {"5551112233"}}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Giriş bilgileri doğrulanamadı.")
		assert.Contains(t, rec.Body.String(), "Kullanıcı bulunamadı.")
		assert.Nil(t, cookie(rec, constant.COOKIE_PENDING))
	})

	t.Run("sms failure", func(t *testing.T) {
		fake := &fakeBackend{sendErr: &backend.Error{Message: "SMS durumu belirsiz."}}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/login", url.Values{"TCKN": {"12345678901"}, "GSM": {"5551112233"}}))
		assert.Contains(t, rec.Body.String(), "SMS durumu belirsiz.")
		assert.Nil(t, cookie(rec, constant.COOKIE_PENDING))
	})

	t.Run("success", func(t *testing.T) {
		fake := &fakeBackend{}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/login", url.Values{"TCKN": {" 12345678901 "}, "GSM": {"5551112233"}}))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/otp", rec.Header().Get("Location"))
		assert.Equal(t, []string{"5551112233:123456"}, fake.sent)

		pending := cookie(rec, constant.COOKIE_PENDING)
		require.NotNil(t, pending)
		rec = srv.do(httptest.NewRequest(http.MethodGet, "/auth/otp", nil), pending)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "0 (5XX) XXX XX 33")
	})
}

func TestOtpPageRequiresPendingLogin(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, config.Config{})

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/auth/otp", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestVerifyOtp(t *testing.T) {
	pending := session.Pending{CustomerID: 42, TCKN: "12345678901", GSM: "5551112233", IsNewUser: true}

	t.Run("malformed code", func(t *testing.T) {
		fake := &fakeBackend{}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/otp", url.Values{"Code": {"12"}}), srv.pendingCookie(t, pending))
		assert.Contains(t, rec.Body.String(), constant.MSG_OTP_INVALID_INPUT)
		assert.Empty(t, fake.verified)
	})

	t.Run("wrong code", func(t *testing.T) {
		fake := &fakeBackend{otpErr: &backend.Error{Message: "OTP doğrulanamadı."}}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/otp", url.Values{"Code": {"654321"}}), srv.pendingCookie(t, pending))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "süresi dolmuş")
		assert.Nil(t, cookie(rec, constant.COOKIE_SESSION))
	})

	t.Run("success", func(t *testing.T) {
		fake := &fakeBackend{}
		srv := newTestServer(t, fake, config.Config{})

		rec := srv.do(postForm("/auth/otp", url.Values{"Code": {"123456"}}), srv.pendingCookie(t, pending))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.Equal(t, []string{"123456"}, fake.verified)

		sessionCookie := cookie(rec, constant.COOKIE_SESSION)
		require.NotNil(t, sessionCookie)
		assert.Equal(t, -1, cookie(rec, constant.COOKIE_PENDING).MaxAge)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sessionCookie)
		s, err := srv.sessions.Session(req)
		require.NoError(t, err)
		assert.Equal(t, int64(42), s.CustomerID)
		assert.Equal(t, "idc-token", s.Token)
		assert.True(t, s.KvkkPending)
	})
}

func TestKvkkShownToReturningUsersWhenConfigured(t *testing.T) {
	cfg := config.Config{Kvkk: config.Kvkk{ShowForAll: true}}
	srv := newTestServer(t, &fakeBackend{}, cfg)

	rec := srv.do(postForm("/auth/otp", url.Values{"Code": {"123456"}}), srv.pendingCookie(t, session.Pending{CustomerID: 1}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie(rec, constant.COOKIE_SESSION))
	s, err := srv.sessions.Session(req)
	require.NoError(t, err)
	assert.True(t, s.KvkkPending)
}

func TestResendOtp(t *testing.T) {
	pending := session.Pending{CustomerID: 42, TCKN: "12345678901", GSM: "5551112233"}

	cases := []struct {
		name    string
		fake    *fakeBackend
		pending bool
		success bool
		message string
	}{
		{"without pending login", &fakeBackend{}, false, false, constant.MSG_SESSION_MISSING},
		{"generate failure", &fakeBackend{generateErr: &backend.Error{}}, true, false, constant.MSG_OTP_NOT_GENERATED},
		{"send failure", &fakeBackend{sendErr: &backend.Error{}}, true, false, constant.MSG_SMS_NOT_SENT},
		{"success", &fakeBackend{}, true, true, constant.MSG_SMS_RESENT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.fake, config.Config{})
			var cookies []*http.Cookie
			if tc.pending {
				cookies = append(cookies, srv.pendingCookie(t, pending))
			}

			rec := srv.do(httptest.NewRequest(http.MethodPost, "/api/otp/resend", nil), cookies...)
			require.Equal(t, http.StatusOK, rec.Code)

			var body ResendResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.success, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{}, config.Config{})

	rec := srv.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	for _, name := range []string{constant.COOKIE_SESSION, constant.COOKIE_PENDING, constant.COOKIE_FLASH} {
		require.NotNil(t, cookie(rec, name), name)
		assert.Equal(t, -1, cookie(rec, name).MaxAge)
	}
}

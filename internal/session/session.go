// Package session keeps the browser state of a customer in signed cookies.
//
// Three cookies are used: a pending login between the TCKN/GSM check and the
// OTP step, the authenticated session and a one-shot flash message. Each is a
// HS256 JWT whose audience is the cookie name, so a token cannot be replayed
// under another cookie.
package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/rs/zerolog/log"
)

const (
	issuer   = "interaktifkredi"
	flashTTL = time.Minute
)

// Pending is the state of a customer that passed the TCKN/GSM check but has
// not confirmed the OTP yet.
type Pending struct {
	CustomerID int64  `json:"customerId"`
	TCKN       string `json:"tckn"`
	GSM        string `json:"gsm"`
	IsNewUser  bool   `json:"isNewUser"`
}

// Session is the state of a signed in customer.
type Session struct {
	CustomerID  int64  `json:"customerId"`
	TCKN        string `json:"tckn"`
	GSM         string `json:"gsm"`
	Token       string `json:"token"`
	IsNewUser   bool   `json:"isNewUser"`
	KvkkPending bool   `json:"kvkkPending"`
}

// Flash carries a message across one redirect.
type Flash struct {
	Success   string `json:"success,omitempty"`
	Error     string `json:"error,omitempty"`
	ActiveTab string `json:"activeTab,omitempty"`
}

type claims[T any] struct {
	Data T `json:"data"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret     []byte
	ttl        time.Duration
	pendingTTL time.Duration
	secure     bool
	now        func() time.Time
}

func NewManager(cfg config.Session) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		pendingTTL: cfg.PendingTTL,
		secure:     cfg.CookieSecure,
		now:        time.Now,
	}
}

func issue[T any](m *Manager, w http.ResponseWriter, name, subject string, ttl time.Duration, data T) error {
	cookie, err := sign(m, name, subject, ttl, data)
	if err != nil {
		return err
	}
	http.SetCookie(w, cookie)
	return nil
}

func sign[T any](m *Manager, name, subject string, ttl time.Duration, data T) (*http.Cookie, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims[T]{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{name},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}
	return m.cookie(name, signed, int(ttl.Seconds())), nil
}

var errNoCookie = errors.New("session: cookie not present")

func read[T any](m *Manager, r *http.Request, name string) (*T, error) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return nil, errNoCookie
	}
	var c claims[T]
	_, err = jwt.ParseWithClaims(cookie.Value, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(name),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	return &c.Data, nil
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) IssuePending(w http.ResponseWriter, p Pending) error {
	return issue(m, w, constant.COOKIE_PENDING, strconv.FormatInt(p.CustomerID, 10), m.pendingTTL, p)
}

// Pending returns the pending login carried by r. Missing, tampered and
// expired cookies all yield an error.
func (m *Manager) Pending(r *http.Request) (*Pending, error) {
	return read[Pending](m, r, constant.COOKIE_PENDING)
}

func (m *Manager) ClearPending(w http.ResponseWriter) { m.clear(w, constant.COOKIE_PENDING) }

func (m *Manager) IssueSession(w http.ResponseWriter, s Session) error {
	cookie, err := m.SessionCookie(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, cookie)
	return nil
}

// SessionCookie builds the session cookie without writing it, for handlers
// that return their headers as values.
func (m *Manager) SessionCookie(s Session) (*http.Cookie, error) {
	return sign(m, constant.COOKIE_SESSION, strconv.FormatInt(s.CustomerID, 10), m.ttl, s)
}

func (m *Manager) Session(r *http.Request) (*Session, error) {
	return read[Session](m, r, constant.COOKIE_SESSION)
}

func (m *Manager) ClearSession(w http.ResponseWriter) { m.clear(w, constant.COOKIE_SESSION) }

func (m *Manager) SetFlash(w http.ResponseWriter, f Flash) {
	if err := issue(m, w, constant.COOKIE_FLASH, "", flashTTL, f); err != nil {
		log.Error().Err(err).Msg("failed to set flash message")
	}
}

// PopFlash returns the pending flash message, if any, and removes it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) Flash {
	f, err := read[Flash](m, r, constant.COOKIE_FLASH)
	if errors.Is(err, errNoCookie) {
		return Flash{}
	}
	m.clear(w, constant.COOKIE_FLASH)
	if err != nil {
		return Flash{}
	}
	return *f
}

// ClearAll drops every cookie owned by the site.
func (m *Manager) ClearAll(w http.ResponseWriter) {
	m.ClearSession(w)
	m.ClearPending(w)
	m.clear(w, constant.COOKIE_FLASH)
}

type contextKey int

const (
	sessionKey contextKey = iota
	pendingKey
)

// Middleware loads the session and the pending login into the request
// context. Invalid tokens are treated as absent.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s, err := m.Session(r); err == nil {
			ctx = context.WithValue(ctx, sessionKey, s)
		} else if !errors.Is(err, errNoCookie) {
			log.Debug().Err(err).Msg("ignoring invalid session cookie")
		}
		if p, err := m.Pending(r); err == nil {
			ctx = context.WithValue(ctx, pendingKey, p)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

func PendingFromContext(ctx context.Context) (*Pending, bool) {
	p, ok := ctx.Value(pendingKey).(*Pending)
	return p, ok
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// RequireSession redirects anonymous visitors of a page to the login form.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

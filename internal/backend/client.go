package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Client talks to the Customers and IDC backends.
type Client struct {
	config  config.Upstream
	metrics *metrics.Metrics
	// reads retries transient failures; writes never do, a duplicated POST
	// can mean a second SMS or a second approval record.
	reads  *retryablehttp.Client
	writes *retryablehttp.Client
}

func New(cfg config.Upstream, m *metrics.Metrics) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	reads := retryablehttp.NewClient()
	reads.HTTPClient = httpClient
	reads.RetryMax = cfg.RetryMax
	reads.RetryWaitMin = 200 * time.Millisecond
	reads.RetryWaitMax = 2 * time.Second
	reads.Logger = retryLogger{}
	reads.ErrorHandler = retryablehttp.PassthroughErrorHandler

	writes := retryablehttp.NewClient()
	writes.HTTPClient = httpClient
	writes.RetryMax = 0
	writes.Logger = retryLogger{}
	writes.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		config:  cfg,
		metrics: m,
		reads:   reads,
		writes:  writes,
	}
}

type call struct {
	op     string
	method string
	base   string
	path   string
	key    string
	query  url.Values
	body   any
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

func (c *Client) url(cl call) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(cl.base, "/") + "/" + strings.TrimLeft(cl.path, "/"))
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("code", cl.key)
	for k, vs := range cl.query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u, nil
}

// do performs cl and returns the raw response. The error is non-nil only when
// no response could be obtained.
func (c *Client) do(ctx context.Context, cl call) (*response, error) {
	start := time.Now()
	u, err := c.url(cl)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if cl.body != nil {
		if payload, err = json.Marshal(cl.body); err != nil {
			return nil, fmt.Errorf("encode %s request: %w", cl.op, err)
		}
	}

	var rawBody any
	if payload != nil {
		rawBody = payload
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, cl.method, u.String(), rawBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	client := c.writes
	if cl.method == http.MethodGet {
		client = c.reads
	}

	logger := log.With().Str("operation", cl.op).Str("url", redactURL(u)).Logger()
	logger.Debug().Msg("calling upstream")

	resp, err := client.Do(req)
	if err != nil {
		c.metrics.Observe(cl.op, metrics.OutcomeTransport, time.Since(start))
		logger.Error().Err(err).Msg("upstream request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Observe(cl.op, metrics.OutcomeTransport, time.Since(start))
		logger.Error().Err(err).Msg("failed to read upstream response")
		return nil, err
	}

	out := &response{status: resp.StatusCode, body: body}
	outcome := metrics.OutcomeSuccess
	if !out.ok() {
		outcome = metrics.OutcomeFailure
	}
	c.metrics.Observe(cl.op, outcome, time.Since(start))

	logger.Info().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream responded")
	logger.Debug().Bytes("body", body).Msg("upstream response body")

	return out, nil
}

// messages holds the customer facing texts of one operation.
type messages struct {
	// failed is used for non-2xx answers and for 2xx answers without data.
	failed string
	// unexpected is used when the call could not be completed or the answer
	// could not be decoded.
	unexpected string
	// rejected is used when a wrapped answer reports failure without message.
	rejected string
}

func (m messages) transport(op string, err error) *Error {
	return &Error{Op: op, StatusCode: http.StatusInternalServerError, Message: m.unexpected, Err: err}
}

// wrapped performs a call whose answer is {success, statusCode, message, value}.
func wrapped[T any](ctx context.Context, c *Client, cl call, msgs messages) (*T, string, error) {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, "", msgs.transport(cl.op, err)
	}
	if !resp.ok() {
		return nil, "", &Error{Op: cl.op, StatusCode: resp.status, Message: msgs.failed, Body: string(resp.body)}
	}

	var env envelope[T]
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, "", &Error{
			Op:         cl.op,
			StatusCode: http.StatusInternalServerError,
			Message:    msgs.unexpected,
			Body:       string(resp.body),
			Err:        err,
		}
	}
	if !env.Success || env.Value == nil {
		message := env.Message
		if message == "" {
			message = msgs.rejected
		}
		log.Warn().Str("operation", cl.op).Str("message", message).Msg("upstream rejected request")
		return nil, "", &Error{
			Op:         cl.op,
			StatusCode: statusOr(env.StatusCode, http.StatusInternalServerError),
			Message:    message,
			Body:       string(resp.body),
		}
	}
	return env.Value, env.Message, nil
}

// direct performs a call whose answer is the bare JSON document.
func direct[T any](ctx context.Context, c *Client, cl call, msgs messages) (*T, error) {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, msgs.transport(cl.op, err)
	}
	if !resp.ok() {
		return nil, &Error{Op: cl.op, StatusCode: resp.status, Message: msgs.failed, Body: string(resp.body)}
	}

	var value *T
	if err := json.Unmarshal(resp.body, &value); err != nil {
		return nil, &Error{
			Op:         cl.op,
			StatusCode: http.StatusInternalServerError,
			Message:    msgs.unexpected,
			Body:       string(resp.body),
			Err:        err,
		}
	}
	if value == nil {
		return nil, &Error{Op: cl.op, StatusCode: resp.status, Message: msgs.failed, Body: string(resp.body)}
	}
	return value, nil
}

// save performs a write whose answer body carries no contract: any 2xx is a
// success.
func save(ctx context.Context, c *Client, cl call, msgs messages) error {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return msgs.transport(cl.op, err)
	}
	if !resp.ok() {
		return &Error{
			Op:         cl.op,
			StatusCode: resp.status,
			Message:    msgs.failed + " Hata: " + string(resp.body),
			Body:       string(resp.body),
		}
	}
	return nil
}

func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clone := *u
	q := clone.Query()
	if q.Has("code") {
		q.Set("code", "REDACTED")
		clone.RawQuery = q.Encode()
	}
	return clone.String()
}

var functionKeyPattern = regexp.MustCompile(`([?&]code=)[^&\s]+`)

// retryLogger adapts zerolog to retryablehttp.LeveledLogger and keeps
// function keys out of the log.
type retryLogger struct{}

func (retryLogger) fields(keysAndValues []any) []any {
	out := make([]any, len(keysAndValues))
	for i, v := range keysAndValues {
		switch value := v.(type) {
		case *url.URL:
			out[i] = redactURL(value)
		case *http.Request:
			out[i] = value.Method + " " + redactURL(value.URL)
		case string:
			out[i] = functionKeyPattern.ReplaceAllString(value, "${1}REDACTED")
		default:
			out[i] = v
		}
	}
	return out
}

func (l retryLogger) Error(msg string, keysAndValues ...any) {
	log.Error().Fields(l.fields(keysAndValues)).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...any) {
	log.Info().Fields(l.fields(keysAndValues)).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...any) {
	log.Debug().Fields(l.fields(keysAndValues)).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...any) {
	log.Warn().Fields(l.fields(keysAndValues)).Msg(msg)
}

package utility

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
)

type handler struct{}

func RegisterHandler(ctx context.Context, router huma.API, middleware middleware.Middleware) {
	h := handler{}

	huma.Register(router, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{constant.OAPI_TAG_MISC},
	}, h.HealthCheck)

	huma.Register(router, huma.Operation{
		OperationID: "api-reference",
		Method:      http.MethodGet,
		Path:        "/docs",
		Summary:     "API reference",
		Tags:        []string{constant.OAPI_TAG_MISC},
		Hidden:      true,
	}, h.Docs)
}

type health struct {
	Status string `json:"status" example:"ok"`
}

func (h handler) HealthCheck(ctx context.Context, _ *struct{}) (*struct{ Body health }, error) {
	return &struct{ Body health }{Body: health{Status: "ok"}}, nil
}

func (h handler) Docs(ctx context.Context, _ *struct{}) (*struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}, error) {
	return &struct {
		ContentType string `header:"Content-Type"`
		Body        []byte
	}{
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(constant.OAPI_SPEC_UI),
	}, nil
}

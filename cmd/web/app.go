package main

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/auth"
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/common/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/dashboard"
	"github.com/mirzahilmi/interaktifkredi/internal/loan"
	"github.com/mirzahilmi/interaktifkredi/internal/metrics"
	"github.com/mirzahilmi/interaktifkredi/internal/profile"
	"github.com/mirzahilmi/interaktifkredi/internal/reports"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/mirzahilmi/interaktifkredi/internal/utility"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

func setup(ctx context.Context, cfg config.Config) (http.Handler, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(cfg.Session)
	m := metrics.New()
	client := backend.New(cfg.Upstream, m)

	router := chi.NewMux()
	router.Use(
		chimiddleware.Recoverer,
		middleware.RequestLogger,
		sessions.Middleware,
	)

	humaConfig := huma.DefaultConfig(constant.OAPI_TITLE, constant.OAPI_VERSION)
	humaConfig.Info.Description = constant.OAPI_SPEC_DESCRIPTION
	humaConfig.DocsPath = ""
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		constant.OAPI_SECURITY_SCHEME: {
			Type: "apiKey",
			In:   "cookie",
			Name: constant.COOKIE_SESSION,
		},
	}
	api := humachi.New(router, humaConfig)

	router.Handle("/static/*", http.StripPrefix("/static", view.Static()))
	router.Handle("/data/*", view.Static())
	router.Handle("/metrics", m.Handler())
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderer.Error(w, http.StatusNotFound, "Aradığınız sayfa bulunamadı.")
	})

	middleware := middleware.NewMiddleware(api, cfg)

	utility.RegisterHandler(ctx, api, middleware)
	auth.RegisterHandler(ctx, api, router, middleware, cfg, client, sessions, renderer)
	dashboard.RegisterHandler(ctx, api, router, middleware, cfg, client, sessions, renderer)
	profile.RegisterHandler(router, client, sessions, renderer)
	reports.RegisterHandler(ctx, api, router, middleware, client, renderer)
	loan.RegisterHandler(router, sessions, renderer)

	return router, nil
}

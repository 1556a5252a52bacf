// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/mail"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tenantstorage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/pkg/invites"
	"github.com/canonical/compliance-service/pkg/metrics"
	"github.com/canonical/compliance-service/pkg/organizations"
	"github.com/canonical/compliance-service/pkg/sites"
	"github.com/canonical/compliance-service/pkg/status"
)

type RouterConfig struct {
	InvitationLifetime time.Duration
	BaseURL            string
	CORSAllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	s storage.StorageInterface,
	ts tenantstorage.TenantStorageInterface,
	dbClient db.DBClientInterface,
	mailer mail.MailerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
		identity.NewMiddleware(tracer, monitor, logger).HTTPMiddleware,
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	invitesService := invites.NewService(s, ts, mailer, cfg.InvitationLifetime, cfg.BaseURL, tracer, monitor, logger)
	invites.NewAPI(invitesService, logger).RegisterEndpoints(router)

	sitesService := sites.NewService(s, ts, tracer, monitor, logger)
	sites.NewAPI(sitesService, logger).RegisterEndpoints(router)

	// Organization management writes only touch the control plane, so they
	// run inside a per-request transaction. Invitation acceptance stays
	// outside: its write ordering across the two databases is its own.
	orgService := organizations.NewService(s, tracer, monitor, logger)
	router.Group(func(r chi.Router) {
		r.Use(db.TransactionMiddleware(dbClient, logger))
		organizations.NewAPI(orgService, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	BaseURL string `envconfig:"base_url" default:"http://localhost:8080"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	TenantMaxConns           int32         `envconfig:"tenant_max_conns" default:"10"`
	TenantMinConns           int32         `envconfig:"tenant_min_conns" default:"1"`
	TenantConnectTimeout     time.Duration `envconfig:"tenant_connect_timeout" default:"5s"`
	TenantMaxConnIdleTime    time.Duration `envconfig:"tenant_max_conn_idle_time" default:"10m"`
	TenantHealthInterval     time.Duration `envconfig:"tenant_health_interval" default:"60s"`
	TenantHealthGracePeriod  time.Duration `envconfig:"tenant_health_grace_period" default:"30s"`
	TenantHealthProbeTimeout time.Duration `envconfig:"tenant_health_probe_timeout" default:"2s"`
	TenantDSNCacheTTL        time.Duration `envconfig:"tenant_dsn_cache_ttl" default:"10m"`

	MailFromAddress string `envconfig:"mail_from_address" default:"no-reply@example.com"`
}

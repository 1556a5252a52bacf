// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/internal/config"
	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/mail"
	"github.com/canonical/compliance-service/internal/monitoring/prometheus"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tenantdb"
	"github.com/canonical/compliance-service/internal/tenantstorage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("compliance_service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	registry := tenantdb.NewRegistry(
		tenantdb.NewPgxPoolFactory(),
		tenantdb.PoolConfig{
			MaxConns:        specs.TenantMaxConns,
			MinConns:        specs.TenantMinConns,
			ConnectTimeout:  specs.TenantConnectTimeout,
			MaxConnIdleTime: specs.TenantMaxConnIdleTime,
			TracingEnabled:  specs.TracingEnabled,
		},
		tenantdb.HealthConfig{
			GracePeriod:  specs.TenantHealthGracePeriod,
			Interval:     specs.TenantHealthInterval,
			ProbeTimeout: specs.TenantHealthProbeTimeout,
		},
		logger,
	)
	pools := tenantdb.NewManager(registry, s, specs.TenantDSNCacheTTL, tracer, monitor, logger)
	defer pools.ReleaseAll()

	tenantStore := tenantstorage.NewTenantStorage(pools, tracer, monitor, logger)
	mailer := mail.NewLogMailer(specs.MailFromAddress, logger)

	router := web.NewRouter(
		web.RouterConfig{
			InvitationLifetime: specs.InvitationLifetime,
			BaseURL:            specs.BaseURL,
			CORSAllowedOrigins: []string{"*"},
		},
		s,
		tenantStore,
		dbClient,
		mailer,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

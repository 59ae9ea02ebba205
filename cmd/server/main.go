package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"penledger/internal/audit"
	"penledger/internal/authz"
	authzmetrics "penledger/internal/authz/metrics"
	"penledger/internal/ledger"
	"penledger/internal/platform/config"
	"penledger/internal/platform/httpserver"
	"penledger/internal/platform/logger"
	pensionersvc "penledger/internal/pensioner/service"
	pensionerstore "penledger/internal/pensioner/store"
	"penledger/internal/payout"
	payoutmetrics "penledger/internal/payout/metrics"
	httptransport "penledger/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	auditPub := audit.NewPublisher(audit.NewInMemoryStore(), log)

	authzSvc := authz.New(authz.NewInMemory(cfg.Owner()),
		authz.WithLogger(log),
		authz.WithMetrics(authzmetrics.New()),
		authz.WithAudit(auditPub),
	)

	records := pensionerstore.NewInMemory()
	pensioners := pensionersvc.New(records, authzSvc, cfg.EligibilityYears,
		pensionersvc.WithLogger(log),
		pensionersvc.WithAudit(auditPub),
	)

	ledgerSvc := ledger.New(ledger.NewInMemory(), records, authzSvc,
		ledger.WithLogger(log),
		ledger.WithAudit(auditPub),
	)

	payouts := payout.New(records, ledgerSvc, authzSvc, payout.NewInMemoryBenefitStore(),
		payout.WithLogger(log),
		payout.WithMetrics(payoutmetrics.New()),
		payout.WithAudit(auditPub),
	)

	handler := httptransport.NewHandler(authzSvc, pensioners, ledgerSvc, payouts, auditPub, log)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting penledger", "addr", cfg.Addr, "owner", cfg.Owner())

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

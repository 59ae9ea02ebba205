// Package httptransport is the thin HTTP layer over the ledger core. It
// decodes requests, resolves the caller identity set by the middleware, and
// delegates to domain services without embedding business logic.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"penledger/internal/audit"
	"penledger/internal/authz"
	"penledger/internal/ledger"
	"penledger/internal/platform/middleware"
	pensionersvc "penledger/internal/pensioner/service"
	"penledger/internal/payout"
	"penledger/pkg/platform/httputil"
)

// Handler wires the domain services behind the message-style interface.
type Handler struct {
	authz      *authz.Service
	pensioners *pensionersvc.Service
	ledger     *ledger.Service
	payouts    *payout.Service
	audit      *audit.Publisher
	logger     *slog.Logger
}

func NewHandler(
	authzSvc *authz.Service,
	pensioners *pensionersvc.Service,
	ledgerSvc *ledger.Service,
	payouts *payout.Service,
	auditPub *audit.Publisher,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authz:      authzSvc,
		pensioners: pensioners,
		ledger:     ledgerSvc,
		payouts:    payouts,
		audit:      auditPub,
		logger:     logger,
	}
}

// NewRouter wires all endpoints. Queries and commands both require a caller
// identity; the transport layer upstream has already authenticated it.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(h.logger))

		r.Get("/owner", h.handleGetOwner)
		r.Post("/owner/transfer", h.handleTransferOwnership)

		r.Route("/roles", func(r chi.Router) {
			r.Post("/companies", h.registerRole(authz.RoleCompany))
			r.Get("/companies/{id}", h.checkRole(authz.RoleCompany))
			r.Delete("/companies/{id}", h.unregisterRole(authz.RoleCompany))
			r.Post("/banks", h.registerRole(authz.RoleBank))
			r.Get("/banks/{id}", h.checkRole(authz.RoleBank))
			r.Delete("/banks/{id}", h.unregisterRole(authz.RoleBank))
			r.Post("/tax-offices", h.registerRole(authz.RoleTaxOffice))
			r.Get("/tax-offices/{id}", h.checkRole(authz.RoleTaxOffice))
			r.Delete("/tax-offices/{id}", h.unregisterRole(authz.RoleTaxOffice))
		})

		r.Route("/pensioners", func(r chi.Router) {
			r.Post("/", h.handleRegisterPensioner)
			r.Get("/{id}", h.handleGetRecord)
			r.Put("/{id}/employment", h.handleUpdateEmployment)
			r.Put("/{id}/beneficiary", h.handleSetBeneficiary)
			r.Post("/{id}/insurances", h.handleAddInsurance)
			r.Get("/{id}/insurances", h.handleListInsurances)
			r.Put("/{id}/tax-rate", h.handleSetTaxRate)
			r.Get("/{id}/tax-rate", h.handleGetTaxRate)
			r.Get("/{id}/payout/estimate", h.handleEstimatePayout)
			r.Post("/{id}/payout/initiate", h.handleInitiatePayout)
			r.Post("/{id}/payout/complete", h.handleCompletePayout)
			r.Post("/{id}/death", h.handleReportDeath)
			r.Post("/{id}/death-benefit/paid", h.handleMarkDeathBenefitPaid)
		})

		r.Get("/beneficiaries/{id}/death-benefit", h.handleGetDeathBenefit)
		r.Get("/audit/{id}", h.handleListAudit)
	})

	return r
}

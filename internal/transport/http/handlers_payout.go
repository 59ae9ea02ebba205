package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	id "penledger/pkg/domain"
	"penledger/pkg/platform/httputil"
	"penledger/pkg/requestcontext"
)

func (h *Handler) handleEstimatePayout(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	amount, err := h.payouts.EstimatePayout(r.Context(), pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"estimate": amount})
}

func (h *Handler) handleInitiatePayout(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller := requestcontext.CallerID(r.Context())
	record, err := h.payouts.InitiatePayout(r.Context(), caller, pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleCompletePayout(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller := requestcontext.CallerID(r.Context())
	record, err := h.payouts.CompletePayout(r.Context(), caller, pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleReportDeath(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller := requestcontext.CallerID(r.Context())
	record, err := h.payouts.ReportDeath(r.Context(), caller, pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleMarkDeathBenefitPaid(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller := requestcontext.CallerID(r.Context())
	record, err := h.payouts.MarkDeathBenefitPaid(r.Context(), caller, pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetDeathBenefit(w http.ResponseWriter, r *http.Request) {
	spouseID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	benefit, err := h.payouts.DeathBenefitFor(r.Context(), spouseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, benefit)
}

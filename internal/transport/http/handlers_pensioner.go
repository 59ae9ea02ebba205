package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"penledger/internal/pensioner/models"
	id "penledger/pkg/domain"
	"penledger/pkg/platform/httputil"
	"penledger/pkg/requestcontext"
)

type registerPensionerRequest struct {
	PensionerID string `json:"pensioner_id"`
	EmployerID  string `json:"employer_id"`
}

type updateEmploymentRequest struct {
	YearsWorked int64  `json:"years_worked"`
	Salary      int64  `json:"salary"`
	Status      string `json:"status"`
}

type setBeneficiaryRequest struct {
	SpouseID string `json:"spouse_id"`
}

type addInsuranceRequest struct {
	Amount  int64  `json:"amount"`
	Details string `json:"details"`
}

type setTaxRateRequest struct {
	Percent int64 `json:"percent"`
}

func (h *Handler) handleRegisterPensioner(w http.ResponseWriter, r *http.Request) {
	var req registerPensionerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	pensionerID, err := id.ParseAccountID(req.PensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	employerID, err := id.ParseAccountID(req.EmployerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	record, err := h.pensioners.Register(r.Context(), caller, pensionerID, employerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.pensioners.GetRecord(r.Context(), pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleUpdateEmployment(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req updateEmploymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	status, err := models.ParseEmploymentStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	record, err := h.pensioners.UpdateEmployment(r.Context(), caller, pensionerID, req.YearsWorked, req.Salary, status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleSetBeneficiary(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req setBeneficiaryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	spouseID, err := id.ParseAccountID(req.SpouseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	record, err := h.pensioners.SetBeneficiary(r.Context(), caller, pensionerID, spouseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleAddInsurance(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req addInsuranceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	policy, err := h.ledger.AddInsurancePolicy(r.Context(), caller, pensionerID, req.Amount, req.Details)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, policy)
}

func (h *Handler) handleListInsurances(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	policies, err := h.ledger.Policies(r.Context(), pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"policies": policies})
}

func (h *Handler) handleSetTaxRate(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req setTaxRateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	rate, err := h.ledger.SetTaxRate(r.Context(), caller, pensionerID, req.Percent)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rate)
}

func (h *Handler) handleGetTaxRate(w http.ResponseWriter, r *http.Request) {
	pensionerID, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rate, err := h.ledger.TaxRateFor(r.Context(), pensionerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rate)
}

package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"penledger/internal/authz"
	id "penledger/pkg/domain"
	"penledger/pkg/platform/httputil"
	"penledger/pkg/requestcontext"
)

type registerRoleRequest struct {
	ID string `json:"id"`
}

type transferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

func (h *Handler) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.authz.Owner(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"owner": owner.String()})
}

func (h *Handler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req transferOwnershipRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	newOwner, err := id.ParseAccountID(req.NewOwner)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caller := requestcontext.CallerID(r.Context())
	if err := h.authz.TransferOwnership(r.Context(), caller, newOwner); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"owner": newOwner.String()})
}

// registerRole returns the handler for one role set's registration endpoint.
func (h *Handler) registerRole(role authz.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRoleRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
		account, err := id.ParseAccountID(req.ID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		caller := requestcontext.CallerID(r.Context())
		switch role {
		case authz.RoleCompany:
			err = h.authz.RegisterCompany(r.Context(), caller, account)
		case authz.RoleBank:
			err = h.authz.RegisterBank(r.Context(), caller, account)
		case authz.RoleTaxOffice:
			err = h.authz.RegisterTaxOffice(r.Context(), caller, account)
		}
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{
			"id":   account.String(),
			"role": role.String(),
		})
	}
}

// checkRole returns the handler for one role set's membership query.
func (h *Handler) checkRole(role authz.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := id.ParseAccountID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		var authorized bool
		switch role {
		case authz.RoleCompany:
			authorized, err = h.authz.IsAuthorizedCompany(r.Context(), account)
		case authz.RoleBank:
			authorized, err = h.authz.IsAuthorizedBank(r.Context(), account)
		case authz.RoleTaxOffice:
			authorized, err = h.authz.IsAuthorizedTaxOffice(r.Context(), account)
		}
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"id":         account.String(),
			"role":       role.String(),
			"authorized": authorized,
		})
	}
}

func (h *Handler) unregisterRole(role authz.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := id.ParseAccountID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		caller := requestcontext.CallerID(r.Context())
		switch role {
		case authz.RoleCompany:
			err = h.authz.UnregisterCompany(r.Context(), caller, account)
		case authz.RoleBank:
			err = h.authz.UnregisterBank(r.Context(), caller, account)
		case authz.RoleTaxOffice:
			err = h.authz.UnregisterTaxOffice(r.Context(), caller, account)
		}
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	account, err := id.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.audit.List(r.Context(), account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

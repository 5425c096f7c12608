package controllers

import (
	"net/http"
	"strings"

	"github.com/devmarket-mx/tienda-backend/api/responses"
	"github.com/devmarket-mx/tienda-backend/api/validators"
	leasesvc "github.com/devmarket-mx/tienda-backend/internal/lease"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
)

// LeaseRequest opens a new software lease for the signed-in customer.
func LeaseRequest(svc leasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leasesvc.RequestLease
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lease, err := svc.Request(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lease)
	}
}

func LeaseListMine(svc leasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		leases, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, leases)
	}
}

func AdminLeaseList(svc leasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *enums.LeaseStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseLeaseStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			status = &parsed
		}

		leases, err := svc.ListAll(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, leases)
	}
}

func AdminLeaseActivate(svc leasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leaseID, err := pathUUID(r, "leaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lease, err := svc.Activate(r.Context(), leaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lease)
	}
}

func AdminLeaseCancel(svc leasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leaseID, err := pathUUID(r, "leaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lease, err := svc.Cancel(r.Context(), leaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lease)
	}
}

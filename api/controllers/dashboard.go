package controllers

import (
	"net/http"

	"github.com/devmarket-mx/tienda-backend/api/responses"
	dashboardsvc "github.com/devmarket-mx/tienda-backend/internal/dashboard"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
)

// AdminDashboard serves the back-office landing snapshot.
func AdminDashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

package http

import "net/http"

func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetDashboardSummary(r.Context(), user.UserID)
	if err != nil {
		writeMappedError(w, r, "dashboard_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

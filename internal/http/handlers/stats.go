package handlers

import (
	"net/http"

	"server/internal/domain"
	"server/internal/sqlinline"
)

// DashboardStats serves the admin dashboard totals with month-over-month
// deltas. Everything is recomputed from the store on each call.
func (a *App) DashboardStats(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDashboardStats)
	var totalUsers, totalRequests int64
	var totalFunding int64
	var usersThis, usersLast, requestsThis, requestsLast int64
	var fundingThis, fundingLast int64
	if err := row.Scan(&totalUsers, &totalFunding, &totalRequests,
		&usersThis, &usersLast, &fundingThis, &fundingLast,
		&requestsThis, &requestsLast); err != nil {
		a.internal(w, err, "failed to load dashboard stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"totalUsers":     totalUsers,
		"totalFunding":   totalFunding,
		"totalRequests":  totalRequests,
		"usersChange":    domain.PercentChange(float64(usersThis), float64(usersLast)),
		"fundingChange":  domain.PercentChange(float64(fundingThis), float64(fundingLast)),
		"requestsChange": domain.PercentChange(float64(requestsThis), float64(requestsLast)),
	})
}

// LiveCounts serves the public landing-page counters.
func (a *App) LiveCounts(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QLiveCounts)
	var donors, volunteers, requests, successful int64
	var funding int64
	if err := row.Scan(&donors, &volunteers, &funding, &requests, &successful); err != nil {
		a.internal(w, err, "failed to load live counts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"totalDonors":              donors,
		"totalVolunteers":          volunteers,
		"totalFunding":             funding,
		"totalRequests":            requests,
		"totalSuccessfulDonations": successful,
	})
}

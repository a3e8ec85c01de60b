package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/core"
	"github.com/certwatch/certwatch/internal/model"
)

// Check serves the poller-compatible expiry summary.
type Check struct {
	svc        *core.MonitorService
	windowDays int
}

func NewCheck(svc *core.MonitorService, windowDays int) *Check {
	return &Check{svc: svc, windowDays: windowDays}
}

type notifiedDomain struct {
	Domain        string     `json:"domain"`
	RemainingDays int        `json:"remainingDays"`
	ExpiryDate    model.Date `json:"expiry_date"`
}

func (h *Check) Run(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.ExpiringDomains(r.Context(), h.windowDays)
	if err != nil {
		serverError(w, r, err)
		return
	}

	notified := make([]notifiedDomain, 0, len(domains))
	for _, d := range domains {
		notified = append(notified, notifiedDomain{
			Domain:        d.Domain,
			RemainingDays: remainingDays(d.ExpiryDate, time.Now()),
			ExpiryDate:    d.ExpiryDate,
		})
	}

	response.Write(w, http.StatusOK, "check complete", map[string]any{
		"total_domains":    len(domains),
		"notified_domains": notified,
	})
}

// remainingDays counts whole days until expiry, rounding up. A domain
// expiring today yields 0.
func remainingDays(expiry model.Date, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

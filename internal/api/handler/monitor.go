package handler

import (
	"net/http"

	"github.com/certwatch/certwatch/internal/api/request"
	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/core"
	"github.com/certwatch/certwatch/internal/model"
)

type Monitor struct {
	svc        *core.MonitorService
	windowDays int
}

func NewMonitor(svc *core.MonitorService, windowDays int) *Monitor {
	return &Monitor{svc: svc, windowDays: windowDays}
}

// Overview returns domains and certificates expiring within the configured
// window, queried independently.
func (h *Monitor) Overview(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.ExpiringDomains(r.Context(), h.windowDays)
	if err != nil {
		serverError(w, r, err)
		return
	}

	certs, err := h.svc.ExpiringCertificates(r.Context(), h.windowDays)
	if err != nil {
		serverError(w, r, err)
		return
	}

	response.Write(w, http.StatusOK, "monitor overview retrieved", map[string]any{
		"expiringDomains":      domains,
		"expiringCertificates": certs,
	})
}

func (h *Monitor) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetAlertConfig(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "alert config retrieved", cfg)
}

func (h *Monitor) SetConfig(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAlertConfig
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := req.Days
	if days == 0 {
		days = model.DefaultAlertDays
	}

	cfg := &model.AlertConfig{
		TGToken:  req.TGToken,
		TGUserID: req.TGUserID,
		Days:     days,
	}
	if err := h.svc.SetAlertConfig(r.Context(), cfg); err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "alert config updated", nil)
}

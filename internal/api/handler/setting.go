package handler

import (
	"encoding/json"
	"net/http"

	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/core"
)

type Setting struct {
	svc *core.SettingService
}

func NewSetting(svc *core.SettingService) *Setting {
	return &Setting{svc: svc}
}

func (h *Setting) GetAll(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "settings retrieved", settings)
}

// SetAll upserts every key in the body and echoes the submitted mapping
// back, not the stored state.
func (h *Setting) SetAll(w http.ResponseWriter, r *http.Request) {
	var settings map[string]string
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.svc.SetAll(r.Context(), settings); err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "settings updated", settings)
}

// Migrate is a placeholder, not a migration runner: it ensures the version
// table exists and reports the current version.
func (h *Setting) Migrate(w http.ResponseWriter, r *http.Request) {
	version, err := h.svc.Migrate(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "database migration failed: "+err.Error())
		return
	}
	response.Write(w, http.StatusOK, "database migration complete", map[string]int{"version": version})
}

func (h *Setting) Backup(w http.ResponseWriter, r *http.Request) {
	dump, err := h.svc.Backup(r.Context())
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, "backup failed: "+err.Error())
		return
	}
	response.Write(w, http.StatusOK, "backup complete", dump)
}

func (h *Setting) Restore(w http.ResponseWriter, r *http.Request) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid backup payload")
		return
	}
	// A JSON null decodes without error into a nil map.
	if payload == nil {
		response.WriteError(w, http.StatusBadRequest, "invalid backup payload")
		return
	}

	if err := h.svc.Restore(r.Context(), payload); err != nil {
		response.WriteError(w, http.StatusInternalServerError, "restore failed: "+err.Error())
		return
	}
	response.Write(w, http.StatusOK, "restore complete", nil)
}

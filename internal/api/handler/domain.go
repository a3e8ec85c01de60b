package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/certwatch/certwatch/internal/api/request"
	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/core"
	"github.com/certwatch/certwatch/internal/model"
)

type Domain struct {
	svc *core.DomainService
}

func NewDomain(svc *core.DomainService) *Domain {
	return &Domain{svc: svc}
}

func (h *Domain) List(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "domains retrieved", domains)
}

func (h *Domain) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	domain, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "domain not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "domain retrieved", domain)
}

func (h *Domain) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDomain
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.Create(r.Context(), domainFromRequest(&req, 0))
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusCreated, "domain created", map[string]int64{"id": id})
}

func (h *Domain) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateDomain
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), domainFromRequest(&req, id)); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "domain not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "domain updated", nil)
}

func (h *Domain) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "domain not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "domain deleted", nil)
}

func domainFromRequest(req *request.CreateDomain, id int64) *model.Domain {
	status := req.Status
	if status == "" {
		status = model.DomainStatusActive
	}
	return &model.Domain{
		ID:            id,
		Domain:        req.Domain,
		Registrar:     req.Registrar,
		RegistrarLink: req.RegistrarLink,
		RegistrarDate: req.RegistrarDate,
		ExpiryDate:    req.ExpiryDate,
		ServiceType:   req.ServiceType,
		Status:        status,
		Memo:          req.Memo,
	}
}

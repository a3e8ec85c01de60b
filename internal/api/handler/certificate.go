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

type Certificate struct {
	svc *core.CertificateService
}

func NewCertificate(svc *core.CertificateService) *Certificate {
	return &Certificate{svc: svc}
}

func (h *Certificate) List(w http.ResponseWriter, r *http.Request) {
	certs, err := h.svc.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "certificates retrieved", certs)
}

func (h *Certificate) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "certificate not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "certificate retrieved", cert)
}

func (h *Certificate) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.Create(r.Context(), certificateFromRequest(&req, 0))
	if err != nil {
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusCreated, "certificate created", map[string]int64{"id": id})
}

func (h *Certificate) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), certificateFromRequest(&req, id)); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "certificate not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "certificate updated", nil)
}

func (h *Certificate) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "certificate not found")
			return
		}
		serverError(w, r, err)
		return
	}
	response.Write(w, http.StatusOK, "certificate deleted", nil)
}

func certificateFromRequest(req *request.CreateCertificate, id int64) *model.Certificate {
	status := req.Status
	if status == "" {
		status = model.CertStatusUnknown
	}
	source := req.Source
	if source == "" {
		source = model.CertSourceManual
	}
	return &model.Certificate{
		ID:                 id,
		DomainID:           req.DomainID,
		CommonName:         req.CommonName,
		Status:             status,
		AutoRenew:          req.AutoRenew,
		Issuer:             req.Issuer,
		ValidFrom:          req.ValidFrom,
		ValidTo:            req.ValidTo,
		CertificateContent: req.CertificateContent,
		PrivateKey:         req.PrivateKey,
		CertificateChain:   req.CertificateChain,
		Fingerprint:        req.Fingerprint,
		KeyType:            req.KeyType,
		KeySize:            req.KeySize,
		SAN:                req.SAN,
		Source:             source,
		Memo:               req.Memo,
	}
}

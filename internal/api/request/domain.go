package request

import "github.com/certwatch/certwatch/internal/model"

type CreateDomain struct {
	Domain        string      `json:"domain" validate:"required"`
	Registrar     string      `json:"registrar"`
	RegistrarLink string      `json:"registrar_link"`
	RegistrarDate *model.Date `json:"registrar_date"`
	ExpiryDate    model.Date  `json:"expiry_date" validate:"required"`
	ServiceType   string      `json:"service_type"`
	Status        string      `json:"status"`
	Memo          string      `json:"memo"`
}

// UpdateDomain is a full replace of all fields, same requirements as create.
type UpdateDomain = CreateDomain

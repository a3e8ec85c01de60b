package model

import "time"

const DomainStatusActive = "active"

type Domain struct {
	ID            int64     `json:"id"`
	Domain        string    `json:"domain"`
	Registrar     string    `json:"registrar"`
	RegistrarLink string    `json:"registrar_link"`
	RegistrarDate *Date     `json:"registrar_date"`
	ExpiryDate    Date      `json:"expiry_date"`
	ServiceType   string    `json:"service_type"`
	Status        string    `json:"status"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

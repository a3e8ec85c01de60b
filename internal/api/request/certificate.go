package request

import "github.com/certwatch/certwatch/internal/model"

type CreateCertificate struct {
	DomainID           *int64      `json:"domain_id"`
	CommonName         string      `json:"common_name" validate:"required"`
	Status             string      `json:"status"`
	AutoRenew          bool        `json:"auto_renew"`
	Issuer             string      `json:"issuer"`
	ValidFrom          *model.Date `json:"valid_from"`
	ValidTo            *model.Date `json:"valid_to"`
	CertificateContent string      `json:"certificate_content"`
	PrivateKey         string      `json:"private_key"`
	CertificateChain   string      `json:"certificate_chain"`
	Fingerprint        string      `json:"fingerprint"`
	KeyType            string      `json:"key_type"`
	KeySize            *int        `json:"key_size"`
	SAN                string      `json:"san"`
	Source             string      `json:"source"`
	Memo               string      `json:"memo"`
}

// UpdateCertificate is a full replace of all fields, same requirements as
// create.
type UpdateCertificate = CreateCertificate

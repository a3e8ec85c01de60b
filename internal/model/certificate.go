package model

import "time"

const (
	CertStatusUnknown = "unknown"
	CertSourceManual  = "manual"
)

type Certificate struct {
	ID         int64  `json:"id"`
	DomainID   *int64 `json:"domain_id"`
	CommonName string `json:"common_name"`
	Status     string `json:"status"`
	AutoRenew  bool   `json:"auto_renew"`
	Issuer     string `json:"issuer"`
	ValidFrom  *Date  `json:"valid_from"`
	ValidTo    *Date  `json:"valid_to"`
	// Certificate material is stored as-is; there is no encryption at rest.
	CertificateContent string    `json:"certificate_content"`
	PrivateKey         string    `json:"private_key"`
	CertificateChain   string    `json:"certificate_chain"`
	Fingerprint        string    `json:"fingerprint"`
	KeyType            string    `json:"key_type"`
	KeySize            *int      `json:"key_size"`
	SAN                string    `json:"san"`
	Source             string    `json:"source"`
	Memo               string    `json:"memo"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

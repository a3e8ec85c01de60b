package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/certwatch/certwatch/internal/model"
)

type CertificateService struct {
	db DB
}

func NewCertificateService(db DB) *CertificateService {
	return &CertificateService{db: db}
}

const certificateColumns = `id, domain_id, common_name, status, auto_renew, issuer,
	valid_from, valid_to, certificate_content, private_key, certificate_chain,
	fingerprint, key_type, key_size, san, source, memo, created_at, updated_at`

func scanCertificate(row interface{ Scan(dest ...any) error }) (model.Certificate, error) {
	var c model.Certificate
	err := row.Scan(&c.ID, &c.DomainID, &c.CommonName, &c.Status, &c.AutoRenew, &c.Issuer,
		&c.ValidFrom, &c.ValidTo, &c.CertificateContent, &c.PrivateKey, &c.CertificateChain,
		&c.Fingerprint, &c.KeyType, &c.KeySize, &c.SAN, &c.Source, &c.Memo,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *CertificateService) Create(ctx context.Context, cert *model.Certificate) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO certificates (domain_id, common_name, status, auto_renew, issuer,
			valid_from, valid_to, certificate_content, private_key, certificate_chain,
			fingerprint, key_type, key_size, san, source, memo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
		 RETURNING id`,
		cert.DomainID, cert.CommonName, cert.Status, cert.AutoRenew, cert.Issuer,
		cert.ValidFrom, cert.ValidTo, cert.CertificateContent, cert.PrivateKey,
		cert.CertificateChain, cert.Fingerprint, cert.KeyType, cert.KeySize,
		cert.SAN, cert.Source, cert.Memo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create certificate: %w", err)
	}
	return id, nil
}

func (s *CertificateService) GetByID(ctx context.Context, id int64) (*model.Certificate, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM certificates WHERE id = $1", certificateColumns), id,
	)
	c, err := scanCertificate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get certificate %d: %w", id, err)
	}
	return &c, nil
}

func (s *CertificateService) List(ctx context.Context) ([]model.Certificate, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM certificates ORDER BY created_at DESC", certificateColumns),
	)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certificates: %w", err)
	}
	return certs, nil
}

func (s *CertificateService) Update(ctx context.Context, cert *model.Certificate) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE certificates
		 SET domain_id = $1, common_name = $2, status = $3, auto_renew = $4, issuer = $5,
		     valid_from = $6, valid_to = $7, certificate_content = $8, private_key = $9,
		     certificate_chain = $10, fingerprint = $11, key_type = $12, key_size = $13,
		     san = $14, source = $15, memo = $16, updated_at = now()
		 WHERE id = $17`,
		cert.DomainID, cert.CommonName, cert.Status, cert.AutoRenew, cert.Issuer,
		cert.ValidFrom, cert.ValidTo, cert.CertificateContent, cert.PrivateKey,
		cert.CertificateChain, cert.Fingerprint, cert.KeyType, cert.KeySize,
		cert.SAN, cert.Source, cert.Memo, cert.ID,
	)
	if err != nil {
		return fmt.Errorf("update certificate %d: %w", cert.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CertificateService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM certificates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete certificate %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/certwatch/certwatch/internal/model"
)

type DomainService struct {
	db DB
}

func NewDomainService(db DB) *DomainService {
	return &DomainService{db: db}
}

const domainColumns = `id, domain, registrar, registrar_link, registrar_date, expiry_date,
	service_type, status, memo, created_at, updated_at`

func scanDomain(row interface{ Scan(dest ...any) error }) (model.Domain, error) {
	var d model.Domain
	err := row.Scan(&d.ID, &d.Domain, &d.Registrar, &d.RegistrarLink, &d.RegistrarDate,
		&d.ExpiryDate, &d.ServiceType, &d.Status, &d.Memo, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *DomainService) Create(ctx context.Context, domain *model.Domain) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO domains (domain, registrar, registrar_link, registrar_date, expiry_date,
			service_type, status, memo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		 RETURNING id`,
		domain.Domain, domain.Registrar, domain.RegistrarLink, domain.RegistrarDate,
		domain.ExpiryDate, domain.ServiceType, domain.Status, domain.Memo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create domain: %w", err)
	}
	return id, nil
}

func (s *DomainService) GetByID(ctx context.Context, id int64) (*model.Domain, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM domains WHERE id = $1", domainColumns), id,
	)
	d, err := scanDomain(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get domain %d: %w", id, err)
	}
	return &d, nil
}

func (s *DomainService) List(ctx context.Context) ([]model.Domain, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM domains ORDER BY created_at DESC", domainColumns),
	)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	domains := []model.Domain{}
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domains: %w", err)
	}
	return domains, nil
}

func (s *DomainService) Update(ctx context.Context, domain *model.Domain) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE domains
		 SET domain = $1, registrar = $2, registrar_link = $3, registrar_date = $4,
		     expiry_date = $5, service_type = $6, status = $7, memo = $8, updated_at = now()
		 WHERE id = $9`,
		domain.Domain, domain.Registrar, domain.RegistrarLink, domain.RegistrarDate,
		domain.ExpiryDate, domain.ServiceType, domain.Status, domain.Memo, domain.ID,
	)
	if err != nil {
		return fmt.Errorf("update domain %d: %w", domain.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DomainService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM domains WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete domain %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

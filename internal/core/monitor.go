package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/certwatch/certwatch/internal/model"
)

// MonitorService answers near-expiry queries and manages the alert config.
type MonitorService struct {
	db DB
}

func NewMonitorService(db DB) *MonitorService {
	return &MonitorService{db: db}
}

// ExpiringDomains returns domains whose expiry date falls between today and
// today+days, both inclusive, soonest first.
func (s *MonitorService) ExpiringDomains(ctx context.Context, days int) ([]model.Domain, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM domains
		 WHERE expiry_date >= CURRENT_DATE AND expiry_date <= CURRENT_DATE + $1::int
		 ORDER BY expiry_date ASC`, domainColumns),
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring domains: %w", err)
	}
	defer rows.Close()

	domains := []model.Domain{}
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expiring domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expiring domains: %w", err)
	}
	return domains, nil
}

// ExpiringCertificates returns certificates whose valid_to date falls between
// today and today+days, both inclusive. Certificates without a valid_to date
// are excluded.
func (s *MonitorService) ExpiringCertificates(ctx context.Context, days int) ([]model.Certificate, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM certificates
		 WHERE valid_to >= CURRENT_DATE AND valid_to <= CURRENT_DATE + $1::int
		 ORDER BY valid_to ASC`, certificateColumns),
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring certificates: %w", err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expiring certificate: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expiring certificates: %w", err)
	}
	return certs, nil
}

// GetAlertConfig returns the alert config, or defaults when none is stored.
func (s *MonitorService) GetAlertConfig(ctx context.Context) (*model.AlertConfig, error) {
	var cfg model.AlertConfig
	err := s.db.QueryRow(ctx,
		"SELECT id, tg_token, tg_userid, days, created_at, updated_at FROM alertcfg WHERE id = 1",
	).Scan(&cfg.ID, &cfg.TGToken, &cfg.TGUserID, &cfg.Days, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.AlertConfig{Days: model.DefaultAlertDays}, nil
		}
		return nil, fmt.Errorf("get alert config: %w", err)
	}
	return &cfg, nil
}

// SetAlertConfig stores the alert config as a single atomic upsert, so
// concurrent writers cannot produce duplicate rows.
func (s *MonitorService) SetAlertConfig(ctx context.Context, cfg *model.AlertConfig) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO alertcfg (id, tg_token, tg_userid, days, created_at, updated_at)
		 VALUES (1, $1, $2, $3, now(), now())
		 ON CONFLICT (id) DO UPDATE
		 SET tg_token = EXCLUDED.tg_token, tg_userid = EXCLUDED.tg_userid,
		     days = EXCLUDED.days, updated_at = now()`,
		cfg.TGToken, cfg.TGUserID, cfg.Days,
	)
	if err != nil {
		return fmt.Errorf("set alert config: %w", err)
	}
	return nil
}

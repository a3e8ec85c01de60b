package model

import "time"

// DefaultAlertDays is the expiry window returned when no alert config exists.
const DefaultAlertDays = 30

type AlertConfig struct {
	ID        int64     `json:"id"`
	TGToken   string    `json:"tg_token"`
	TGUserID  string    `json:"tg_userid"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

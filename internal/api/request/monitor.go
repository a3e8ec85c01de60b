package request

type UpdateAlertConfig struct {
	TGToken  string `json:"tg_token"`
	TGUserID string `json:"tg_userid"`
	Days     int    `json:"days" validate:"gte=0"`
}

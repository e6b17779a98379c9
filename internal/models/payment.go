package models

// PaymentStage is a step of the payment screen. Stages only move forward.
type PaymentStage string

const (
	StageLoadingDraft  PaymentStage = "loading_draft"
	StageAwaitingInput PaymentStage = "awaiting_input"
	StageValidating    PaymentStage = "validating"
	StageProcessing    PaymentStage = "processing"
	StageCompleted     PaymentStage = "completed"
)

type CardForm struct {
	Number string `json:"card_number"`
	Name   string `json:"card_name"`
	Expiry string `json:"expiry_date"`
	CVV    string `json:"cvv"`
}

// BankInfo is the advisory result of a BIN lookup.
type BankInfo struct {
	Brand   string `json:"brand"`
	Type    string `json:"type"`
	Bank    string `json:"bank"`
	Country string `json:"country"`
	Prepaid *bool  `json:"prepaid,omitempty"`
}

type CardInspection struct {
	Formatted string    `json:"formatted"`
	Brand     string    `json:"brand"`
	BankInfo  *BankInfo `json:"bank_info,omitempty"`
}

type PaymentState struct {
	Stage    PaymentStage `json:"stage"`
	Draft    *OrderDraft  `json:"order,omitempty"`
	Message  string       `json:"message,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

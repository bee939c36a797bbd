package dto

type PaymentDetailsRequest struct {
	RedirectResult string `json:"redirectResult"`
	SessionID      string `json:"sessionId"`
}

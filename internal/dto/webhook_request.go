package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const NotificationAccepted = "[accepted]"

type NotificationRequest struct {
	Live              string                    `json:"live"`
	NotificationItems []NotificationItemWrapper `json:"notificationItems"`
}

// NotificationItemWrapper keeps the item raw so that one malformed item
// does not fail decoding of the whole batch.
type NotificationItemWrapper struct {
	NotificationRequestItem json.RawMessage `json:"NotificationRequestItem"`
}

type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

type NotificationRequestItem struct {
	PSPReference        string                 `json:"pspReference"`
	OriginalReference   string                 `json:"originalReference,omitempty"`
	MerchantAccountCode string                 `json:"merchantAccountCode"`
	MerchantReference   string                 `json:"merchantReference"`
	Amount              *Amount                `json:"amount"`
	EventCode           string                 `json:"eventCode"`
	EventDate           string                 `json:"eventDate,omitempty"`
	Success             SuccessFlag            `json:"success"`
	Reason              string                 `json:"reason,omitempty"`
	PaymentMethod       string                 `json:"paymentMethod,omitempty"`
	Operations          []string               `json:"operations,omitempty"`
	AdditionalData      map[string]interface{} `json:"additionalData,omitempty"`
}

func (i NotificationRequestItem) HMACSignature() string {
	signature, _ := i.AdditionalData["hmacSignature"].(string)
	return signature
}

// SuccessFlag is sent by the provider as the string "true" or "false". A JSON
// boolean is accepted as well and normalised to the same strings.
type SuccessFlag string

func (f *SuccessFlag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = SuccessFlag(strconv.FormatBool(b))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("success must be a string or a boolean: %w", err)
	}

	*f = SuccessFlag(s)
	return nil
}

func (f SuccessFlag) IsTrue() bool {
	return f == "true"
}

type NotificationResponse struct {
	NotificationResponse string `json:"notificationResponse"`
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
)

// HMACSigner verifies the integrity code attached to each notification item.
// A signer without a key accepts every item.
type HMACSigner struct {
	key []byte
}

func CreateHMACSigner(key string) *HMACSigner {
	return &HMACSigner{key: []byte(key)}
}

func (s *HMACSigner) Enabled() bool {
	return len(s.key) > 0
}

// SigningString joins the signed fields of item with ':' in the order the
// provider signs them. An absent original reference contributes an empty field.
func SigningString(item dto.NotificationRequestItem) (string, error) {
	if item.Amount == nil {
		return "", fmt.Errorf("%w: amount is missing", errs.ErrMalformedNotification)
	}

	return strings.Join([]string{
		item.PSPReference,
		item.OriginalReference,
		item.MerchantAccountCode,
		item.MerchantReference,
		strconv.FormatInt(item.Amount.Value, 10),
		item.Amount.Currency,
		item.EventCode,
		string(item.Success),
	}, ":"), nil
}

// Sign returns the base64 HMAC-SHA256 of the item's signing string.
func (s *HMACSigner) Sign(item dto.NotificationRequestItem) (string, error) {
	payload, err := SigningString(item)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func (s *HMACSigner) Verify(item dto.NotificationRequestItem) error {
	if !s.Enabled() {
		return nil
	}

	signature := item.HMACSignature()
	if signature == "" {
		return errs.ErrMissingSignature
	}

	expected, err := s.Sign(item)
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errs.ErrInvalidSignature
	}

	return nil
}

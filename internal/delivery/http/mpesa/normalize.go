// Package mpesa translates Daraja STK push callbacks into normalized
// payment events. It owns all knowledge of the provider envelope; nothing
// past this package sees M-Pesa field names.
package mpesa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/shopspring/decimal"
)

type stkEnvelope struct {
	Body struct {
		StkCallback stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type stkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []metadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

type metadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// Normalize maps one STK callback body to a payment event for the rental the
// callback URL was registered for. Amounts decode through json.Number so
// "950.00" survives as an exact decimal instead of a float.
func Normalize(rentalID string, body []byte) (*domain.PaymentEvent, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var envelope stkEnvelope
	if err := decoder.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("malformed stk callback: %w", err)
	}

	callback := envelope.Body.StkCallback
	if callback.CheckoutRequestID == "" {
		return nil, fmt.Errorf("stk callback missing CheckoutRequestID")
	}

	event := &domain.PaymentEvent{
		RentalID:   rentalID,
		Success:    callback.ResultCode == 0,
		ReceivedAt: time.Now(),
		Raw:        body,
	}

	if !event.Success {
		// Declined pushes carry no receipt; the checkout id still uniquely
		// names the attempt.
		event.TransactionID = callback.CheckoutRequestID
		return event, nil
	}

	for _, item := range callback.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			amount, err := decimalValue(item.Value)
			if err != nil {
				return nil, fmt.Errorf("stk callback amount: %w", err)
			}
			event.Amount = amount
		case "MpesaReceiptNumber":
			receipt, ok := item.Value.(string)
			if !ok {
				return nil, fmt.Errorf("stk callback receipt is not a string")
			}
			event.TransactionID = receipt
		case "PhoneNumber":
			event.PhoneNumber = stringValue(item.Value)
		}
	}

	if event.TransactionID == "" {
		return nil, fmt.Errorf("successful stk callback missing MpesaReceiptNumber")
	}

	return event, nil
}

func decimalValue(v interface{}) (decimal.Decimal, error) {
	switch value := v.(type) {
	case json.Number:
		return decimal.NewFromString(value.String())
	case string:
		return decimal.NewFromString(value)
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}
}

func stringValue(v interface{}) string {
	switch value := v.(type) {
	case json.Number:
		return value.String()
	case string:
		return value
	default:
		return ""
	}
}

package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/shopspring/decimal"
)

// Payment method buckets. Anything that doesn't match a known label lands in
// MethodOther, which keeps the breakdown exhaustive: its values always sum to
// the sales total.
const (
	MethodCash  = "cash"
	MethodMomo  = "momo"
	MethodCard  = "card"
	MethodOther = "other"
)

// PaymentEvent is the single normalized internal representation of a payment:
// every historical payment_data shape is parsed down to a []PaymentEvent once
// at ingestion, before any aggregation runs.
type PaymentEvent struct {
	Method string
	Amount decimal.Decimal
}

// paymentDescriptor matches one {method, amount} element of the structured
// payload. Older clients wrote "paymentType" instead of "method"; decimal
// accepts both JSON numbers and numeric strings.
type paymentDescriptor struct {
	Method      string          `json:"method"`
	PaymentType string          `json:"paymentType"`
	Amount      decimal.Decimal `json:"amount"`
}

func (d paymentDescriptor) method() string {
	if d.Method != "" {
		return d.Method
	}
	if d.PaymentType != "" {
		return d.PaymentType
	}
	return MethodOther
}

// paymentPayload matches the structured object shape: either a "payments"
// array (split payment) or a single top-level descriptor.
type paymentPayload struct {
	paymentDescriptor
	Payments []paymentDescriptor `json:"payments"`
}

// NormalizePayments resolves an order's payment classification with this
// precedence:
//
//  1. payment_data parses (directly, or after unwrapping a JSON string) to an
//     object with a "payments" array, or to a bare array → split payment: one
//     event per element with the element's amount.
//  2. payment_data has a top-level method/paymentType → single payment for
//     the order total.
//  3. the legacy payment_method column is set → single payment, lower-cased.
//  4. otherwise → "other" for the order total.
//
// Malformed payloads never abort: they fall through to the next rule, since
// a report must be producible even from imperfect upstream data.
func NormalizePayments(o *model.Order) []PaymentEvent {
	if events := parsePaymentData(o.PaymentData, o.Total); events != nil {
		return events
	}
	if o.PaymentMethod != nil && strings.TrimSpace(*o.PaymentMethod) != "" {
		return []PaymentEvent{{Method: *o.PaymentMethod, Amount: o.Total}}
	}
	return []PaymentEvent{{Method: MethodOther, Amount: o.Total}}
}

func parsePaymentData(raw []byte, total decimal.Decimal) []PaymentEvent {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// Some clients double-encoded the payload as a JSON string.
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return nil
		}
	}

	// Bare array of descriptors.
	if data[0] == '[' {
		var descriptors []paymentDescriptor
		if err := json.Unmarshal(data, &descriptors); err != nil || len(descriptors) == 0 {
			return nil
		}
		return descriptorEvents(descriptors)
	}

	var payload paymentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	if len(payload.Payments) > 0 {
		return descriptorEvents(payload.Payments)
	}
	if payload.Method != "" || payload.PaymentType != "" {
		return []PaymentEvent{{Method: payload.method(), Amount: total}}
	}
	return nil
}

func descriptorEvents(descriptors []paymentDescriptor) []PaymentEvent {
	events := make([]PaymentEvent, 0, len(descriptors))
	for _, d := range descriptors {
		events = append(events, PaymentEvent{Method: d.method(), Amount: d.Amount})
	}
	return events
}

// methodBucket lower-cases a method label and collapses anything outside the
// known set into "other".
func methodBucket(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case MethodCash:
		return MethodCash
	case MethodMomo:
		return MethodMomo
	case MethodCard:
		return MethodCard
	default:
		return MethodOther
	}
}

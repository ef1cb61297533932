package wizard

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
)

// Level of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is the side channel through which resolvers and the saga
// report outcomes to the operator. Remote failures end up here instead of
// being returned as errors.
type Notification struct {
	Level   Level     `json:"level"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	At      time.Time `json:"at"`
}

// Codes used by the wizard handlers.
const (
	CodeContactSaved         = "contact_saved"
	CodeContactSaveFailed    = "contact_save_failed"
	CodeBoxSaved             = "box_saved"
	CodeBoxSaveFailed        = "box_save_failed"
	CodeOrderSaved           = "order_saved"
	CodeOrderSaveFailed      = "order_save_failed"
	CodeShipmentLookupFailed = "shipment_lookup_failed"
	CodeRatesFailed          = "rates_failed"
	CodeProviderFailed       = "provider_selection_failed"
	CodeFulfillFailed        = "fulfillment_failed"
	CodeFulfilled            = "fulfilled"
	CodeStockFailed          = "stock_decrement_failed"
	CodeIdentityUnknown      = "identity_unknown"
)

// notificationFor classifies err into a notification. Business rule errors
// keep their rule as code.
func notificationFor(code string, err error, at time.Time) Notification {
	n := Notification{Level: LevelError, Code: code, Message: err.Error(), At: at}

	var rule *errs.BusinessRuleError
	if errors.As(err, &rule) {
		n.Code = rule.Rule
		n.Message = rule.Message
	}
	var field *errs.FieldValidationError
	if errors.As(err, &field) {
		n.Field = field.Field
	}
	if errors.Is(err, errs.ErrIdentityUnknown) {
		n.Code = CodeIdentityUnknown
	}
	return n
}

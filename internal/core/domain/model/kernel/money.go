package kernel

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned for a zero-value Money.
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney")

	// ErrCurrencyMismatch is returned when adding amounts of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// DefaultCurrency is used when a remote payload omits the currency.
const DefaultCurrency = "MXN"

// Money is an amount in a given ISO-4217 currency. Amounts are never negative.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("189.50"), "MXN")
//	total, err := price.Add(insurance)
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates amount and currency. The currency is upper-cased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}
	return m, nil
}

// ZeroMoney returns a zero amount in currency, falling back to DefaultCurrency.
func ZeroMoney(currency string) Money {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: strings.ToUpper(currency), guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency, guard: guard.NewConstructorGuard()}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO-4217 code", currency))
	}
	m.currency = currency
	return nil
}

package fic

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var integerAmountPattern = regexp.MustCompile(`^-?\d+$`)

// PreciseMoney is an immutable monetary amount expressed as an integer
// count of the currency's minor units. All arithmetic is delegated to the
// injected Calculator, so amounts never pass through binary floating
// point.
type PreciseMoney struct {
	amount     string
	currency   Currency
	calculator Calculator
}

// MoneyOption customizes PreciseMoney construction.
type MoneyOption func(*PreciseMoney)

// WithCalculator injects an arithmetic backend. The default is
// DefaultCalculator.
func WithCalculator(calc Calculator) MoneyOption {
	return func(m *PreciseMoney) {
		m.calculator = calc
	}
}

// NewMoney builds an amount from an integer string of minor units, for
// example "1025" EUR for €10.25.
func NewMoney(amount string, currency Currency, opts ...MoneyOption) (PreciseMoney, error) {
	if !integerAmountPattern.MatchString(amount) {
		return PreciseMoney{}, fmt.Errorf("%w: %q", ErrAmountNotNumeric, amount)
	}

	money := PreciseMoney{
		amount:     amount,
		currency:   currency,
		calculator: DefaultCalculator(),
	}

	for _, opt := range opts {
		opt(&money)
	}

	return money, nil
}

// NewMoneyFromMajor builds an amount from a decimal string of major units,
// for example "10.25" EUR. The value is scaled by the currency's subunit
// factor and rounded to a whole number of minor units.
func NewMoneyFromMajor(amount string, currency Currency, opts ...MoneyOption) (PreciseMoney, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return PreciseMoney{}, fmt.Errorf("%w: %q", ErrAmountNotNumeric, amount)
	}

	minor := parsed.Mul(currency.subunitFactor()).Round(0)

	return NewMoney(minor.String(), currency, opts...)
}

// Amount returns the integer minor-unit amount as a string.
func (m PreciseMoney) Amount() string {
	return m.amount
}

// Currency returns the currency of the amount.
func (m PreciseMoney) Currency() Currency {
	return m.currency
}

// MajorUnits formats the amount in major units with five decimal digits,
// the precision carried on the wire.
func (m PreciseMoney) MajorUnits() string {
	parsed, _ := decimal.NewFromString(m.amount)

	return parsed.Div(m.currency.subunitFactor()).StringFixed(5)
}

func (m PreciseMoney) derive(amount string) PreciseMoney {
	return PreciseMoney{
		amount:     amount,
		currency:   m.currency,
		calculator: m.calculator,
	}
}

func (m PreciseMoney) assertSameCurrency(other PreciseMoney) error {
	if !m.currency.Equals(other.currency) {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency.Code(), other.currency.Code())
	}

	return nil
}

// Add returns the sum of both amounts. The currencies must match.
func (m PreciseMoney) Add(other PreciseMoney) (PreciseMoney, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return PreciseMoney{}, err
	}

	sum, err := m.calculator.Add(m.amount, other.amount)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(sum), nil
}

// Subtract returns the difference of both amounts. The currencies must
// match.
func (m PreciseMoney) Subtract(other PreciseMoney) (PreciseMoney, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return PreciseMoney{}, err
	}

	diff, err := m.calculator.Subtract(m.amount, other.amount)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(diff), nil
}

// Multiply scales the amount by a decimal multiplier and rounds the result
// to a whole number of minor units.
func (m PreciseMoney) Multiply(multiplier string) (PreciseMoney, error) {
	product, err := m.calculator.Multiply(m.amount, multiplier)
	if err != nil {
		return PreciseMoney{}, err
	}

	rounded, err := m.calculator.Round(product, 0)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(rounded), nil
}

// Divide scales the amount down by a decimal divisor and rounds the result
// to a whole number of minor units.
func (m PreciseMoney) Divide(divisor string) (PreciseMoney, error) {
	quotient, err := m.calculator.Divide(m.amount, divisor)
	if err != nil {
		return PreciseMoney{}, err
	}

	rounded, err := m.calculator.Round(quotient, 0)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(rounded), nil
}

// Absolute returns the amount with any sign removed.
func (m PreciseMoney) Absolute() (PreciseMoney, error) {
	abs, err := m.calculator.Absolute(m.amount)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(abs), nil
}

// Negative returns the amount with the sign flipped.
func (m PreciseMoney) Negative() (PreciseMoney, error) {
	negated, err := m.calculator.Subtract("0", m.amount)
	if err != nil {
		return PreciseMoney{}, err
	}

	return m.derive(negated), nil
}

// Compare returns -1, 0 or 1 depending on whether the amount is smaller
// than, equal to or greater than the other. The currencies must match.
func (m PreciseMoney) Compare(other PreciseMoney) (int, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return 0, err
	}

	return m.calculator.Compare(m.amount, other.amount)
}

// Equals reports whether both amounts carry the same currency and value.
func (m PreciseMoney) Equals(other PreciseMoney) bool {
	if !m.currency.Equals(other.currency) {
		return false
	}

	cmp, err := m.calculator.Compare(m.amount, other.amount)

	return err == nil && cmp == 0
}

// GreaterThan reports whether the amount exceeds the other. The currencies
// must match.
func (m PreciseMoney) GreaterThan(other PreciseMoney) (bool, error) {
	cmp, err := m.Compare(other)

	return cmp > 0, err
}

// LessThan reports whether the amount is below the other. The currencies
// must match.
func (m PreciseMoney) LessThan(other PreciseMoney) (bool, error) {
	cmp, err := m.Compare(other)

	return cmp < 0, err
}

// IsZero reports whether the amount is exactly zero.
func (m PreciseMoney) IsZero() bool {
	cmp, err := m.calculator.Compare(m.amount, "0")

	return err == nil && cmp == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m PreciseMoney) IsPositive() bool {
	cmp, err := m.calculator.Compare(m.amount, "0")

	return err == nil && cmp > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (m PreciseMoney) IsNegative() bool {
	cmp, err := m.calculator.Compare(m.amount, "0")

	return err == nil && cmp < 0
}

// Allocate splits the amount across the given ratios without losing minor
// units. Each share starts as floor(amount * ratio / sum(ratios)); the
// remainder is then handed out one minor unit at a time in ratio order, so
// allocating 100 across [1, 1, 1] yields [34, 33, 33].
func (m PreciseMoney) Allocate(ratios ...int) ([]PreciseMoney, error) {
	if len(ratios) == 0 {
		return nil, ErrEmptyRatios
	}

	var total int64
	for _, ratio := range ratios {
		if ratio < 0 {
			return nil, ErrNegativeRatio
		}

		total += int64(ratio)
	}

	if total == 0 {
		return nil, ErrNonPositiveRatioSum
	}

	totalStr := decimal.NewFromInt(total).String()
	remainder := m.amount
	shares := make([]PreciseMoney, 0, len(ratios))

	for _, ratio := range ratios {
		ratioStr := decimal.NewFromInt(int64(ratio)).String()

		share, err := m.calculator.Share(m.amount, ratioStr, totalStr)
		if err != nil {
			return nil, err
		}

		remainder, err = m.calculator.Subtract(remainder, share)
		if err != nil {
			return nil, err
		}

		shares = append(shares, m.derive(share))
	}

	for i := range shares {
		cmp, err := m.calculator.Compare(remainder, "0")
		if err != nil {
			return nil, err
		}

		if cmp <= 0 {
			break
		}

		if ratios[i] == 0 {
			continue
		}

		bumped, err := m.calculator.Add(shares[i].amount, "1")
		if err != nil {
			return nil, err
		}

		shares[i] = m.derive(bumped)

		remainder, err = m.calculator.Subtract(remainder, "1")
		if err != nil {
			return nil, err
		}
	}

	return shares, nil
}

// AllocateTo splits the amount across n equal targets.
func (m PreciseMoney) AllocateTo(n int) ([]PreciseMoney, error) {
	if n <= 0 {
		return nil, ErrNonPositiveTargetCount
	}

	ratios := make([]int, n)
	for i := range ratios {
		ratios[i] = 1
	}

	return m.Allocate(ratios...)
}

// moneyFromWire converts a wire amount in major units into a PreciseMoney,
// or nil when the value is absent.
func moneyFromWire(value string, currency Currency) (*PreciseMoney, error) {
	if value == "" {
		return nil, nil
	}

	money, err := NewMoneyFromMajor(value, currency)
	if err != nil {
		return nil, err
	}

	return &money, nil
}

// moneyToWire renders an amount in the fixed 5-decimal major-unit wire
// form, or nil when the amount is absent.
func moneyToWire(money *PreciseMoney) any {
	if money == nil {
		return nil
	}

	return money.MajorUnits()
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes the amount as {"amount": "...", "currency": "..."}.
func (m PreciseMoney) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency.Code()})
}

// UnmarshalJSON decodes the {"amount", "currency"} shape produced by
// MarshalJSON.
func (m *PreciseMoney) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse money: %w", err)
	}

	parsed, err := NewMoney(raw.Amount, NewCurrency(raw.Currency))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

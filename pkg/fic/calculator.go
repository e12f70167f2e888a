package fic

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Calculator is the arithmetic backend used by PreciseMoney. All operands
// and results are decimal strings; implementations must be exact for the
// supported precision.
type Calculator interface {
	Compare(a, b string) (int, error)
	Add(a, b string) (string, error)
	Subtract(a, b string) (string, error)
	Multiply(a, multiplier string) (string, error)
	Divide(a, divisor string) (string, error)
	Share(amount, ratio, total string) (string, error)
	Absolute(a string) (string, error)
	Round(a string, places int32) (string, error)
}

// DefaultCalculator returns the pure-software arbitrary-precision backend
// built on shopspring/decimal. It is used by PreciseMoney unless another
// Calculator is injected at construction.
func DefaultCalculator() Calculator {
	return decimalCalculator{}
}

type decimalCalculator struct{}

func (decimalCalculator) parse(value string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrOperandNotNumeric, value)
	}

	return parsed, nil
}

func (c decimalCalculator) Compare(a, b string) (int, error) {
	left, err := c.parse(a)
	if err != nil {
		return 0, err
	}

	right, err := c.parse(b)
	if err != nil {
		return 0, err
	}

	return left.Cmp(right), nil
}

func (c decimalCalculator) Add(a, b string) (string, error) {
	left, err := c.parse(a)
	if err != nil {
		return "", err
	}

	right, err := c.parse(b)
	if err != nil {
		return "", err
	}

	return left.Add(right).String(), nil
}

func (c decimalCalculator) Subtract(a, b string) (string, error) {
	left, err := c.parse(a)
	if err != nil {
		return "", err
	}

	right, err := c.parse(b)
	if err != nil {
		return "", err
	}

	return left.Sub(right).String(), nil
}

func (c decimalCalculator) Multiply(a, multiplier string) (string, error) {
	left, err := c.parse(a)
	if err != nil {
		return "", err
	}

	right, err := c.parse(multiplier)
	if err != nil {
		return "", err
	}

	return left.Mul(right).String(), nil
}

func (c decimalCalculator) Divide(a, divisor string) (string, error) {
	left, err := c.parse(a)
	if err != nil {
		return "", err
	}

	right, err := c.parse(divisor)
	if err != nil {
		return "", err
	}

	if right.IsZero() {
		return "", ErrDivisionByZero
	}

	return left.Div(right).String(), nil
}

// Share computes floor(amount * ratio / total), the proportional share used
// by allocation before remainder distribution.
func (c decimalCalculator) Share(amount, ratio, total string) (string, error) {
	parsed, err := c.parse(amount)
	if err != nil {
		return "", err
	}

	ratioDec, err := c.parse(ratio)
	if err != nil {
		return "", err
	}

	totalDec, err := c.parse(total)
	if err != nil {
		return "", err
	}

	if totalDec.IsZero() {
		return "", ErrDivisionByZero
	}

	return parsed.Mul(ratioDec).Div(totalDec).Floor().String(), nil
}

func (c decimalCalculator) Absolute(a string) (string, error) {
	parsed, err := c.parse(a)
	if err != nil {
		return "", err
	}

	return parsed.Abs().String(), nil
}

func (c decimalCalculator) Round(a string, places int32) (string, error) {
	parsed, err := c.parse(a)
	if err != nil {
		return "", err
	}

	return parsed.Round(places).String(), nil
}

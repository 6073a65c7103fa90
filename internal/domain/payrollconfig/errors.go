package payrollconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrConfigRowNotFound - an administration operation referenced a row that
// does not exist or is already retired.
var ErrConfigRowNotFound = errors.New("configuration row not found")

// ConfigNotFoundError - no non-retired configuration of the given kind is
// effective on or before the requested date. Requires administrator action;
// never retried automatically.
type ConfigNotFoundError struct {
	Kind Kind
	Date time.Time
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("%s configuration not found for date %s", e.Kind, e.Date.Format("2006-01-02"))
}

// BracketNotFoundError - a salary or taxable income falls outside every
// configured bracket. A data-completeness gap, never defaulted to zero.
type BracketNotFoundError struct {
	Kind   Kind
	Amount decimal.Decimal
}

func (e *BracketNotFoundError) Error() string {
	return fmt.Sprintf("no %s bracket found for amount %s", e.Kind, e.Amount.String())
}

package core

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the calendar date format used on the wire and in storage.
	DateLayout = "2006-01-02"

	MaxCategoryLength = 50
	MaxNoteLength     = 500

	// AmountScale is the number of decimal places an amount may carry.
	AmountScale = 2
)

// MaxAmount is the exclusive upper bound for an expense amount. Larger
// values lose precision in the REAL column.
var MaxAmount = decimal.New(1, 12)

func init() {
	// Amounts leave the API as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type (
	// Date is a calendar day without time of day.
	Date struct {
		time.Time
	}

	// Expense is a persisted expense record.
	Expense struct {
		ID        int64           `json:"id"`
		Amount    decimal.Decimal `json:"amount"`
		Category  string          `json:"category"`
		Note      string          `json:"note"`
		Date      Date            `json:"date"`
		CreatedAt time.Time       `json:"created_at"`
	}

	// NewExpense is a validated expense that has not been stored yet.
	NewExpense struct {
		Amount   decimal.Decimal
		Category string
		Note     string
		Date     Date
	}

	// ExpenseInput carries raw client values before validation.
	// Empty strings mean the field was not provided.
	ExpenseInput struct {
		Amount   string
		Category string
		Note     string
		Date     string
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// Value stores the date as TEXT.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan reads a date written as TEXT or returned as a timestamp by the driver.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = NewDate(v.Year(), int(v.Month()), v.Day())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks the raw input and returns a normalized expense.
// Missing fields are reported before malformed ones.
func (in ExpenseInput) Validate() (NewExpense, error) {
	var missing []string
	if strings.TrimSpace(in.Amount) == "" {
		missing = append(missing, "amount")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return NewExpense{}, NewValidationError(strings.Join(missing, ", "),
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return NewExpense{}, NewValidationError("amount", "Amount must be a valid number")
	}
	if !amount.IsPositive() {
		return NewExpense{}, NewValidationError("amount", "Amount must be greater than 0")
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return NewExpense{}, NewValidationError("amount",
			fmt.Sprintf("Amount must be less than %s", MaxAmount.String()))
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return NewExpense{}, NewValidationError("amount",
			fmt.Sprintf("Amount must have at most %d decimal places", AmountScale))
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		return NewExpense{}, NewValidationError("category", "Category cannot be empty")
	}
	if len([]rune(category)) > MaxCategoryLength {
		return NewExpense{}, NewValidationError("category",
			fmt.Sprintf("Category must be at most %d characters", MaxCategoryLength))
	}

	note := strings.TrimSpace(in.Note)
	if len([]rune(note)) > MaxNoteLength {
		return NewExpense{}, NewValidationError("note",
			fmt.Sprintf("Note must be at most %d characters", MaxNoteLength))
	}

	date, err := ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return NewExpense{}, NewValidationError("date", "Date must be in YYYY-MM-DD format")
	}

	return NewExpense{
		Amount:   amount,
		Category: category,
		Note:     note,
		Date:     date,
	}, nil
}

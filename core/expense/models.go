package expense

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var Categories = []string{"أكل", "مواصلات", "تسوق", "فواتير", "ترفيه", "صحة", "تعليم", "ملابس", "هدايا", "أخرى"}

var DefaultCategory = Categories[0]

type Expense struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e Expense) ItemID() string { return e.ID }

// Input is the add/edit form of an Expense. Date defaults to today.
type Input struct {
	Name     string  `json:"name" validate:"required,notblank,max=200"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Category string  `json:"category" validate:"required,expensecategory"`
	Date     string  `json:"date" validate:"required,isodate"`
	Notes    string  `json:"notes" validate:"max=2000"`
}

func (in *Input) Validate(validate *validator.Validate, now time.Time) error {
	in.Name = core.CleanString(in.Name)
	in.Notes = core.CleanString(in.Notes)
	in.Category = core.CleanString(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	in.Date = core.CleanString(in.Date)
	if in.Date == "" {
		in.Date = core.FormatDate(now)
	}
	return validate.Struct(in)
}

func (in Input) fields() map[string]interface{} {
	return map[string]interface{}{
		"name":     in.Name,
		"amount":   in.Amount,
		"category": in.Category,
		"date":     in.Date,
		"notes":    in.Notes,
	}
}

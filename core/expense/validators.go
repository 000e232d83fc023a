package expense

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var (
	categoryTag  = "expensecategory"
	categoryText = "unknown expense category"
)

// InitValidators registers the expense validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, core.OneOfValidation(Categories))
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}

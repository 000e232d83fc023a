package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var (
	dayTag  = "scheduleday"
	dayText = "unknown day"

	slotTag  = "scheduleslot"
	slotText = "unknown time slot"
)

// InitValidators registers the schedule validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dayTag, core.OneOfValidation(Days))
	core.RegisterCustomTranslation(validate, translator, dayTag, dayText)

	_ = validate.RegisterValidation(slotTag, core.OneOfValidation(Slots))
	core.RegisterCustomTranslation(validate, translator, slotTag, slotText)
}

package reminder

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var (
	repeatTypeTag  = "repeattype"
	repeatTypeText = fmt.Sprintf("repeat type must be one of: %s", strings.Join(RepeatTypes, ", "))
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(repeatTypeTag, core.OneOfValidation(RepeatTypes))
	core.RegisterCustomTranslation(validate, translator, repeatTypeTag, repeatTypeText)
}

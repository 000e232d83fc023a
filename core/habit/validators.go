package habit

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var (
	frequencyTag  = "habitfrequency"
	frequencyText = fmt.Sprintf("frequency must be one of: %s", strings.Join(Frequencies, ", "))
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(frequencyTag, core.OneOfValidation(Frequencies))
	core.RegisterCustomTranslation(validate, translator, frequencyTag, frequencyText)
}

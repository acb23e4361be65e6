package usecase

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/go-playground/validator/v10"
)

// newValidator - общий валидатор для всех сервисов,
// имена полей в ошибках берем из json тегов
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// checkStruct прогоняет структуру запроса через validator и складывает
// ошибки в verrs по полям
func checkStruct(validate *validator.Validate, req interface{}, verrs *entity.ValidationError) {
	err := validate.Struct(req)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verrs.Add("non_field_errors", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		verrs.Add(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	default:
		return "This value is invalid."
	}
}

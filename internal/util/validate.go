package util

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs validator/v10 tags over a request struct and folds the
// first failure into a ValidationErr so callers get the usual 400 mapping.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return ValidationErr("invalid field " + errs[0].Field())
		}
		return ValidationErr(err.Error())
	}
	return nil
}

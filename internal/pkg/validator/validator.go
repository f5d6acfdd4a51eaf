package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Transaction type validation
	validate.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		return t == "income" || t == "expense"
	})

	// Expense category validation
	validate.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		if category == "" {
			return true // required-ness is checked separately for expenses
		}
		validCategories := []string{
			"groceries", "rent", "utilities", "transportation", "entertainment",
			"dining", "health", "insurance", "clothing", "personal", "savings", "others",
		}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier"
		case "txtype":
			errors[field] = "Invalid type. Must be: income or expense"
		case "expense_category":
			errors[field] = "Unknown expense category"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

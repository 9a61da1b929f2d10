package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// NotBlank fails on strings made of white space only
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func Slug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom form tags to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("notblank", NotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("slug", Slug)
}

// ValidationFields turns binding errors into a field -> message map
func ValidationFields(err error) map[string]string {
	fields := map[string]string{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = err.Error()
		return fields
	}
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			fields[name] = "This field is required"
		case "slug":
			fields[name] = "Enter a valid slug consisting of letters, numbers, underscores or hyphens"
		case "max":
			fields[name] = "Ensure this value has at most " + fe.Param() + " characters"
		default:
			fields[name] = "Enter a valid value"
		}
	}
	return fields
}

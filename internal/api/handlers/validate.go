package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so the error bodies match the
	// request payloads.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationErrors maps validator failures to the wire error list, looking
// up the message for each failed field.
func validationErrors(err error, messages map[string]string) []errorItem {
	var items []errorItem
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			msg, known := messages[fe.Field()]
			if !known {
				msg = "Invalid value"
			}
			items = append(items, errorItem{Msg: msg, Param: fe.Field(), Location: "body"})
		}
	}
	if len(items) == 0 {
		items = append(items, errorItem{Msg: "Invalid request body", Location: "body"})
	}
	return items
}

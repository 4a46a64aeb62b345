package rest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// describeBindError turns validator output into a short client message.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid JSON body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

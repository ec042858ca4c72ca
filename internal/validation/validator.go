package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidBody is returned when a request body is not the expected JSON document
var ErrInvalidBody = errors.New("invalid request body")

// New returns a validator that reports fields by their JSON names and
// checks decimal prices, which struct tags cannot express.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(menuItemStructValidation, MenuItemRequest{})
	v.RegisterStructValidation(menuItemUpdateStructValidation, MenuItemUpdateRequest{})
	v.RegisterStructValidation(offerStructValidation, OfferRequest{})

	return v
}

// Decode reads a JSON body into out and validates it
func Decode(body io.Reader, out interface{}, v *validatorv10.Validate) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return v.Struct(out)
}

// Message renders a decode or validation error as a short client-facing message
func Message(err error) string {
	if errors.Is(err, ErrInvalidBody) {
		return "Invalid request body"
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return "Bad request"
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func menuItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(MenuItemRequest)
	reportNonPositive(sl, req.Price)
}

func menuItemUpdateStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(MenuItemUpdateRequest)
	reportNonPositive(sl, req.Price)
}

func offerStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(OfferRequest)
	reportNonPositive(sl, req.Price)
}

func reportNonPositive(sl validatorv10.StructLevel, price decimal.Decimal) {
	if !price.IsPositive() {
		sl.ReportError(price.String(), "price", "Price", "gt", "0")
	}
}

package services

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var minExtraPercent = decimal.NewFromInt(-100)

// ItemInput is a product row as typed by the user, before parsing.
type ItemInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	NetPrice     string `json:"net_price"`
	ExtraPercent string `json:"extra_percent"`
}

// Validate checks the trimmed input. It does not trim on its own; use Parse.
func (in ItemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Description, validation.Required.Error("description is required")),
		validation.Field(&in.NetPrice,
			validation.Required.Error("net price is required"),
			validation.By(decimalRule("net price is not a valid number", "net price cannot be negative", decimal.Zero)),
		),
		validation.Field(&in.ExtraPercent,
			validation.Required.Error("extra percentage is required"),
			validation.By(decimalRule("extra percentage is not a valid number", "extra percentage cannot be below -100", minExtraPercent)),
		),
	)
}

// Parse trims and validates the input and returns the typed values.
func (in ItemInput) Parse() (name, description string, netPrice, extraPercent decimal.Decimal, err error) {
	in = ItemInput{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		NetPrice:     strings.TrimSpace(in.NetPrice),
		ExtraPercent: strings.TrimSpace(in.ExtraPercent),
	}
	if err := in.Validate(); err != nil {
		return "", "", decimal.Zero, decimal.Zero, toValidationError(err)
	}
	// Both parse; Validate has already checked them.
	netPrice = decimal.RequireFromString(in.NetPrice)
	extraPercent = decimal.RequireFromString(in.ExtraPercent)
	return in.Name, in.Description, netPrice, extraPercent, nil
}

// validateItem applies the same rules as ItemInput.Validate to typed values.
func validateItem(name, description string, netPrice, extraPercent decimal.Decimal) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(description) == "" {
		fields["description"] = "description is required"
	}
	if netPrice.IsNegative() {
		fields["net_price"] = "net price cannot be negative"
	}
	if extraPercent.LessThan(minExtraPercent) {
		fields["extra_percent"] = "extra percentage cannot be below -100"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func decimalRule(invalidMsg, belowMinMsg string, min decimal.Decimal) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return errors.New(invalidMsg)
		}
		if d.LessThan(min) {
			return errors.New(belowMinMsg)
		}
		return nil
	}
}

func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return &ValidationError{Fields: map[string]string{"input": err.Error()}}
	}
	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return &ValidationError{Fields: fields}
}

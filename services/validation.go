package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NameRules apply to every required 1..255 character string field (author names, region code/name, title on create).
func NameRules() []validation.Rule {
	return []validation.Rule{
		validation.NotNil.Error(MsgRequired),
		validation.Required.Error(MsgLength),
		validation.Length(1, 255).Error(MsgLength),
	}
}

// OptionalNameRules apply the length bound only when the field was sent.
func OptionalNameRules(value *string) []validation.Rule {
	return []validation.Rule{
		validation.When(value != nil,
			validation.Required.Error(MsgLength),
			validation.Length(1, 255).Error(MsgLength),
		),
	}
}

// ValidateRegionFields checks the fields needed to create a region.
func ValidateRegionFields(code, name *string) error {
	return FromValidation(validation.Errors{
		"code": validation.Validate(code, NameRules()...),
		"name": validation.Validate(name, NameRules()...),
	}.Filter())
}

// ValidateAuthorFields checks the fields of an author payload.
func ValidateAuthorFields(firstName, lastName *string) error {
	return FromValidation(validation.Errors{
		"first_name": validation.Validate(firstName, NameRules()...),
		"last_name":  validation.Validate(lastName, NameRules()...),
	}.Filter())
}

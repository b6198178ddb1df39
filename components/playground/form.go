package playground

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// RegistrationFailedPrefix starts every aggregated registration failure message.
const RegistrationFailedPrefix = "Registration Failed. Please check the following fields: "

// Registration submission latency bounds, [min, max).
const (
	RegistrationMinDelay = 3000 * time.Millisecond
	RegistrationMaxDelay = 6000 * time.Millisecond
)

// Registration field labels, in evaluation order.
const (
	LabelFirstName = "First Name"
	LabelLastName  = "Last Name"
	LabelEmail     = "Email"
	LabelPassword  = "Password"
	LabelPhone     = "Phone Number (10 digits)"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// RegistrationForm holds the registration form fields. ConfirmPassword and
// TermsAccepted are collected but no rule checks them.
type RegistrationForm struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	CountryCode     string `json:"country_code"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

// NewRegistrationForm returns an empty form with the default country code.
func NewRegistrationForm() RegistrationForm {
	return RegistrationForm{CountryCode: CountryCodes[0]}
}

// SetField updates one field by its form name. Unknown names are rejected.
func (f *RegistrationForm) SetField(name, value string) error {
	switch name {
	case "firstName", "first_name":
		f.FirstName = value
	case "lastName", "last_name":
		f.LastName = value
	case "email":
		f.Email = value
	case "countryCode", "country_code":
		f.CountryCode = value
	case "phoneNumber", "phone_number":
		f.PhoneNumber = value
	case "password":
		f.Password = value
	case "confirmPassword", "confirm_password":
		f.ConfirmPassword = value
	case "termsAccepted", "terms_accepted", "termcheck":
		checked, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			checked = value == "on"
		}
		f.TermsAccepted = checked
	default:
		return goerrors.New(fmt.Sprintf("unknown registration field %q", name), goerrors.CategoryBadInput)
	}
	return nil
}

// ValidationResult is the outcome of validating a registration form.
type ValidationResult struct {
	OK                 bool     `json:"ok"`
	MissingFieldLabels []string `json:"missing_field_labels,omitempty"`
}

// Message returns the aggregated failure message, or "" when valid.
func (r ValidationResult) Message() string {
	if r.OK {
		return ""
	}
	return RegistrationFailedPrefix + strings.Join(r.MissingFieldLabels, ", ")
}

// Err exposes a failed result as a validation error with ordered field errors.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	fields := make([]goerrors.FieldError, 0, len(r.MissingFieldLabels))
	for _, label := range r.MissingFieldLabels {
		fields = append(fields, goerrors.FieldError{Field: label, Message: "is required or invalid"})
	}
	return goerrors.NewValidation(r.Message(), fields...)
}

type registrationRule struct {
	label string
	check func(RegistrationForm) error
}

// Rules run in this order and every violation is collected.
var registrationRules = []registrationRule{
	{LabelFirstName, func(f RegistrationForm) error {
		return validation.Validate(strings.TrimSpace(f.FirstName), validation.Required)
	}},
	{LabelLastName, func(f RegistrationForm) error {
		return validation.Validate(strings.TrimSpace(f.LastName), validation.Required)
	}},
	{LabelEmail, func(f RegistrationForm) error {
		return validation.Validate(strings.TrimSpace(f.Email), validation.Required)
	}},
	{LabelPassword, func(f RegistrationForm) error {
		return validation.Validate(f.Password, validation.Required)
	}},
	{LabelPhone, func(f RegistrationForm) error {
		// Match skips empty values, which keeps the phone number optional.
		return validation.Validate(f.PhoneNumber, validation.Match(phonePattern))
	}},
}

// ValidateRegistration checks the form against the required-field and phone
// format rules.
func ValidateRegistration(form RegistrationForm) ValidationResult {
	var labels []string
	for _, rule := range registrationRules {
		if err := rule.check(form); err != nil {
			labels = append(labels, rule.label)
		}
	}
	return ValidationResult{OK: len(labels) == 0, MissingFieldLabels: labels}
}

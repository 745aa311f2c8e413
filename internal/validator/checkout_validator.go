package validator

import (
	"errors"
	"regexp"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	emailRe   = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return checkoutValidator{}
}

func (checkoutValidator) ValidateCheckout(form usecase.CheckoutForm) usecase.FieldErrors {
	return ValidateCheckoutForm(form)
}

// ValidateCheckoutForm は項目ごとのエラーを返す。空ならOK。
func ValidateCheckoutForm(form usecase.CheckoutForm) usecase.FieldErrors {
	errs := usecase.FieldErrors{}

	if isBlank(form.FullName) {
		errs[usecase.FieldFullName] = "Full name is required"
	}

	if isBlank(form.Email) {
		errs[usecase.FieldEmail] = "Email is required"
	} else if !isEmailLike(form.Email) {
		errs[usecase.FieldEmail] = "Email is invalid"
	}

	// 前後の空白は許さない（10桁ちょうど）
	if isBlank(form.Phone) {
		errs[usecase.FieldPhone] = "Phone number is required"
	} else if !phoneRe.MatchString(form.Phone) {
		errs[usecase.FieldPhone] = "Phone number must be 10 digits"
	}

	if isBlank(form.Address) {
		errs[usecase.FieldAddress] = "Address is required"
	}
	if isBlank(form.City) {
		errs[usecase.FieldCity] = "City is required"
	}
	if isBlank(form.State) {
		errs[usecase.FieldState] = "State is required"
	}

	if isBlank(form.Pincode) {
		errs[usecase.FieldPincode] = "Pincode is required"
	} else if !pincodeRe.MatchString(form.Pincode) {
		errs[usecase.FieldPincode] = "Pincode must be 6 digits"
	}

	if form.PaymentMethod != "" && !form.PaymentMethod.IsValid() {
		errs[usecase.FieldPaymentMethod] = "Payment method is invalid"
	}

	return errs
}

type contactValidator struct{}

func NewContactValidator() usecase.ContactValidator {
	return contactValidator{}
}

func (contactValidator) ValidateContact(msg model.ContactMessage) error {
	return ValidateContact(msg)
}

// お問い合わせの入力を検証
func ValidateContact(msg model.ContactMessage) error {
	if isBlank(msg.Name) || isBlank(msg.Email) || isBlank(msg.Message) {
		return ErrInvalidInput
	}
	if !isEmailLike(msg.Email) {
		return ErrInvalidInput
	}
	return nil
}

// 簡易メール形式をチェック（どこかに x@y.z があればOK）
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

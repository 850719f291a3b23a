package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents the canonical identity record.
type User struct {
	TheKeyGUID    string `validate:"required,guid"`
	RelayGUID     string
	OktaUserID    string
	Email         string `validate:"required_unless=Deactivated true,omitempty,email,max=256"`
	EmailVerified bool
	Deactivated   bool
	Password      string

	FirstName     string `validate:"max=128"`
	PreferredName string `validate:"max=128"`
	LastName      string `validate:"max=128"`

	TelephoneNumber string
	City            string
	State           string
	Postal          string
	Country         string

	MinistryCode     string
	SubMinistryCode  string
	DepartmentNumber string
	ManagerID        string
	EmployeeStatus   string
	EmployeeID       string
	Designation      string

	ProxyAddresses []string `validate:"dive,email"`
	Orca           bool

	GRMasterPersonID string
	GRPersonID       string

	MFABypassed          bool
	MFAEncryptedSecret   string
	MFAIntruderLocked    bool
	MFAIntruderAttempts  int
	MFAIntruderResetTime *time.Time

	SignupKey        string
	ProposedEmail    string
	ChangeEmailKey   string
	ResetPasswordKey string

	SecurityQuestion string
	SecurityAnswer   string

	LoginTime *time.Time

	Groups []Group
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("guid", func(fl validator.FieldLevel) bool {
		return ValidGUID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidGUID reports whether s is a GUID in its canonical hyphenated form.
// Upper and lower case hex digits are both accepted.
func ValidGUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

// Validate checks the user is fit to be written to a store.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUser, err.Error())
	}
	return nil
}

// PreferredNameOrFirst returns the preferred name, or the first name when none is set.
func (u *User) PreferredNameOrFirst() string {
	if u.PreferredName != "" {
		return u.PreferredName
	}
	return u.FirstName
}

// SetSecurityAnswer stores the security answer. When hash is false the answer is
// assumed to already be a stored hash and is copied as is.
func (u *User) SetSecurityAnswer(answer string, hash bool) error {
	if !hash || answer == "" {
		u.SecurityAnswer = answer
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash security answer: %w", err)
	}
	u.SecurityAnswer = string(hashed)
	return nil
}

// CheckSecurityAnswer reports whether answer matches the stored security answer.
func (u *User) CheckSecurityAnswer(answer string) bool {
	if u.SecurityAnswer == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.SecurityAnswer), []byte(normalizeAnswer(answer))) == nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

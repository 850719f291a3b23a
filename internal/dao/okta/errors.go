package okta

import (
	"errors"
	"strings"

	"github.com/dtroode/idm-okta/internal/model"
)

const (
	codeAPIValidationFailed   = "E0000001"
	summaryPasswordValidation = "Api validation failed: password"
	passwordCausePrefix       = "password: "
)

// toDomainError translates a provider failure. Password policy failures are only
// recognised when checkPassword is set, i.e. when a password was being written.
func toDomainError(err error, checkPassword bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrGroupNotFound) {
		return err
	}

	var perr *model.ProviderError
	if checkPassword && errors.As(err, &perr) &&
		perr.Code == codeAPIValidationFailed && perr.Summary == summaryPasswordValidation {
		var msg string
		if len(perr.Causes) > 0 {
			msg = strings.TrimPrefix(perr.Causes[0], passwordCausePrefix)
		}
		return &model.InvalidPasswordError{Message: msg}
	}

	return &model.ProviderOperationError{Err: err}
}

package validator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/util"
)

// ValidateLoginRequest requires a valid email unless a provider is named.
// Whether the provider exists is up to the session.
func ValidateLoginRequest(req *model.UserLoginRequest) error {
	if req == nil {
		return errors.New("login request is nil")
	}
	if strings.TrimSpace(req.Provider) != "" {
		return nil
	}
	if strings.TrimSpace(req.Email) == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(strings.TrimSpace(req.Email)) {
		return errors.New("email is invalid")
	}
	return nil
}

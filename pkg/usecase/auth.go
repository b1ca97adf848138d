package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// LoginInput carries one of two credential pairs: email+password for the
// admin path, or name+pin for the employee path.
type LoginInput struct {
	Email    string
	Password string `masq:"secret"`
	Name     string
	PIN      string `masq:"secret"`
}

// HashPIN returns the stored form of a PIN or password: the base64-encoded
// SHA-256 digest of the raw string.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Login authenticates either an admin (email and password, role must be
// admin) or an employee (trimmed case-insensitive name and PIN). A
// successful login stamps last_login. The returned employee never carries
// the PIN hash or push token.
func (uc *UseCases) Login(ctx context.Context, in LoginInput) (*model.Employee, error) {
	employees, err := uc.repo.Employee().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list employees for login")
	}

	var matched *model.Employee
	switch {
	case in.Email != "" && in.Password != "":
		hash := HashPIN(in.Password)
		email := strings.TrimSpace(in.Email)
		for _, emp := range employees {
			if emp.IsAdmin() &&
				strings.EqualFold(strings.TrimSpace(emp.Email), email) &&
				emp.PinHash == hash {
				matched = emp
				break
			}
		}

	case in.Name != "" && in.PIN != "":
		hash := HashPIN(in.PIN)
		name := strings.TrimSpace(in.Name)
		for _, emp := range employees {
			if strings.EqualFold(strings.TrimSpace(emp.Name), name) &&
				emp.PinHash == hash {
				matched = emp
				break
			}
		}

	default:
		return nil, goerr.Wrap(ErrInvalidCredentials, "login requires email+password or name+pin")
	}

	if matched == nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}

	matched.LastLogin = time.Now().UTC()
	updated, err := uc.repo.Employee().Update(ctx, matched)
	if err != nil {
		// The credentials were valid; a failed stamp should not reject
		// the login.
		logging.From(ctx).Error("failed to stamp last login",
			"employee_id", matched.ID,
			"error", err.Error(),
		)
		updated = matched
	}

	return sanitizeEmployee(updated), nil
}

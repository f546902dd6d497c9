package validate

import (
	"regexp"
	"strings"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const (
	MsgCredentialsRequired = "email and password required"
	MsgEmailFormat         = "invalid email format"
	MsgPasswordLength      = "password must be at least 6 characters"
	MsgPasswordInvalid     = "invalid password"
	MsgRole                = "role must be admin or common"
	minPasswordLength      = 6
)

// emailPattern matches local@domain.tld without whitespace.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func checkEmail(v any) (string, error) {
	email, ok := asString(v)
	if !ok || !emailPattern.MatchString(email) {
		return "", reject("email", MsgEmailFormat)
	}
	return strings.ToLower(strings.TrimSpace(email)), nil
}

// Registration validates a register body. A missing or empty role defaults
// to common.
func Registration(f Fields) (domain.Registration, error) {
	if !truthy(f["email"]) || !truthy(f["password"]) {
		return domain.Registration{}, reject("", MsgCredentialsRequired)
	}

	email, err := checkEmail(f["email"])
	if err != nil {
		return domain.Registration{}, err
	}

	password, ok := asString(f["password"])
	if !ok || trimmedLen(password) < minPasswordLength {
		return domain.Registration{}, reject("password", MsgPasswordLength)
	}

	role := domain.RoleCommon
	if truthy(f["role"]) {
		r, ok := asString(f["role"])
		if !ok || !domain.IsValidRole(r) {
			return domain.Registration{}, reject("role", MsgRole)
		}
		role = r
	}

	return domain.Registration{
		Email:    email,
		Password: strings.TrimSpace(password),
		Role:     role,
	}, nil
}

// Login validates a login body. Password length is not enforced here.
func Login(f Fields) (domain.Credentials, error) {
	if !truthy(f["email"]) || !truthy(f["password"]) {
		return domain.Credentials{}, reject("", MsgCredentialsRequired)
	}

	email, err := checkEmail(f["email"])
	if err != nil {
		return domain.Credentials{}, err
	}

	password, ok := asString(f["password"])
	if !ok || strings.TrimSpace(password) == "" {
		return domain.Credentials{}, reject("password", MsgPasswordInvalid)
	}

	return domain.Credentials{
		Email:    email,
		Password: strings.TrimSpace(password),
	}, nil
}

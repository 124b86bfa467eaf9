package util // import "github.com/Xunop/aldiaa/internal/util"

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// userNamespace scopes the identifiers derived from email addresses.
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://aldiaa.app/users"))

func GenUUID() string {
	return uuid.New().String()
}

// UserIDFromEmail derives a stable identifier from an email address, so the
// same account logs back into the same scope. An empty email gets a random id.
func UserIDFromEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return GenUUID()
	}
	return uuid.NewSHA1(userNamespace, []byte(email)).String()
}

// ValidateEmail validates the email.
func ValidateEmail(email string) bool {
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}
	return true
}

// EmailLocalPart returns the part before '@', or the whole string.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// NormalizeTitle is the comparison key of the duplicate check.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ContainsFold reports whether needle, lowercased, is a substring of the
// lowercased haystack. An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

package git

import (
	"net/url"
	"strings"
)

const hiddenStr = "**hidden**"

// redactor removes passwords that are part of URL arguments.
type redactor struct {
	orig    []string
	secrets []string
}

func newRedactor(args []string) *redactor {
	r := redactor{orig: args}

	for _, arg := range args {
		u, err := url.Parse(arg)
		if err != nil || u.User == nil {
			continue
		}

		if pw, ok := u.User.Password(); ok && pw != "" {
			r.secrets = append(r.secrets, pw)
		}
	}

	return &r
}

func (r *redactor) redact(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, hiddenStr)
	}

	return s
}

func (r *redactor) args() []string {
	result := make([]string, 0, len(r.orig))

	for _, arg := range r.orig {
		result = append(result, r.redact(arg))
	}

	return result
}

// RemoteURL returns the https URL of a GitHub repository with embedded
// credentials.
// serverURL is the URL of the GitHub server, e.g. https://github.com,
// repository is the "owner/name" of the repository.
func RemoteURL(serverURL, user, token, repository string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", err
	}

	u.User = url.UserPassword(user, token)
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + repository + ".git"

	return u.String(), nil
}

// Redact replaces the password of an URL with a placeholder.
// Strings that are not URLs with passwords are returned unchanged.
func Redact(s string) string {
	return newRedactor([]string{s}).redact(s)
}

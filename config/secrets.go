package config

import (
	"regexp"
	"strings"

	"github.com/kbukum/syncstream/errors"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.\-]+)\}`)

// SecretURI is a connection string expanded from a template.
type SecretURI struct {
	// Value is the expanded string, safe to hand to a client but never to a log.
	Value string
	// Loggable is the original template with placeholders intact.
	Loggable string
}

// String returns the loggable form so a SecretURI never leaks through %v.
func (s SecretURI) String() string { return s.Loggable }

// ExpandSecrets replaces every {name} placeholder in template with the value
// of key name in secrets. A placeholder without a matching secret fails with
// a MISSING_FIELD error naming it.
func ExpandSecrets(template string, secrets map[string]string) (SecretURI, error) {
	var missing string
	value := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := strings.Trim(token, "{}")
		if v, ok := lookupSecret(secrets, name); ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return token
	})
	if missing != "" {
		return SecretURI{}, errors.MissingField(missing)
	}
	return SecretURI{Value: value, Loggable: template}, nil
}

// ExpandSecretsFile reads secrets from an env-style file and expands template.
// An empty path leaves the template untouched.
func ExpandSecretsFile(template, path string, fs FileSystem) (SecretURI, error) {
	if path == "" || !placeholderPattern.MatchString(template) {
		return SecretURI{Value: template, Loggable: template}, nil
	}
	if fs == nil {
		fs = &RealFileSystem{}
	}
	secrets, err := fs.ReadEnv(path)
	if err != nil {
		return SecretURI{}, errors.NotFound("secrets file", path).WithCause(err)
	}
	return ExpandSecrets(template, secrets)
}

// lookupSecret accepts both the dotted key and its env spelling, so
// {uri.userid} resolves from either "uri.userid" or URI_USERID.
func lookupSecret(secrets map[string]string, name string) (string, bool) {
	if v, ok := secrets[name]; ok {
		return v, true
	}
	v, ok := secrets[envKey(name)]
	return v, ok
}

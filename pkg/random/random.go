package random

import (
	"crypto/rand"
	"encoding/base64"
)

// Source generates the identifier and secret formats the domain
// consumes: 96-bit ids and 32/384-bit secrets, all URL-safe base64
// without padding. It satisfies entity.Random.
type Source struct{}

func New() Source { return Source{} }

func urlSafe(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ID returns 12 random bytes as 16 URL-safe characters.
func (Source) ID() (string, error) { return urlSafe(12) }

// ShortSecret returns 4 random bytes as 6 URL-safe characters, the
// format used for invitation codes and challenge secrets.
func (Source) ShortSecret() (string, error) { return urlSafe(4) }

// LongSecret returns 48 random bytes as 64 URL-safe characters, the
// authentication-token credential format.
func (Source) LongSecret() (string, error) { return urlSafe(48) }

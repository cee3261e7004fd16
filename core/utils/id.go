package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateReferenceCode returns a short human-readable code such as
// "APP-7K2QX9M" shown to applicants and hosts in place of the UUID.
func GenerateReferenceCode(prefix string) string {
	id, err := gonanoid.Generate(referenceAlphabet, 7)
	if err != nil {
		return ""
	}
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}

package utils

import (
	rndm "math/rand"
	"path/filepath"
	"regexp"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w.\-]`)

// SanitizeFilename strips directory components and replaces anything that
// is not a word character, dot or dash.
func SanitizeFilename(name string) string {
	clean := unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}

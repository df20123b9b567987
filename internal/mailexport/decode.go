// Package mailexport decodes the payment-notification mail export into a
// clean HTML file the invoice bundle can include.
package mailexport

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// attributeQuotes matches the doubled attribute quotes the export mangles
// HTML with, e.g. `href=""x""`.
var attributeQuotes = regexp.MustCompile(`=""(.+?)""`)

// carriageArtifact is the literal the export leaves where carriage returns
// used to be.
const carriageArtifact = "_x000D_"

// Decode splits the raw mail export into headers and body, base64-decodes
// the body, and strips the export's encoding artifacts.
func Decode(raw string) (string, error) {
	body, err := splitBody(raw)
	if err != nil {
		return "", err
	}

	decoded, err := base64.StdEncoding.DecodeString(stripWhitespace(body))
	if err != nil {
		return "", fmt.Errorf("decoding mail body: %w", err)
	}

	result := attributeQuotes.ReplaceAllString(string(decoded), `="$1"`)
	result = strings.ReplaceAll(result, carriageArtifact, "")

	return result, nil
}

// DecodeToFile decodes the raw mail export and writes the result to
// outputPath, overwriting any existing file.
func DecodeToFile(raw, outputPath string) error {
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(decoded), 0o600)
}

// splitBody returns everything after the first blank line.
func splitBody(raw string) (string, error) {
	for _, sep := range []string{"\r\n\r\n", "\n\n"} {
		if _, body, found := strings.Cut(raw, sep); found {
			return body, nil
		}
	}
	return "", fmt.Errorf("mail export has no header/body separator")
}

// stripWhitespace removes the line wrapping mail transports add to base64
// bodies.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', ' ', '\t':
			return -1
		}
		return r
	}, s)
}

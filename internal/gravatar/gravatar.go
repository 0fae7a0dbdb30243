// Package gravatar implements the engine's Gravatar probe (C10): an MD5
// hash of the normalized email plus a HEAD request against gravatar.com.
package gravatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"emailengine/internal/model"
)

// baseURL is a var rather than a const so tests can point it at an
// httptest server instead of the real gravatar.com.
var baseURL = "https://www.gravatar.com/avatar/"

// Hash returns the MD5 hex digest Gravatar keys avatars by: the trimmed,
// lower-cased email.
func Hash(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// URL builds the avatar URL for a given hash and pixel size.
func URL(hash string, size int) string {
	return fmt.Sprintf("%s%s?s=%d", baseURL, hash, size)
}

// Check performs the HEAD probe against gravatar.com, per §4.12: 2xx means
// the avatar exists, 404 means it doesn't, anything else (including
// timeout) leaves checked=false.
func Check(ctx context.Context, client *http.Client, email string, timeout time.Duration) model.GravatarCheck {
	hash := Hash(email)
	probeURL := fmt.Sprintf("%s%s?d=404&s=1", baseURL, hash)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		return model.GravatarCheck{State: model.ProbeFailed}
	}

	resp, err := client.Do(req)
	if err != nil {
		return model.GravatarCheck{State: model.ProbeFailed}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return model.GravatarCheck{State: model.ProbeOK, Checked: true, Exists: true, URL: URL(hash, 200)}
	case resp.StatusCode == http.StatusNotFound:
		return model.GravatarCheck{State: model.ProbeOK, Checked: true, Exists: false}
	default:
		return model.GravatarCheck{State: model.ProbeFailed}
	}
}

package engine

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// newRootID generates an opaque, URL-safe root workflow id. Base64
// URL encoding never produces '/', which the queue message grammar
// relies on to unambiguously split "rootID/memoKey" on the first '/'.
func newRootID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("engine: generate root id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// joinMessage builds the "rootID/memoKey" queue message body.
func joinMessage(rootID, memoKey string) string {
	return rootID + "/" + memoKey
}

// splitMessage is joinMessage's inverse. It splits on the first '/'
// only: memoKey may itself contain '/' (a JSON-encoded string argument
// can), but rootID never does, so the first separator unambiguously
// marks the boundary.
func splitMessage(msg string) (rootID, memoKey string, err error) {
	idx := strings.IndexByte(msg, '/')
	if idx < 0 {
		return "", "", fmt.Errorf("engine: malformed message %q: missing separator", msg)
	}
	return msg[:idx], msg[idx+1:], nil
}

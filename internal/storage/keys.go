package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ChatUploadKey builds the object key for a file attached to the chat,
// prefixing a timestamp so repeated uploads of the same name never collide.
func ChatUploadKey(filename string, now time.Time) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return fmt.Sprintf("chat-uploads/%d_%s", now.Unix(), base)
}

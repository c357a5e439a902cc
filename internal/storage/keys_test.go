package storage

import (
	"strings"
	"testing"
	"time"
)

func TestChatUploadKey(t *testing.T) {
	ts := time.Unix(1700000000, 0)

	key := ChatUploadKey("contract draft.pdf", ts)
	if key != "chat-uploads/1700000000_contract_draft.pdf" {
		t.Fatalf("unexpected key: %s", key)
	}

	// path components in the client-supplied name are stripped
	key = ChatUploadKey("../../etc/passwd", ts)
	if strings.Contains(key, "..") {
		t.Fatalf("expected path components to be stripped, got %s", key)
	}

	key = ChatUploadKey("", ts)
	if key != "chat-uploads/1700000000_upload" {
		t.Fatalf("unexpected key for empty name: %s", key)
	}
}

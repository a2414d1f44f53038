package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"quiz-host-service/internal/domain"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := store.Put(ctx, "a.png", strings.NewReader("png-bytes"), 9, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	f, err := store.Open(ctx, "a.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}

	if _, err := store.Open(ctx, "missing.png"); !errors.Is(err, domain.ErrMediaNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

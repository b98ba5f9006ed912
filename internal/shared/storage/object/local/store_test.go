package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())

	err := store.Put(context.Background(), "reports/abc.json", "application/json", strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	body, err := store.Open(context.Background(), "reports/abc.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", data)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	for _, key := range []string{"../escape.json", "/abs.json", "."} {
		if err := store.Put(context.Background(), key, "application/json", strings.NewReader("x")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}

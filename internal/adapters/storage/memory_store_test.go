package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
)

func TestMemoryStoreSignalsRoundTrip(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	signals := &core.EmailSignals{
		UserEmail:           "user@example.com",
		AnalyzedAt:          time.Now().UTC(),
		TotalEmailsAnalyzed: 42,
	}
	if err := store.SaveSignals(ctx, signals); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSignals(ctx, "user@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalEmailsAnalyzed != 42 {
		t.Errorf("TotalEmailsAnalyzed = %d, want 42", got.TotalEmailsAnalyzed)
	}

	// Saved copy must not alias the caller's struct.
	signals.TotalEmailsAnalyzed = 0
	got, err = store.GetSignals(ctx, "user@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalEmailsAnalyzed != 42 {
		t.Errorf("stored signals aliased caller struct")
	}
}

func TestMemoryStoreSignalsNotFound(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())

	if _, err := store.GetSignals(context.Background(), "nobody@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSignalsDelete(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	if err := store.SaveSignals(ctx, &core.EmailSignals{UserEmail: "user@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSignals(ctx, "user@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetSignals(ctx, "user@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestMemoryStoreTokens(t *testing.T) {
	store := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	if err := store.SaveToken(ctx, "gmail", "a@example.com", []byte(`{"access_token":"one"}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveToken(ctx, "gmail", "b@example.com", []byte(`{"access_token":"two"}`)); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadToken(ctx, "gmail", "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"access_token":"one"}` {
		t.Errorf("token = %s", got)
	}

	// Empty email resolves to the most recently saved token for the service.
	got, err = store.LoadToken(ctx, "gmail", "")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"access_token":"two"}` {
		t.Errorf("latest token = %s", got)
	}

	if _, err := store.LoadToken(ctx, "outlook", ""); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown service", err)
	}

	if err := store.DeleteToken(ctx, "gmail", "a@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadToken(ctx, "gmail", "a@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

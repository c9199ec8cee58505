package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	ledger_errors "molecule-ledger/pkg/errors"
)

var testSecret = []byte("unit-test-signing-secret")

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}

	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "a@x.com")
	}
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer(nil); err == nil {
		t.Fatalf("expected error for missing secret, got nil")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	signing, err := NewIssuer(testSecret, WithClock(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	tok, err := signing.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Still valid one second before expiry.
	justBefore, err := NewIssuer(testSecret, WithClock(func() time.Time { return issuedAt.Add(DefaultTTL - time.Second) }))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	if _, err := justBefore.Verify(tok); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// Invalid once the expiry instant has passed.
	after, err := NewIssuer(testSecret, WithClock(func() time.Time { return issuedAt.Add(DefaultTTL + time.Second) }))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	if _, err := after.Verify(tok); !errors.Is(err, ledger_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestIssueWithTTL_CustomWindow(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	signing, err := NewIssuer(testSecret, WithClock(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	tok, err := signing.IssueWithTTL("a@x.com", 2*time.Hour)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}

	later, err := NewIssuer(testSecret, WithClock(func() time.Time { return issuedAt.Add(90 * time.Minute) }))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	if _, err := later.Verify(tok); err != nil {
		t.Fatalf("token with extended TTL rejected inside its window: %v", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip the last character of the signature segment.
	flipped := "A"
	if tok[len(tok)-1] == 'A' {
		flipped = "B"
	}
	tampered := tok[:len(tok)-1] + flipped
	if tampered == tok {
		t.Fatalf("failed to tamper with token")
	}

	if _, err := issuer.Verify(tampered); !errors.Is(err, ledger_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	signing, err := NewIssuer([]byte("right-secret"))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	tok, err := signing.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	verifying, err := NewIssuer([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	if _, err := verifying.Verify(tok); !errors.Is(err, ledger_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}

	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	truncated := tok[:strings.LastIndex(tok, ".")]

	for _, malformed := range []string{"", "not.a.jwt", "garbage", truncated} {
		if _, err := issuer.Verify(malformed); !errors.Is(err, ledger_errors.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", malformed, err)
		}
	}
}

package shared_test

import (
	"context"
	"errors"
	"testing"

	"github.com/savoria-erp/savoria/internal/shared"
)

func TestEnsureTokenIsStableWithinASession(t *testing.T) {
	mgr := shared.NewCSRFManager("csrf-secret")
	sess := &shared.Session{}

	first, err := mgr.EnsureToken(context.Background(), sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	if first == "" {
		t.Fatalf("expected a token")
	}
	second, err := mgr.EnsureToken(context.Background(), sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same token within a session, got %q then %q", first, second)
	}
}

func TestVerifyToken(t *testing.T) {
	mgr := shared.NewCSRFManager("csrf-secret")
	sess := &shared.Session{}
	token, err := mgr.EnsureToken(context.Background(), sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}

	if err := mgr.VerifyToken(context.Background(), sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := mgr.VerifyToken(context.Background(), sess, "forged"); !errors.Is(err, shared.ErrCSRFTokenMismatch) {
		t.Fatalf("expected ErrCSRFTokenMismatch, got %v", err)
	}
	if err := mgr.VerifyToken(context.Background(), sess, ""); !errors.Is(err, shared.ErrCSRFTokenMissing) {
		t.Fatalf("expected ErrCSRFTokenMissing for an empty token, got %v", err)
	}
	if err := mgr.VerifyToken(context.Background(), nil, token); !errors.Is(err, shared.ErrCSRFTokenMissing) {
		t.Fatalf("expected ErrCSRFTokenMissing for a nil session, got %v", err)
	}
}

func TestVerifyTokenBeforeIssue(t *testing.T) {
	mgr := shared.NewCSRFManager("csrf-secret")
	if err := mgr.VerifyToken(context.Background(), &shared.Session{}, "anything"); !errors.Is(err, shared.ErrCSRFTokenMissing) {
		t.Fatalf("expected ErrCSRFTokenMissing before a token is issued, got %v", err)
	}
}

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-health-keeper/models"
)

func TestContextKeyString(t *testing.T) {
	if SubjectIDCtxKey.String() != "subjectID" {
		t.Errorf("expected 'subjectID', got %q", SubjectIDCtxKey.String())
	}
}

func TestGetSubjectIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), SubjectIDCtxKey, "subject-1")

	got, ok := GetSubjectIDFromContext(ctx)
	if !ok || got != "subject-1" {
		t.Errorf("expected subject-1, true; got %q, %v", got, ok)
	}
}

func TestGetSubjectIDFromContext_Missing(t *testing.T) {
	if _, ok := GetSubjectIDFromContext(context.Background()); ok {
		t.Error("expected ok=false for empty context")
	}
}

func TestGetSubjectIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), SubjectIDCtxKey, int64(42))
	if _, ok := GetSubjectIDFromContext(ctx); ok {
		t.Error("expected ok=false for non-string value")
	}
}

func TestGetSubjectIDFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), SubjectIDCtxKey, "")
	if _, ok := GetSubjectIDFromContext(ctx); ok {
		t.Error("expected ok=false for empty subject")
	}
}

func TestGetSubjectIDFromContext_DifferentKey(t *testing.T) {
	// a plain string key must not collide with the private key type
	ctx := context.WithValue(context.Background(), "subjectID", "subject-1") //nolint:staticcheck
	if _, ok := GetSubjectIDFromContext(ctx); ok {
		t.Error("expected ok=false for foreign key type")
	}
}

func TestWithSession(t *testing.T) {
	token := models.Token{SubjectID: "subject-1", SessionID: "session-1"}
	ctx := WithSession(context.Background(), token)

	subject, ok := GetSubjectIDFromContext(ctx)
	if !ok || subject != "subject-1" {
		t.Errorf("unexpected subject %q %v", subject, ok)
	}

	got, ok := GetTokenFromContext(ctx)
	if !ok || got.SessionID != "session-1" {
		t.Errorf("unexpected token %+v %v", got, ok)
	}
}

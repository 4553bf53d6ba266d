package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("Coupon is already locked", nil)

	mapped := ToDomainError(original)
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
	if mapped.Message != "Coupon is already locked" {
		t.Fatalf("message mismatch: %q", mapped.Message)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	if mapped.Code != "STORAGE_FAILURE" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if mapped := ToDomainError(nil); mapped != nil {
		t.Fatalf("nil error must map to nil, got %+v", mapped)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := NewStorageError(cause)

	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}

	var domainErr *DomainError
	if !errors.As(wrapped, &domainErr) {
		t.Fatalf("expected DomainError")
	}
	if domainErr.Error() != "storage failure: disk full" {
		t.Fatalf("unexpected error string: %q", domainErr.Error())
	}
}

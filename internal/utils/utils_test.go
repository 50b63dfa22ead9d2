package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPGUniqueViolation(t *testing.T) {
	uv := &pgconn.PgError{Code: "23505"}
	if !IsPGUniqueViolation(uv) {
		t.Fatal("unique violation not detected")
	}
	if !IsPGUniqueViolation(fmt.Errorf("insert user: %w", uv)) {
		t.Fatal("wrapped unique violation not detected")
	}
	if IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation misreported as unique violation")
	}
	if IsPGUniqueViolation(errors.New("plain")) {
		t.Fatal("plain error misreported as unique violation")
	}
}

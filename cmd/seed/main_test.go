package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/config"
)

type failingSeeder struct {
	ports.PreRegistrationService
	err error
}

func (s failingSeeder) Seed(context.Context, []*domain.PreRegistration) (*ports.SeedReport, error) {
	return nil, s.err
}

func writeSeedFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestImportRecords_PropagatesSeedFailure(t *testing.T) {
	boom := errors.New("connection reset")
	err := importRecords(context.Background(), failingSeeder{err: boom}, "seed.yaml", nil, zerolog.Nop())
	if !errors.Is(err, boom) {
		t.Fatalf("expected seed failure to be returned, got %v", err)
	}
}

func TestRun_MemoryStorage(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory}
	path := writeSeedFile(t, `
preRegistrations:
  - fullName: Kavya Reddy
    email: kavya@campus.edu
    role: student
    studentId: S2101
    department: CSE
    yearOfStudy: E-3
`)
	if err := run(context.Background(), cfg, path, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_FailsOnBadFile(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory}

	if err := run(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop()); err == nil {
		t.Error("expected an error for a missing file")
	}
	path := writeSeedFile(t, "preRegistrations:\n  - fullName: X\n    unknownField: 1\n")
	if err := run(context.Background(), cfg, path, zerolog.Nop()); err == nil {
		t.Error("expected an error for unknown fields")
	}
}

// Package seed reads pre-registration records from YAML files.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// File is the document layout of a seed file.
type File struct {
	PreRegistrations []Record `yaml:"preRegistrations"`
}

// Record is one pre-registration entry. Role-specific fields are checked
// later, when the record is imported.
type Record struct {
	FullName          string      `yaml:"fullName" validate:"required"`
	Email             string      `yaml:"email"    validate:"required,email"`
	Role              domain.Role `yaml:"role"     validate:"required,oneof=student faculty alumni admin"`
	PhoneNumber       string      `yaml:"phoneNumber"`
	domain.RoleFields `yaml:",inline"`
}

var recordValidator = validator.New()

func (r Record) toDomain() *domain.PreRegistration {
	return &domain.PreRegistration{
		FullName:    r.FullName,
		Email:       r.Email,
		Role:        r.Role,
		RoleFields:  r.RoleFields,
		PhoneNumber: r.PhoneNumber,
	}
}

// LoadFile reads the seed file at path.
func LoadFile(path string) ([]*domain.PreRegistration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Load(bytes.NewReader(raw))
}

// Load decodes a seed document. Unknown keys are rejected so typos in field
// names do not silently produce records that can never match a signup.
func Load(r io.Reader) ([]*domain.PreRegistration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	out := make([]*domain.PreRegistration, 0, len(f.PreRegistrations))
	for i, rec := range f.PreRegistrations {
		rec.FullName = strings.TrimSpace(rec.FullName)
		rec.Email = strings.TrimSpace(rec.Email)
		if err := recordValidator.Struct(rec); err != nil {
			return nil, fmt.Errorf("seed record %d (%q): %w", i+1, rec.Email, err)
		}
		out = append(out, rec.toDomain())
	}
	return out, nil
}

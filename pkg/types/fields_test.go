package types

import (
	"errors"
	"testing"
)

func TestFieldsOf(t *testing.T) {
	for _, table := range StandardTableNames {
		t.Run(table, func(t *testing.T) {
			fields, err := FieldsOf(table)
			if err != nil {
				t.Fatalf("FieldsOf(%q) failed: %v", table, err)
			}
			if len(fields) == 0 {
				t.Fatalf("FieldsOf(%q) returned no fields", table)
			}
		})
	}

	t.Run("unknown table", func(t *testing.T) {
		_, err := FieldsOf("nonsense")
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("expected ErrTableNotFound, got %v", err)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		fields, err := FieldsOf(ProfilesTable)
		if err != nil {
			t.Fatalf("FieldsOf failed: %v", err)
		}
		fields[0].Name = "mutated"

		again, err := FieldsOf(ProfilesTable)
		if err != nil {
			t.Fatalf("FieldsOf failed: %v", err)
		}
		if again[0].Name == "mutated" {
			t.Fatal("FieldsOf exposed the catalog for mutation")
		}
	})

	t.Run("required fields", func(t *testing.T) {
		fields, err := FieldsOf(AssessmentsTable)
		if err != nil {
			t.Fatalf("FieldsOf failed: %v", err)
		}
		required := map[string]bool{}
		for _, f := range fields {
			if f.Required {
				required[f.Name] = true
			}
		}
		for _, want := range []string{"startup_id", "risk_category", "risk_score"} {
			if !required[want] {
				t.Errorf("expected %q to be required", want)
			}
		}
		if required["assessment_id"] {
			t.Error("assessment_id should not be required (generated when absent)")
		}
	})
}

package registration

import (
	"errors"
	"testing"
)

func TestParseAccountTypeCaseInsensitive(t *testing.T) {
	for _, input := range []string{"Saving", "saving", "SAVING", "sAvInG"} {
		got, err := ParseAccountType(input)
		if err != nil {
			t.Fatalf("ParseAccountType(%q) error: %v", input, err)
		}
		if got != AccountTypeSaving {
			t.Fatalf("ParseAccountType(%q) = %q, want canonical Saving", input, got)
		}
	}
}

func TestParseAccountTypeUnknown(t *testing.T) {
	if _, err := ParseAccountType("Crypto"); !errors.Is(err, ErrUnknownAccountType) {
		t.Fatalf("expected ErrUnknownAccountType, got %v", err)
	}
}

func TestParseNomineeRelation(t *testing.T) {
	got, err := ParseNomineeRelation("spouse")
	if err != nil {
		t.Fatalf("ParseNomineeRelation error: %v", err)
	}
	if got != RelationSpouse {
		t.Fatalf("ParseNomineeRelation = %q, want canonical Spouse", got)
	}

	if _, err := ParseNomineeRelation("Cousin"); !errors.Is(err, ErrUnknownNomineeRelation) {
		t.Fatalf("expected ErrUnknownNomineeRelation, got %v", err)
	}
}

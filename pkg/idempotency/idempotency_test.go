package idempotency

import "testing"

func TestKeyDeterministic(t *testing.T) {
	a := Key("BPI", "2024-03-05", 1250.00, "FT-99A123", "4321")
	b := Key("BPI", "2024-03-05", 1250.00, "FT-99A123", "4321")
	if a != b {
		t.Errorf("identical inputs produced different keys: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestKeyFieldSensitivity(t *testing.T) {
	base := Key("BPI", "2024-03-05", 1250.00, "FT-99A123", "4321")

	variants := map[string]string{
		"bank":      Key("BDO", "2024-03-05", 1250.00, "FT-99A123", "4321"),
		"date":      Key("BPI", "2024-03-06", 1250.00, "FT-99A123", "4321"),
		"amount":    Key("BPI", "2024-03-05", 1250.01, "FT-99A123", "4321"),
		"reference": Key("BPI", "2024-03-05", 1250.00, "FT-99A124", "4321"),
		"last4":     Key("BPI", "2024-03-05", 1250.00, "FT-99A123", "4322"),
	}
	for field, got := range variants {
		if got == base {
			t.Errorf("changing %s did not change the key", field)
		}
	}
}

func TestKeyEmptyFields(t *testing.T) {
	a := Key("", "", 0, "", "")
	b := Key("", "", 0, "", "")
	if a != b {
		t.Error("empty-field keys must still be deterministic")
	}
	if a == Key("BPI", "", 0, "", "") {
		t.Error("empty and non-empty bank must differ")
	}
}

package extract

import "testing"

func TestDetectBank(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BPI Savings Account", "BPI"},
		{"bank of the philippine islands", "BPI"},
		{"UnionBank transfer slip", "UnionBank"},
		{"Union Bank transfer slip", "UnionBank"},
		{"union bank", "UnionBank"},
		{"Banco De Oro", "BDO"},
		{"BDO Unibank", "BDO"},
		{"Metrobank Online", "Metrobank"},
		{"Metropolitan Bank", "Metrobank"},
		{"Security Bank app", "Security Bank"},
		{"LandBank of the Philippines", "LandBank"},
		{"Land Bank", "LandBank"},
		{"PNB Mobile", "PNB"},
		{"Philippine National Bank", "PNB"},
		{"Chinabank receipt", "China Bank"},
		{"China Bank receipt", "China Bank"},
		{"GCash wallet", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := DetectBank(tt.input)
			if got != tt.expected {
				t.Errorf("DetectBank(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectBankPriorityOrder(t *testing.T) {
	// Pattern list order encodes priority: BDO comes before BPI.
	got := DetectBank("transfer from BPI received by BDO")
	if got != "BDO" {
		t.Errorf("got %q, want BDO (first pattern in list wins)", got)
	}
}

func TestDetectLast4(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Account No. 1234", "1234"},
		{"Acct No 5678", "5678"},
		{"ending in 4321", "4321"},
		{"xxxx5678", "5678"},
		{"****9012", "9012"},
		{"Card **** 4444", "4444"},
		{"Acct # 1111", "1111"},
		{"no account digits here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := DetectLast4(tt.input)
			if got != tt.expected {
				t.Errorf("DetectLast4(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		found    bool
	}{
		{"keyword total", "Total 5000", 5000, true},
		{"keyword beats generic max", "Total 5000 and Fee 50", 5000, true},
		{"keyword max among candidates", "Amount 100 Total 200", 200, true},
		{"comma thousands", "Total 12,345.00", 12345.00, true},
		{"separator insensitive", "12,345.00", 12345.00, true},
		{"no separator", "12345.00", 12345.00, true},
		{"currency prefixed", "Total PHP 1,250.00", 1250.00, true},
		{"decimal keyword", "Amount: 980.50", 980.50, true},
		{"generic fallback", "Fee 50", 50, true},
		{"nothing numeric", "walang halaga dito", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractAmount(tt.input)
			if found != tt.found {
				t.Fatalf("ExtractAmount(%q): found=%v, want %v", tt.input, found, tt.found)
			}
			if found && got != tt.expected {
				t.Errorf("ExtractAmount(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractAmountSeparatorIdempotence(t *testing.T) {
	a, okA := ExtractAmount("12,345.00")
	b, okB := ExtractAmount("12345.00")
	if !okA || !okB {
		t.Fatal("expected both inputs to yield an amount")
	}
	if a != b || a != 12345.00 {
		t.Errorf("got %v and %v, want both 12345.00", a, b)
	}
}

func TestExtractReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ref no cue", "Ref No: FT-99A123", "FT-99A123"},
		{"reference number cue", "Reference Number ABC12345", "ABC12345"},
		{"txn id cue", "Txn ID: 9X8Y7Z001", "9X8Y7Z001"},
		{"generic token fallback", "Sent via FT-AB1234 today", "FT-AB1234"},
		{"cue token too short falls through", "Ref No: AB12", ""},
		{"no reference", "nothing to see", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReference(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractReference(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso", "paid on 2024-03-05 noon", "2024-03-05"},
		{"iso slashes", "2024/03/05", "2024-03-05"},
		{"day first", "05/03/2024", "2024-03-05"},
		{"month first when day-first fails", "03/25/2024", "2024-03-25"},
		{"long month name", "March 5, 2024", "2024-03-05"},
		{"short month name", "Mar 5, 2024", "2024-03-05"},
		{"first match wins", "2024-03-05 revised 2024-04-01", "2024-03-05"},
		{"matched but unparseable returned verbatim", "99/99/2024", "99/99/2024"},
		{"no date", "walang petsa", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDate(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractDate(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAllEndToEnd(t *testing.T) {
	text := "BPI Savings ... Account ending in 4321 ... Total PHP 1,250.00 ... Ref No: FT-99A123 ... 2024-03-05"

	fields := All(text)

	if fields.BankName != "BPI" {
		t.Errorf("BankName: got %q, want BPI", fields.BankName)
	}
	if fields.AccountLast4 != "4321" {
		t.Errorf("AccountLast4: got %q, want 4321", fields.AccountLast4)
	}
	if !fields.HasAmount || fields.Amount != 1250.00 {
		t.Errorf("Amount: got %v (found=%v), want 1250.00", fields.Amount, fields.HasAmount)
	}
	if fields.Reference != "FT-99A123" {
		t.Errorf("Reference: got %q, want FT-99A123", fields.Reference)
	}
	if fields.Date != "2024-03-05" {
		t.Errorf("Date: got %q, want 2024-03-05", fields.Date)
	}
}

func TestAllEmptyText(t *testing.T) {
	fields := All("")
	if fields.BankName != "" || fields.AccountLast4 != "" || fields.HasAmount ||
		fields.Reference != "" || fields.Date != "" {
		t.Errorf("expected all-empty fields for empty text, got %+v", fields)
	}
}

// Package idempotency derives the dedup fingerprint that guards against
// posting the same screenshot to the ledger twice.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Key hashes the five identifying fields of a transaction into a stable
// hex digest. Absent string fields collapse to "", an absent amount to 0,
// so the same logical transaction always produces the same key.
func Key(bank, date string, amount float64, reference, accountLast4 string) string {
	payload := strings.Join([]string{
		bank,
		date,
		strconv.FormatFloat(amount, 'f', -1, 64),
		reference,
		accountLast4,
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

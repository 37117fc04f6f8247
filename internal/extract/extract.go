// Package extract turns raw OCR text into structured field guesses. Every
// function is pure and deterministic: absence of a match degrades to a
// zero value, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bank patterns are evaluated in order and the first match wins, so list
// order encodes priority. Aliases tolerate variable internal whitespace
// ("Land Bank" vs "LandBank").
var bankPatterns = []struct {
	rx    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\b(BDO|Banco\s*De\s*Oro)\b`), "BDO"},
	{regexp.MustCompile(`(?i)\b(BPI|Bank\s*of\s*the\s*Philippine\s*Islands)\b`), "BPI"},
	{regexp.MustCompile(`(?i)\b(Union\s*Bank|UnionBank)\b`), "UnionBank"},
	{regexp.MustCompile(`(?i)\b(Metrobank|Metropolitan\s*Bank)\b`), "Metrobank"},
	{regexp.MustCompile(`(?i)\b(Security\s*Bank)\b`), "Security Bank"},
	{regexp.MustCompile(`(?i)\b(Land\s*Bank|LandBank)\b`), "LandBank"},
	{regexp.MustCompile(`(?i)\b(PNB|Philippine\s*National\s*Bank)\b`), "PNB"},
	{regexp.MustCompile(`(?i)\b(China\s*Bank|Chinabank)\b`), "China Bank"},
}

var (
	// Money-shaped number, optionally currency-prefixed, with optional
	// space-grouped thousands and two decimal places. Commas are stripped
	// from the text before this runs so "12,345.00" and "12345.00" parse
	// to the same value.
	amountRx = regexp.MustCompile(`(?:PHP|₱|Php|php)?\s*([0-9]+(?: [0-9]{3})*(?:\.[0-9]{2})?)`)
	// Account-number cue followed by exactly four digits.
	last4Rx = regexp.MustCompile(`(?i)(?:Acc(?:oun)?t(?:\s*No\.?)?|ending\s+in|xxxx|\*{2,}|Acc(?:oun)?t\s*#?)\D*([0-9]{4})`)
	// YYYY-MM-DD, YYYY/MM/DD, DD/MM/YYYY, MM/DD/YYYY or "March 5, 2024".
	dateRx = regexp.MustCompile(`\b(\d{4}[-/]\d{2}[-/]\d{2}|\d{2}[-/]\d{2}[-/]\d{4}|[A-Z][a-z]{2,9}\s+\d{1,2},\s*\d{4})\b`)

	refNormalizeRx = regexp.MustCompile(`[^\w\s:/#-]`)
	refGenericRx   = regexp.MustCompile(`\b([A-Z]{2,5}-[A-Z0-9]{5,})\b`)
)

var amountKeys = []string{"amount", "amt", "amnt", "total", "php", "transfer amount", "payment", "paid"}

var referenceKeys = []string{"reference", "ref no", "ref#", "ref no.", "transaction reference", "txn id", "transaction no", "pid"}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006", "Jan 2, 2006", "January 2, 2006"}

// amountKeyRx and referenceKeyRx are compiled once per cue keyword; the
// slices keep the cue priority order.
var amountKeyRx = func() []*regexp.Regexp {
	rxs := make([]*regexp.Regexp, len(amountKeys))
	for i, key := range amountKeys {
		rxs[i] = regexp.MustCompile(regexp.QuoteMeta(key) + `\s*[:=]?\s*(?:php|₱)?\s*([0-9]+(?:\.[0-9]{2})?)`)
	}
	return rxs
}()

var referenceKeyRx = func() []*regexp.Regexp {
	rxs := make([]*regexp.Regexp, len(referenceKeys))
	for i, key := range referenceKeys {
		rxs[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `\s*(?:number|no\.?|#|:)?\s*([A-Z0-9\-_/]{5,})`)
	}
	return rxs
}()

// DetectBank returns the canonical label of the first bank pattern that
// matches, or "" when no pattern matches.
func DetectBank(text string) string {
	for _, p := range bankPatterns {
		if p.rx.MatchString(text) {
			return p.label
		}
	}
	return ""
}

// DetectLast4 returns the four digits following the first account-number
// cue ("Account No", "ending in", masked digits), or "".
func DetectLast4(text string) string {
	if m := last4Rx.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractAmount guesses the transaction amount. Numbers next to amount
// keywords take priority; among candidates the maximum value wins, biasing
// toward the total over smaller line items. Thousands separators are
// stripped before parsing. Returns (0, false) when nothing money-shaped
// is found.
func ExtractAmount(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, ",", "")
	lower := strings.ToLower(cleaned)

	var best float64
	found := false

	for _, rx := range amountKeyRx {
		for _, m := range rx.FindAllStringSubmatch(lower, -1) {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if !found || val > best {
				best = val
				found = true
			}
		}
	}
	if found {
		return best, true
	}

	for _, m := range amountRx.FindAllStringSubmatch(cleaned, -1) {
		num := strings.NewReplacer(",", "", " ", "").Replace(m[1])
		val, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		if !found || val > best {
			best = val
			found = true
		}
	}
	return best, found
}

// ExtractReference looks for a reference-cue keyword followed by an
// alphanumeric token of at least five characters, uppercased. Without a
// cue it falls back to a generic token like "FT-99A123". Returns "" when
// neither matches.
func ExtractReference(text string) string {
	normalized := refNormalizeRx.ReplaceAllString(text, " ")
	lower := strings.ToLower(normalized)

	for _, rx := range referenceKeyRx {
		if m := rx.FindStringSubmatch(lower); m != nil {
			return strings.ToUpper(m[1])
		}
	}

	if m := refGenericRx.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDate finds the first date-shaped substring and normalizes it to
// YYYY-MM-DD via the first layout that parses. A matched substring that no
// layout parses is returned verbatim: callers see the raw value and can
// ask the user, rather than losing the hint entirely. Returns "" when no
// date shape appears at all.
func ExtractDate(text string) string {
	m := dateRx.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	s := m[1]
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// Fields bundles the five guesses for one OCR text.
type Fields struct {
	BankName     string
	AccountLast4 string
	Amount       float64
	HasAmount    bool
	Reference    string
	Date         string
}

// All runs every extractor over the same text.
func All(text string) Fields {
	amount, hasAmount := ExtractAmount(text)
	return Fields{
		BankName:     DetectBank(text),
		AccountLast4: DetectLast4(text),
		Amount:       amount,
		HasAmount:    hasAmount,
		Reference:    ExtractReference(text),
		Date:         ExtractDate(text),
	}
}

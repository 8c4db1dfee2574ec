package checklist

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DomainOccurrence is the domain prefix for content-addressed occurrence
// identity. Version suffix enables future algorithm migration.
const DomainOccurrence = "checklist/occurrence/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// OccurrenceID computes the content-addressed identity of an occurrence row.
// It is a pure function of (task id, variant key, date), so regeneration for
// the same date always derives the same ID — the basis for idempotent
// upserts keyed on this triple.
func OccurrenceID(taskID, variantKey string, date time.Time) string {
	data := taskID + "\x00" + variantKey + "\x00" + date.Format(DateLayout)
	return hashWithDomain(DomainOccurrence, []byte(data))
}

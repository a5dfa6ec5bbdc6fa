package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/mr-tron/base58"
)

// timestampLayout is the sink-friendly UTC timestamp format, second precision.
const timestampLayout = "2006-01-02 15:04:05"

// AccountUpdate is the canonical row format for a wallet account update.
// One AccountUpdate renders to exactly one JSONEachRow line.
type AccountUpdate struct {
	// Timestamp is the observation time in UTC, second precision.
	Timestamp string `json:"timestamp"`

	// Slot is the slot in which the update was observed.
	Slot uint64 `json:"slot"`

	// WriteVersion orders updates within a slot; 0 when the wire shape
	// that produced this row predates write versions.
	WriteVersion uint64 `json:"write_version"`

	// Address is the base58-encoded 32-byte account key.
	Address string `json:"address"`

	// Balance is the account balance. Kept as a big integer because the
	// sink column is 128 bits wide.
	Balance *big.Int `json:"balance"`
}

// Row renders the update as a single JSON object suitable for inclusion in a
// newline-delimited bulk insert.
func (u AccountUpdate) Row() (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode account update: %w", err)
	}
	return string(b), nil
}

// AccountUpdateVersions is the tagged union of the historical wire shapes of
// an account-update notification. Exactly one field is non-nil. New shapes
// are added as new variants plus one case in Normalize.
type AccountUpdateVersions struct {
	V1 *AccountUpdateV1
	V2 *AccountUpdateV2
	V3 *AccountUpdateV3
}

// AccountUpdateV1 is the original notification shape: no write version.
type AccountUpdateV1 struct {
	Slot     uint64
	Pubkey   []byte
	Lamports uint64
}

// AccountUpdateV2 added the write version.
type AccountUpdateV2 struct {
	Slot         uint64
	Pubkey       []byte
	Lamports     uint64
	WriteVersion uint64
}

// AccountUpdateV3 added the originating transaction signature. The signature
// is not part of the canonical row and is dropped during normalization.
type AccountUpdateV3 struct {
	Slot         uint64
	Pubkey       []byte
	Lamports     uint64
	WriteVersion uint64
	TxnSignature []byte
}

// Normalize converts any known wire shape into the canonical row format.
// The observation time is truncated to whole seconds in UTC.
func Normalize(v AccountUpdateVersions, observed time.Time) (AccountUpdate, error) {
	u := AccountUpdate{
		Timestamp: observed.UTC().Format(timestampLayout),
	}

	switch {
	case v.V1 != nil:
		u.Slot = v.V1.Slot
		u.Address = base58.Encode(v.V1.Pubkey)
		u.Balance = new(big.Int).SetUint64(v.V1.Lamports)
	case v.V2 != nil:
		u.Slot = v.V2.Slot
		u.WriteVersion = v.V2.WriteVersion
		u.Address = base58.Encode(v.V2.Pubkey)
		u.Balance = new(big.Int).SetUint64(v.V2.Lamports)
	case v.V3 != nil:
		u.Slot = v.V3.Slot
		u.WriteVersion = v.V3.WriteVersion
		u.Address = base58.Encode(v.V3.Pubkey)
		u.Balance = new(big.Int).SetUint64(v.V3.Lamports)
	default:
		return AccountUpdate{}, fmt.Errorf("normalize: no variant set")
	}

	return u, nil
}

// ExtractAddress probes a raw payload for its address field. It decodes only
// what the identity filter needs and ignores every other field. Returns an
// empty string when the payload is not a JSON object or carries no address.
func ExtractAddress(payload []byte) string {
	var probe struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return ""
	}
	return probe.Address
}

// ValidateAddress checks that s is a base58-encoded 32-byte account key.
func ValidateAddress(s string) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("address %q: %w", s, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("address %q: decoded length %d, want 32", s, len(raw))
	}
	return nil
}

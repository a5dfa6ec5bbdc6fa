package walletsink

import (
	"time"

	"github.com/solstream/walletsink/internal/domain"
)

// The record API is producer-facing: the forwarder itself treats payloads as
// opaque rows, but producers publishing to the subject can build those
// payloads here. Wrap the notification in an AccountUpdateVersions, call
// [Normalize], and publish the output of [AccountUpdate.Row].

// AccountUpdate is the canonical row format for a wallet account update.
// One AccountUpdate renders to exactly one JSONEachRow line via its Row
// method.
type AccountUpdate = domain.AccountUpdate

// AccountUpdateVersions is the tagged union of the historical wire shapes of
// an account-update notification. Exactly one field is non-nil.
type AccountUpdateVersions = domain.AccountUpdateVersions

// AccountUpdateV1 is the original notification shape: no write version.
type AccountUpdateV1 = domain.AccountUpdateV1

// AccountUpdateV2 added the write version.
type AccountUpdateV2 = domain.AccountUpdateV2

// AccountUpdateV3 added the originating transaction signature.
type AccountUpdateV3 = domain.AccountUpdateV3

// Normalize converts any known wire shape into the canonical row format.
// The observation time is truncated to whole seconds in UTC.
func Normalize(v AccountUpdateVersions, observed time.Time) (AccountUpdate, error) {
	return domain.Normalize(v, observed)
}

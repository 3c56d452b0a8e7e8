package sanitizers

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/andersinno/database-sanitizer/dump"
	"github.com/andersinno/database-sanitizer/session"
)

const nilUUID = "00000000-0000-0000-0000-000000000000"

var nilUUIDWithoutDashes = strings.ReplaceAll(nilUUID, "-", "")

// UUID4 returns a sanitizer that replaces a UUID-shaped value with a
// deterministic-but-unrecoverable v4 UUID derived from secret, leaving the
// nil UUID unchanged (it carries no identity worth hiding).
func UUID4(secret *session.Secret) dump.Sanitizer {
	return func(v dump.Value) dump.Value {
		if v.IsNull() || v.Text == "" {
			return v
		}
		if strings.ReplaceAll(v.Text, "-", "") == nilUUIDWithoutDashes {
			return dump.NewText(nilUUID)
		}
		return dump.NewText(deriveUUID4(secret, v.Text))
	}
}

// deriveUUID4 builds a version-4, variant-RFC4122 UUID from the first 16
// bytes (32 hex digits) of secret's keyed hash of value, the same
// construction as Python's uuid.UUID(hash_text(value)[:32], version=4).
func deriveUUID4(secret *session.Secret, value string) string {
	digest := secret.HashText(value)
	raw, err := hex.DecodeString(digest[:32])
	if err != nil {
		panic("sanitizers: hash digest was not valid hex: " + err.Error())
	}

	var id uuid.UUID
	copy(id[:], raw)
	id[6] = (id[6] & 0x0f) | 0x40 // version 4
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return id.String()
}

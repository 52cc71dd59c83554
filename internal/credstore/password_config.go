package credstore

import (
	"encoding/json"
	"fmt"
)

// Credential config password keys. A stored record carries exactly one
// of the two: hashed_password while the account is active,
// locked_password while it is disabled.
const (
	keyHashed = "hashed_password"
	keyLocked = "locked_password"
)

// PasswordConfig is the password portion of a credential config blob.
// Hash is the PHC-encoded Argon2id hash and Locked selects which key it
// is stored under. Any sibling fields the service keeps in the blob are
// carried through rewrites untouched. A blob with neither password key
// (a freshly provisioned record) parses as an empty active config.
type PasswordConfig struct {
	Hash   string
	Locked bool

	extra map[string]json.RawMessage
}

// UnmarshalJSON parses a credential config blob, rejecting records that
// carry both password keys at once.
func (c *PasswordConfig) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	hashed, hasHashed := fields[keyHashed]
	locked, hasLocked := fields[keyLocked]
	if hasHashed && hasLocked {
		return fmt.Errorf("credential config has both %s and %s", keyHashed, keyLocked)
	}

	c.Hash = ""
	c.Locked = false
	switch {
	case hasHashed:
		if err := json.Unmarshal(hashed, &c.Hash); err != nil {
			return fmt.Errorf("parse %s: %w", keyHashed, err)
		}
	case hasLocked:
		if err := json.Unmarshal(locked, &c.Hash); err != nil {
			return fmt.Errorf("parse %s: %w", keyLocked, err)
		}
		c.Locked = true
	}

	delete(fields, keyHashed)
	delete(fields, keyLocked)
	c.extra = fields
	return nil
}

// MarshalJSON serializes the config with the hash under the key matching
// its locked state, alongside any preserved sibling fields.
func (c PasswordConfig) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(c.extra)+1)
	for k, v := range c.extra {
		fields[k] = v
	}

	hash, err := json.Marshal(c.Hash)
	if err != nil {
		return nil, err
	}
	key := keyHashed
	if c.Locked {
		key = keyLocked
	}
	fields[key] = hash

	return json.Marshal(fields)
}

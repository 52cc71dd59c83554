package domain

// Status is the lifecycle state carried in an identity's traits.
type Status string

const (
	// StatusActive marks an identity that may log in.
	StatusActive Status = "active"
	// StatusLocked marks an identity that is administratively disabled.
	StatusLocked Status = "locked"
)

// Traits is the schema-managed portion of an identity.
type Traits struct {
	Email  string `json:"email"`
	Status Status `json:"status,omitempty"`
}

// VerifiableAddress is an address the identity service tracks for
// verification. The service manages these; they are never written back.
type VerifiableAddress struct {
	Value string `json:"value"`
}

// Identity is the identity service's wire representation of a user.
type Identity struct {
	ID                  string              `json:"id"`
	Traits              Traits              `json:"traits"`
	VerifiableAddresses []VerifiableAddress `json:"verifiable_addresses,omitempty"`
}

// Email returns the identity's primary email: the first verifiable
// address when present, otherwise the email trait.
func (i *Identity) Email() string {
	if len(i.VerifiableAddresses) > 0 && i.VerifiableAddresses[0].Value != "" {
		return i.VerifiableAddresses[0].Value
	}
	return i.Traits.Email
}

// Active reports whether the identity's status trait permits login.
// An empty status is treated as active for identities created before
// the status trait existed.
func (i *Identity) Active() bool {
	return i.Traits.Status == StatusActive || i.Traits.Status == ""
}

package keystore

import (
	"regexp"
	"time"

	"github.com/mr-tron/base58"

	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

// agentNameRegex validates agent names: alphanumeric plus underscore and
// hyphen, 1-64 characters.
var agentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Agent is the public metadata of one local signing agent. It is stored in
// cleartext so listings never need a passphrase; only the mnemonic is
// encrypted.
type Agent struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	PublicKey string    `json:"public_key"` // base58-encoded compressed SEC1
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateAgentName checks whether name is acceptable for an agent file.
func ValidateAgentName(name string) error {
	if !agentNameRegex.MatchString(name) {
		return kiterr.WithSuggestion(kiterr.ErrInvalidName,
			"agent name must be 1-64 alphanumeric characters, underscores, or hyphens")
	}
	return nil
}

// NewAgent derives the account at index 0 from mnemonic and builds the
// agent metadata. The mnemonic must already be validated.
func NewAgent(name, mnemonic string) (*Agent, error) {
	if err := ValidateAgentName(name); err != nil {
		return nil, err
	}

	seed, err := MnemonicToSeed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	key, err := DeriveKey(seed, 0)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return &Agent{
		Name:      name,
		Address:   key.Address(),
		PublicKey: base58.Encode(key.PublicKey()),
		Path:      DerivationPath(0),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// PublicKeyBytes decodes the stored base58 public key.
func (a *Agent) PublicKeyBytes() ([]byte, error) {
	raw, err := base58.Decode(a.PublicKey)
	if err != nil {
		return nil, kiterr.Wrap(err, "decoding public key for agent %s", a.Name)
	}
	return raw, nil
}

func zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

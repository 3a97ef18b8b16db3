package keystore

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shulepov/wallet-kit/internal/fileutil"
	"github.com/Shulepov/wallet-kit/internal/kitcrypto"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

const (
	// AgentFileExtension is the extension for agent files.
	AgentFileExtension = ".agent"

	agentFilePerm = 0o600
	agentDirPerm  = 0o700
)

// agentFile is the on-disk JSON structure: cleartext metadata for listing
// plus the age-encrypted mnemonic.
type agentFile struct {
	Agent             *Agent `json:"agent"`
	EncryptedMnemonic string `json:"encrypted_mnemonic"` // base64(age ciphertext)
}

// Store persists agents as one file per agent under a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save encrypts the mnemonic with passphrase and writes the agent file.
// Fails with ErrAgentExists when the name is already taken.
func (s *Store) Save(agent *Agent, mnemonic, passphrase string) error {
	if err := ValidateAgentName(agent.Name); err != nil {
		return err
	}

	if s.Exists(agent.Name) {
		return kiterr.WithDetails(kiterr.ErrAgentExists, map[string]string{
			"agent": agent.Name,
		})
	}

	if err := fileutil.EnsurePrivateDir(s.dir, agentDirPerm); err != nil {
		return kiterr.Wrap(err, "preparing keystore directory")
	}

	ciphertext, err := kitcrypto.Encrypt([]byte(NormalizeMnemonic(mnemonic)), passphrase)
	if err != nil {
		return kiterr.Wrap(err, "encrypting mnemonic")
	}

	data, err := json.MarshalIndent(agentFile{
		Agent:             agent,
		EncryptedMnemonic: base64.StdEncoding.EncodeToString(ciphertext),
	}, "", "  ")
	if err != nil {
		return kiterr.Wrap(err, "encoding agent file")
	}

	if err := fileutil.WriteAtomic(s.path(agent.Name), data, agentFilePerm); err != nil {
		return kiterr.Wrap(err, "writing agent file")
	}
	return nil
}

// Load reads an agent's cleartext metadata without decrypting anything.
func (s *Store) Load(name string) (*Agent, error) {
	af, err := s.readFile(name)
	if err != nil {
		return nil, err
	}
	return af.Agent, nil
}

// Unlock decrypts an agent's mnemonic into locked memory.
func (s *Store) Unlock(name, passphrase string) (*kitcrypto.SecureBytes, error) {
	af, err := s.readFile(name)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(af.EncryptedMnemonic)
	if err != nil {
		return nil, kiterr.WithDetails(kiterr.ErrKeystoreCorrupt, map[string]string{
			"agent": name,
		})
	}

	mnemonic, err := kitcrypto.DecryptSecure(ciphertext, passphrase)
	if err != nil {
		return nil, kiterr.WithDetails(kiterr.ErrDecryptionFailed, map[string]string{
			"agent": name,
		})
	}
	return mnemonic, nil
}

// Exists reports whether an agent file with the given name is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// List returns the metadata of every agent in the store, sorted by name.
// Unreadable or corrupt files are skipped; listing never needs a passphrase.
func (s *Store) List() ([]*Agent, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, kiterr.Wrap(err, "reading keystore directory")
	}

	var agents []*Agent
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), AgentFileExtension) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), AgentFileExtension)
		agent, err := s.Load(name)
		if err != nil {
			continue
		}
		agents = append(agents, agent)
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// Delete removes an agent file.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return kiterr.WithDetails(kiterr.ErrAgentNotFound, map[string]string{
			"agent": name,
		})
	}
	return os.Remove(s.path(name))
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+AgentFileExtension)
}

func (s *Store) readFile(name string) (*agentFile, error) {
	if err := ValidateAgentName(name); err != nil {
		return nil, err
	}

	// #nosec G304 -- path is built from a validated agent name
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, kiterr.WithDetails(kiterr.ErrAgentNotFound, map[string]string{
			"agent": name,
		})
	}
	if err != nil {
		return nil, kiterr.Wrap(err, "reading agent file")
	}

	var af agentFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, kiterr.WithDetails(kiterr.ErrKeystoreCorrupt, map[string]string{
			"agent": name,
		})
	}
	if af.Agent == nil || af.Agent.Name == "" || af.EncryptedMnemonic == "" {
		return nil, kiterr.WithDetails(kiterr.ErrKeystoreCorrupt, map[string]string{
			"agent": name,
		})
	}
	return &af, nil
}

package keystore

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/sha3"

	"github.com/Shulepov/wallet-kit/internal/kitcrypto"
)

// DerivationPath returns the BIP-44 path used for agent keys.
func DerivationPath(index uint32) string {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", index)
}

// DerivedKey is the key material for one agent account. Callers destroy it
// when the session ends.
type DerivedKey struct {
	private *kitcrypto.SecureBytes
	public  *secp256k1.PublicKey
}

// DeriveKey derives the secp256k1 key at m/44'/60'/0'/0/index from a BIP-39
// seed.
func DeriveKey(seed []byte, index uint32) (*DerivedKey, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("creating master key: %w", err)
	}

	key := master
	steps := []uint32{
		bip32.FirstHardenedChild + 44, // purpose
		bip32.FirstHardenedChild + 60, // coin type (ETH)
		bip32.FirstHardenedChild + 0,  // account
		0,                             // external chain
		index,
	}
	for _, step := range steps {
		key, err = key.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("deriving child %d: %w", step, err)
		}
	}

	priv := secp256k1.PrivKeyFromBytes(key.Key)
	return &DerivedKey{
		private: kitcrypto.SecureBytesFromSlice(priv.Serialize()),
		public:  priv.PubKey(),
	}, nil
}

// PublicKey returns the 33-byte compressed SEC1 public key.
func (k *DerivedKey) PublicKey() []byte {
	return k.public.SerializeCompressed()
}

// Address returns the EIP-55 checksummed address for the key.
func (k *DerivedKey) Address() string {
	uncompressed := k.public.SerializeUncompressed()
	hash := Keccak256(uncompressed[1:])
	return ChecksumAddress("0x" + hex.EncodeToString(hash[12:]))
}

// Sign produces a 65-byte [R || S || V] signature over keccak256(message),
// V in {27, 28}.
func (k *DerivedKey) Sign(message []byte) ([]byte, error) {
	data := k.private.Bytes()
	if data == nil {
		return nil, fmt.Errorf("key material destroyed")
	}

	priv := secp256k1.PrivKeyFromBytes(data)
	defer priv.Zero()

	digest := Keccak256(message)
	// SignCompact returns [V || R || S] with V already offset by 27.
	sig := secpecdsa.SignCompact(priv, digest, true)

	out := make([]byte, 65)
	copy(out[0:32], sig[1:33])
	copy(out[32:64], sig[33:65])
	out[64] = sig[0]
	return out, nil
}

// Destroy zeroes the private key material.
func (k *DerivedKey) Destroy() {
	k.private.Destroy()
}

// Keccak256 computes the Keccak-256 hash of the inputs.
func Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}

// VerifySignature checks a 65-byte [R || S || V] signature over
// keccak256(message) against a compressed public key.
func VerifySignature(publicKey, message, sig []byte) bool {
	if len(sig) != 65 {
		return false
	}

	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}

	compact := make([]byte, 65)
	compact[0] = sig[64]
	copy(compact[1:33], sig[0:32])
	copy(compact[33:65], sig[32:64])

	recovered, _, err := secpecdsa.RecoverCompact(compact, Keccak256(message))
	if err != nil {
		return false
	}
	return recovered.IsEqual(pub)
}

// ChecksumAddress converts a hex address to EIP-55 checksum format.
func ChecksumAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(addr) != 40 {
		return address
	}

	hash := hex.EncodeToString(Keccak256([]byte(addr)))

	result := make([]byte, 42)
	result[0] = '0'
	result[1] = 'x'
	for i := 0; i < 40; i++ {
		c := addr[i]
		if hash[i] >= '8' && c >= 'a' && c <= 'f' {
			c -= 32
		}
		result[i+2] = c
	}
	return string(result)
}

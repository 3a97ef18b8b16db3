// Package keystore implements the bundled local signing agent: BIP-39
// mnemonics, BIP-32 key derivation, age-encrypted agent files, and an
// adapter the orchestrator can connect to like any external wallet.
package keystore

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// MaxTypoDistance bounds how far a misspelled word may be from its
// suggestion; anything further is not worth suggesting.
const MaxTypoDistance = 2

// GenerateMnemonic creates a new BIP-39 mnemonic phrase.
// wordCount must be 12 (128 bits of entropy) or 24 (256 bits).
func GenerateMnemonic(wordCount int) (string, error) {
	var bitSize int
	switch wordCount {
	case 12:
		bitSize = 128
	case 24:
		bitSize = 256
	default:
		return "", kiterr.WithSuggestion(kiterr.ErrInvalidMnemonic, "word count must be 12 or 24")
	}

	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// NormalizeMnemonic lowercases the phrase, replaces commas with spaces, and
// collapses whitespace, so pasted phrases validate regardless of formatting.
func NormalizeMnemonic(input string) string {
	input = strings.ToLower(input)
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// ValidateMnemonic checks word count, word validity, and checksum. The
// returned error carries typo suggestions when misspelled words are close to
// wordlist entries.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonic(mnemonic)
	if normalized == "" {
		return kiterr.ErrInvalidMnemonic
	}

	words := strings.Fields(normalized)
	if len(words) != 12 && len(words) != 24 {
		return kiterr.WithSuggestion(kiterr.ErrInvalidMnemonic,
			"mnemonic must have 12 or 24 words")
	}

	if bip39.IsMnemonicValid(normalized) {
		return nil
	}

	if hints := typoHints(words); hints != "" {
		return kiterr.WithSuggestion(kiterr.ErrInvalidMnemonic, hints)
	}
	return kiterr.ErrInvalidMnemonic
}

// MnemonicToSeed converts a validated mnemonic to a 64-byte BIP-39 seed.
// The caller should zero the seed after use.
func MnemonicToSeed(mnemonic string) ([]byte, error) {
	normalized := NormalizeMnemonic(mnemonic)
	seed, err := bip39.NewSeedWithErrorChecking(normalized, "")
	if err != nil {
		return nil, kiterr.ErrInvalidMnemonic
	}
	return seed, nil
}

// SuggestWord finds the closest BIP-39 word to input, or empty when nothing
// is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string
	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// typoHints builds a human-readable suggestion string for words outside the
// wordlist.
func typoHints(words []string) string {
	valid := make(map[string]struct{}, len(bip39.GetWordList()))
	for _, w := range bip39.GetWordList() {
		valid[w] = struct{}{}
	}

	var sb strings.Builder
	for i, word := range words {
		if _, ok := valid[word]; ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		if s := SuggestWord(word); s != "" {
			_, _ = sb.WriteString("word " + itoa(i+1) + ": '" + word + "' - did you mean '" + s + "'?")
		} else {
			_, _ = sb.WriteString("word " + itoa(i+1) + ": '" + word + "' is not a BIP-39 word")
		}
	}
	return sb.String()
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

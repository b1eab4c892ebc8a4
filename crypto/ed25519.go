package crypto

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/ed25519"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a permission
//    sigs/ed25519/<pubkey>
func (p *PublicKey) Condition() covenant.Condition {
	return covenant.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address controlled by this key.
func (p *PublicKey) Address() covenant.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key. It serializes to JSON as a hex
// string, which is the format of the CLI key files.
type PrivateKey struct {
	Ed25519 []byte
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key length")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// MarshalJSON encodes the key as a hex string.
func (p PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.Ed25519))
}

// UnmarshalJSON decodes a hex encoded key and checks that its public
// half matches the private one.
func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bz, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(bz) != ed25519.PrivateKeySize {
		return errors.Wrapf(errors.ErrInput, "private key must be %d bytes", ed25519.PrivateKeySize)
	}
	key := PrivateKey{Ed25519: bz}
	msg := []byte("key check")
	sig, err := key.Sign(msg)
	if err != nil {
		return err
	}
	if !key.PublicKey().Verify(msg, sig) {
		return errors.Wrap(errors.ErrInput, "corrupted private key")
	}
	*p = key
	return nil
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}

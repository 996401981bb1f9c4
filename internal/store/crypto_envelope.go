package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"quip/internal/crypto"
)

const (
	saltBytes = 16

	// Upper bound on the scrypt cost accepted from a stored blob.
	maxScryptN = 1 << 20
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted record")
)

// sealed is the on-disk structure holding the ciphertext and KDF parameters.
type sealed struct {
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw.
func seal(passphrase string, raw []byte, N, r, p int) (*sealed, error) {
	var salt [saltBytes]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is single use
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return &sealed{Salt: salt[:], N: N, R: r, P: p, Cipher: ct}, nil
}

// open reverses seal.
func open(passphrase string, s *sealed) ([]byte, error) {
	if len(s.Salt) != saltBytes {
		return nil, fmt.Errorf("invalid salt size %d", len(s.Salt))
	}
	if s.N <= 1 || s.N > maxScryptN || s.R <= 0 || s.P <= 0 {
		return nil, fmt.Errorf("scrypt parameters out of range")
	}
	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, s.Salt)
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

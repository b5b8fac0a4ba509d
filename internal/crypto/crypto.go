package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"os"
)

// Phone numbers are PII and are stored encrypted. The key comes from the
// environment; the built-in default exists only for local development.
var encryptionKey = keyFromEnv()

func keyFromEnv() []byte {
	if k := os.Getenv("SAFETY_PII_KEY"); len(k) == 32 {
		return []byte(k)
	}
	return []byte("32-byte-key-for-aes-encryption!!")
}

// EncryptPII encrypts a PII value using AES-GCM and returns the ciphertext
// and nonce. Empty input yields nil ciphertext and nonce.
func EncryptPII(plaintext string) ([]byte, []byte, error) {
	if plaintext == "" {
		return nil, nil, nil
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}

	ciphertext := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)
	return ciphertext, nonce, nil
}

// DecryptPII decrypts an AES-GCM encrypted PII value.
func DecryptPII(ciphertext, nonce []byte) (string, error) {
	if len(ciphertext) == 0 {
		return "", nil
	}
	if len(nonce) == 0 {
		return "", errors.New("missing nonce")
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

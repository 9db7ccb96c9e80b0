package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters for deriving the file encryption key from the
// passphrase. These match the platform's server-side hashing defaults.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLength    = chacha20poly1305.KeySize
	saltLength   = 16
)

// EncryptedFileStore persists the credential pair encrypted at rest:
// an Argon2id-derived key and XChaCha20-Poly1305 sealing. A fresh salt and
// nonce are generated on every write.
type EncryptedFileStore struct {
	path       string
	passphrase []byte
	lock       sync.RWMutex
}

var _ Store = (*EncryptedFileStore)(nil)

type encryptedFile struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// NewEncryptedFileStore creates an encrypted file-backed credential store.
func NewEncryptedFileStore(path, passphrase string) (*EncryptedFileStore, error) {
	if path == "" {
		return nil, errors.New("[NewEncryptedFileStore] path is required")
	}
	if passphrase == "" {
		return nil, errors.New("[NewEncryptedFileStore] passphrase is required")
	}
	return &EncryptedFileStore{path: path, passphrase: []byte(passphrase)}, nil
}

func (es *EncryptedFileStore) Get() (*Credentials, error) {
	es.lock.RLock()
	defer es.lock.RUnlock()

	raw, err := os.ReadFile(es.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] ReadFile")
	}

	var ef encryptedFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] Unmarshal")
	}

	salt, err := base64.StdEncoding.DecodeString(ef.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] decode salt")
	}
	nonce, err := base64.StdEncoding.DecodeString(ef.Nonce)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] decode nonce")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(ef.Ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] decode ciphertext")
	}

	aead, err := chacha20poly1305.NewX(es.deriveKey(salt))
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] NewX")
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] decrypt (wrong passphrase or corrupted file)")
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, errors.Wrap(err, "[EncryptedFileStore.Get] Unmarshal credentials")
	}
	return &creds, nil
}

func (es *EncryptedFileStore) Set(creds Credentials) error {
	es.lock.Lock()
	defer es.lock.Unlock()

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] Marshal")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] rand salt")
	}

	aead, err := chacha20poly1305.NewX(es.deriveKey(salt))
	if err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] NewX")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] rand nonce")
	}

	ef := encryptedFile{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	}

	raw, err := json.Marshal(ef)
	if err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] Marshal file")
	}

	tmp, err := os.CreateTemp(filepath.Dir(es.path), ".credentials-*")
	if err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] CreateTemp")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[EncryptedFileStore.Set] Chmod")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[EncryptedFileStore.Set] Write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] Close")
	}
	if err := os.Rename(tmpName, es.path); err != nil {
		return errors.Wrap(err, "[EncryptedFileStore.Set] Rename")
	}
	return nil
}

func (es *EncryptedFileStore) Clear() error {
	es.lock.Lock()
	defer es.lock.Unlock()

	if err := os.Remove(es.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[EncryptedFileStore.Clear] Remove")
	}
	return nil
}

func (es *EncryptedFileStore) deriveKey(salt []byte) []byte {
	return argon2.IDKey(es.passphrase, salt, argonTime, argonMemory, argonThreads, keyLength)
}

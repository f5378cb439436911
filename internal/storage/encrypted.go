package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/pbkdf2"

	"github.com/hist-tools/getyield/pkg/hist"
)

// PassphraseEnv は暗号化コンテナのパスフレーズを渡す環境変数
const PassphraseEnv = "GETYIELD_PASSPHRASE"

const (
	saltSize   = 16
	keySize    = 32
	pbkdf2Iter = 10000
)

// EncryptedStore は暗号化JSONコンテナのバックエンド
// ファイル形式: salt(16) | nonce | AES-256-GCM暗号文
type EncryptedStore struct {
	memStore
}

// OpenEncrypted は暗号化コンテナを読み込む
// パスフレーズは GETYIELD_PASSPHRASE から取得する
func OpenEncrypted(path string) (*EncryptedStore, error) {
	passphrase := os.Getenv(PassphraseEnv)
	if passphrase == "" {
		return nil, fmt.Errorf("encrypted container %q: %s is not set", path, PassphraseEnv)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}

	plain, err := decrypt(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt container: %w", err)
	}

	var c container
	if err := json.Unmarshal(plain, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal container: %w", err)
	}

	if err := normalize(&c); err != nil {
		return nil, err
	}
	return &EncryptedStore{memStore{hists: c.Histograms}}, nil
}

// WriteEncrypted はヒストグラム群を暗号化コンテナとして書き出す
func WriteEncrypted(path string, hists map[string]*hist.H1, passphrase string) error {
	if passphrase == "" {
		return errors.New("empty passphrase")
	}

	plain, err := json.Marshal(container{Histograms: hists})
	if err != nil {
		return fmt.Errorf("failed to marshal container: %w", err)
	}

	data, err := encrypt(plain, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt container: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write container: %w", err)
	}
	return nil
}

// deriveKey はパスフレーズとソルトから暗号化キーを導出する
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iter, keySize, sha256.New)
}

func encrypt(plain []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return append(salt, gcm.Seal(nonce, nonce, plain, nil)...), nil
}

func decrypt(data []byte, passphrase string) ([]byte, error) {
	if len(data) < saltSize {
		return nil, errors.New("container too short")
	}
	salt, rest := data[:saltSize], data[saltSize:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	if len(rest) < gcm.NonceSize() {
		return nil, errors.New("container too short")
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

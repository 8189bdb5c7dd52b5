package signer

import (
	"bytes"
	"crypto"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// GPGSigner implements Signer interface using OpenPGP
type GPGSigner struct {
	entity *openpgp.Entity
}

// NewGPGSigner creates a new GPG signer from a private key file
func NewGPGSigner(keyPath, passphrase string) (*GPGSigner, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	entity, err := readEntity(keyData)
	if err != nil {
		return nil, err
	}

	if err := unlock(entity, passphrase); err != nil {
		return nil, err
	}

	return NewGPGSignerFromEntity(entity)
}

// NewGPGSignerFromEntity wraps an already unlocked entity
func NewGPGSignerFromEntity(entity *openpgp.Entity) (*GPGSigner, error) {
	if entity == nil || entity.PrivateKey == nil {
		return nil, fmt.Errorf("entity has no private key")
	}
	if entity.PrivateKey.Encrypted {
		return nil, fmt.Errorf("private key is encrypted and no passphrase was given")
	}
	return &GPGSigner{entity: entity}, nil
}

// readEntity accepts armored or binary key rings and returns the first key
func readEntity(keyData []byte) (*openpgp.Entity, error) {
	entityList, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(keyData))
	if err != nil {
		entityList, err = openpgp.ReadKeyRing(bytes.NewReader(keyData))
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}
	return entityList[0], nil
}

func unlock(entity *openpgp.Entity, passphrase string) error {
	if passphrase == "" {
		return nil
	}

	if entity.PrivateKey != nil && entity.PrivateKey.Encrypted {
		if err := entity.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}

	for _, subkey := range entity.Subkeys {
		if subkey.PrivateKey != nil && subkey.PrivateKey.Encrypted {
			if err := subkey.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
				return fmt.Errorf("failed to decrypt subkey: %w", err)
			}
		}
	}
	return nil
}

// SignCleartext creates a cleartext signature (InRelease)
func (s *GPGSigner) SignCleartext(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := clearsign.Encode(&buf, s.entity.PrivateKey, s.config())
	if err != nil {
		return nil, fmt.Errorf("failed to start cleartext signature: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	return buf.Bytes(), nil
}

// SignDetached creates an armored detached signature (Release.gpg)
func (s *GPGSigner) SignDetached(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	err := openpgp.ArmoredDetachSign(&buf, s.entity, bytes.NewReader(data), s.config())
	if err != nil {
		return nil, fmt.Errorf("failed to create detached signature: %w", err)
	}

	return buf.Bytes(), nil
}

// GetPublicKey returns the public key in armored format
func (s *GPGSigner) GetPublicKey() ([]byte, error) {
	var buf bytes.Buffer

	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}

	err = s.entity.Serialize(w)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *GPGSigner) config() *packet.Config {
	return &packet.Config{DefaultHash: crypto.SHA512}
}

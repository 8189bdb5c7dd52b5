package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/signer"
)

func TestGenerateSigned(t *testing.T) {
	entity, err := openpgp.NewEntity("Catalog Test", "", "catalog@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}
	s, err := signer.NewGPGSignerFromEntity(entity)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	tmpDir := t.TempDir()
	gen := NewGenerator(s)
	config := &models.RepositoryConfig{OutputDir: tmpDir}

	if err := gen.Generate(context.Background(), config, testPackages(1)); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	apiDir := filepath.Join(tmpDir, "api")
	release, err := os.ReadFile(filepath.Join(apiDir, "Release"))
	if err != nil {
		t.Fatalf("Release not written: %v", err)
	}
	sig, err := os.ReadFile(filepath.Join(apiDir, "Release.gpg"))
	if err != nil {
		t.Fatalf("Release.gpg not written: %v", err)
	}

	keyring := openpgp.EntityList{entity}
	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(release), bytes.NewReader(sig), nil); err != nil {
		t.Errorf("Release.gpg does not verify: %v", err)
	}

	inRelease, _ := os.ReadFile(filepath.Join(apiDir, "InRelease"))
	if !bytes.Contains(inRelease, []byte("BEGIN PGP SIGNED MESSAGE")) {
		t.Errorf("InRelease is not cleartext signed")
	}
	if _, err := os.Stat(filepath.Join(apiDir, "KEY.gpg")); err != nil {
		t.Errorf("KEY.gpg not written: %v", err)
	}
}

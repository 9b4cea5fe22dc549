// Package sessionfile persists the client credential in a per-user file
// that lives as long as the login session: by default under
// $XDG_RUNTIME_DIR, which the OS empties on logout.
//
// When an age X25519 identity is configured the file is encrypted to that
// identity; otherwise it is plain JSON readable only by the owner (0600).
package sessionfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"filippo.io/age"

	"github.com/aura-home/aura-client/internal/core/domain"
)

const fileName = "credential.json"

// DefaultPath returns $XDG_RUNTIME_DIR/aura/credential.json, falling back
// to the temp dir when no runtime dir is set.
func DefaultPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "aura", fileName)
}

// Backend implements ports.CredentialBackend on a single file.
type Backend struct {
	path     string
	identity *age.X25519Identity
}

// New returns a file backend at path. key is an optional
// AGE-SECRET-KEY-1... identity; empty disables encryption.
func New(path, key string) (*Backend, error) {
	if path == "" {
		path = DefaultPath()
	}
	b := &Backend{path: path}
	if key != "" {
		identity, err := age.ParseX25519Identity(key)
		if err != nil {
			return nil, fmt.Errorf("sessionfile: parsing session key: %w", err)
		}
		b.identity = identity
	}
	return b, nil
}

func (b *Backend) Path() string { return b.path }

func (b *Backend) Encrypted() bool { return b.identity != nil }

func (b *Backend) Load(context.Context) (domain.Credential, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Credential{}, domain.ErrNoCredential
		}
		return domain.Credential{}, fmt.Errorf("reading session file %s: %w", b.path, err)
	}

	if b.identity != nil {
		reader, err := age.Decrypt(bytes.NewReader(data), b.identity)
		if err != nil {
			return domain.Credential{}, fmt.Errorf("decrypting session file %s: %w", b.path, err)
		}
		if data, err = io.ReadAll(reader); err != nil {
			return domain.Credential{}, fmt.Errorf("reading decrypted session file %s: %w", b.path, err)
		}
	}

	var c domain.Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Credential{}, fmt.Errorf("parsing session file %s: %w", b.path, err)
	}
	if c.IsZero() {
		return domain.Credential{}, domain.ErrNoCredential
	}
	return c, nil
}

// Save writes the credential through a temp file and rename so readers
// never observe a half-written file.
func (b *Backend) Save(_ context.Context, c domain.Credential) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling credential: %w", err)
	}

	if b.identity != nil {
		var sealed bytes.Buffer
		w, err := age.Encrypt(&sealed, b.identity.Recipient())
		if err != nil {
			return fmt.Errorf("creating age encryptor: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing credential to age encryptor: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("finalizing age encryption: %w", err)
		}
		data = sealed.Bytes()
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+fileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp session file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("writing session file %s: %w", b.path, err)
	}
	return nil
}

func (b *Backend) Delete(context.Context) error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", b.path, err)
	}
	return nil
}

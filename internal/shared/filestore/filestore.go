package filestore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=filestore.go -destination=mock/filestore_mock.go -package=mock

// Store menyimpan file upload di disk lokal dengan nama unik.
// Nama hasil generate (uuid + ekstensi asli) membuat path bebas tabrakan
// tanpa perlu locking.
type Store interface {
	// Save writes the bytes under a generated unique name inside subdir and
	// returns the public path clients can use to fetch the file.
	Save(subdir, originalName string, data []byte) (publicPath string, err error)
}

type localStore struct {
	root string
}

// NewLocalStore membuat Store berbasis direktori lokal. Root dibuat saat
// pertama kali dipakai, bukan saat konstruksi.
func NewLocalStore(root string) Store {
	return &localStore{root: root}
}

func (s *localStore) Save(subdir, originalName string, data []byte) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	uniqueName := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(dir, uniqueName), data, 0o644); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filepath.Join(subdir, uniqueName)), nil
}

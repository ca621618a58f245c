package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Namespaces used by the service
const (
	NamespacePortfolio     = "portfolio"
	NamespaceContactVideos = "contact-videos"
)

// ErrStorage wraps every backend failure returned from BlobStore
var ErrStorage = errors.New("blob storage failure")

// sniffLen is enough for mimetype to recognise every format we accept
const sniffLen = 3072

// BlobStore names, writes and removes uploaded files on top of a Storage backend.
// A ref is the namespaced key, e.g. "portfolio/1700000000000000000_ab12cd34ef56ab78.jpg".
type BlobStore struct {
	backend Storage
	now     func() time.Time
}

func NewBlobStore(backend Storage) *BlobStore {
	return &BlobStore{backend: backend, now: time.Now}
}

// Put stores the content under a freshly generated name and returns its ref.
// The suggested name only contributes its extension.
func (b *BlobStore) Put(ctx context.Context, r io.Reader, suggestedName, namespace, contentType string) (string, error) {
	name, err := b.generateName(suggestedName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	ref := path.Join(namespace, name)

	if err := b.backend.Save(ctx, ref, r, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return ref, nil
}

func (b *BlobStore) Exists(ctx context.Context, ref string) (bool, error) {
	ok, err := b.backend.Exists(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return ok, nil
}

// Delete is a no-op for refs that are already gone
func (b *BlobStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if err := b.backend.Delete(ctx, ref); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Open streams a stored blob; ErrObjectNotFound is passed through unwrapped
func (b *BlobStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	rc, err := b.backend.Open(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rc, nil
}

// PublicURL is a pure derivation from the configured base URL
func (b *BlobStore) PublicURL(ref string) string {
	return b.backend.URL(ref)
}

func (b *BlobStore) generateName(suggestedName string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d_%s%s", b.now().UnixNano(), hex.EncodeToString(buf), cleanExt(suggestedName)), nil
}

// cleanExt keeps a short alphanumeric extension, anything else is dropped
func cleanExt(name string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// DetectContentType returns declared when it is specific, otherwise sniffs the
// head of r. The returned reader replays the sniffed bytes.
func DetectContentType(r io.Reader, declared string) (string, io.Reader, error) {
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if declared != "" && declared != "application/octet-stream" {
		return declared, r, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]

	mt := strings.Split(mimetype.Detect(head).String(), ";")[0]
	return mt, io.MultiReader(bytes.NewReader(head), r), nil
}

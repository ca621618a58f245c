package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"

	"gorm.io/gorm"
)

// memBlobStore - BlobStore в памяти с инъекцией ошибок
type memBlobStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	types     map[string]string
	seq       int
	putErr    error
	deleteErr error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (m *memBlobStore) Put(ctx context.Context, r io.Reader, suggestedName, namespace, contentType string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	ref := path.Join(namespace, fmt.Sprintf("%d%s", m.seq, path.Ext(suggestedName)))
	m.blobs[ref] = data
	m.types[ref] = contentType
	return ref, nil
}

func (m *memBlobStore) Exists(ctx context.Context, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[ref]
	return ok, nil
}

func (m *memBlobStore) Delete(ctx context.Context, ref string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, ref)
	return nil
}

func (m *memBlobStore) PublicURL(ref string) string {
	return "http://files.test/" + ref
}

func (m *memBlobStore) refs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.blobs))
	for ref := range m.blobs {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// flakyPortfolioRepo - настоящий репозиторий с подменой отдельных операций
type flakyPortfolioRepo struct {
	repositories.PortfolioRepository
	createErr    error
	updateErr    error
	deleteErr    error
	beforeUpdate func(db *gorm.DB, item *models.PortfolioItem)
	beforeDelete func(db *gorm.DB, id uint)
}

func (r *flakyPortfolioRepo) Create(db *gorm.DB, item *models.PortfolioItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.PortfolioRepository.Create(db, item)
}

func (r *flakyPortfolioRepo) Update(db *gorm.DB, item *models.PortfolioItem) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate(db, item)
	}
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.PortfolioRepository.Update(db, item)
}

func (r *flakyPortfolioRepo) Delete(db *gorm.DB, id uint, filePath string) error {
	if r.beforeDelete != nil {
		r.beforeDelete(db, id)
	}
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.PortfolioRepository.Delete(db, id, filePath)
}

// recordingMailer запоминает письма вместо отправки
type recordingMailer struct {
	sent []*email.Email
	data []email.TemplateData
	err  error
}

func (m *recordingMailer) Send(e *email.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) SendWithTemplate(name string, data email.TemplateData, e *email.Email) error {
	if m.err != nil {
		return m.err
	}
	m.data = append(m.data, data)
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) Validate() error { return nil }
func (m *recordingMailer) Close() error    { return nil }

var errBoom = errors.New("boom")

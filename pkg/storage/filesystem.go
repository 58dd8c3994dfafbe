// Package storage persists engine state under a .specvet workspace
// directory: the draft spec as YAML, compiled documents and quality
// scores as JSON, and the audit chain as JSONL.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/specvet/specvet/pkg/domain/quality"
	"github.com/specvet/specvet/pkg/domain/spec"
	"gopkg.in/yaml.v3"
)

const SpecvetDir = ".specvet"
const DraftFile = "spec.yaml"
const DocumentsFile = "documents.json"
const ScoresFile = "scores.json"
const EventsFile = "events.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config

	// Serializes read-modify-write of documents.json so the approval
	// gate's conditional update really is compare-and-set.
	mu sync.Mutex
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath confines filename to a direct child of the .specvet
// directory and rejects traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, SpecvetDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, SpecvetDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .specvet directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, SpecvetDir))
	return err == nil
}

func (r *FilesystemRepository) SaveDraft(s *spec.ExecutableSpec) error {
	path, err := r.ResolvePath(DraftFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal draft spec: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadDraft() (*spec.ExecutableSpec, error) {
	retryer := retry.New[*spec.ExecutableSpec](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*spec.ExecutableSpec, error) {
		path, err := r.ResolvePath(DraftFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, spec.ErrSpecNotFound
			}
			return nil, fmt.Errorf("failed to read draft spec: %w", err)
		}

		var s spec.ExecutableSpec
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal draft spec: %w", err)
		}
		return &s, nil
	})
}

func (r *FilesystemRepository) SaveDocument(doc *spec.SpecDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.loadDocuments()
	if err != nil {
		return err
	}

	if existing, ok := docs[doc.ID]; ok && existing.Status == spec.StatusLocked {
		return spec.ErrSpecLocked
	}

	docs[doc.ID] = doc
	return r.writeDocuments(docs)
}

func (r *FilesystemRepository) LoadDocument(id string) (*spec.SpecDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.loadDocuments()
	if err != nil {
		return nil, err
	}

	doc, ok := docs[id]
	if !ok {
		return nil, spec.ErrSpecNotFound
	}
	return doc, nil
}

func (r *FilesystemRepository) ListDocuments() ([]*spec.SpecDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.loadDocuments()
	if err != nil {
		return nil, err
	}

	out := make([]*spec.SpecDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, d)
	}
	return out, nil
}

// LockDocument applies the locked state only if the stored document is
// still a draft at write time. The loser of a concurrent approval race
// gets ErrSpecLocked.
func (r *FilesystemRepository) LockDocument(id string, locked *spec.SpecDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.loadDocuments()
	if err != nil {
		return err
	}

	current, ok := docs[id]
	if !ok {
		return spec.ErrSpecNotFound
	}
	if current.Status == spec.StatusLocked {
		return spec.ErrSpecLocked
	}

	docs[id] = locked
	return r.writeDocuments(docs)
}

func (r *FilesystemRepository) loadDocuments() (map[string]*spec.SpecDocument, error) {
	path, err := r.ResolvePath(DocumentsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*spec.SpecDocument{}, nil
		}
		return nil, fmt.Errorf("failed to read documents file: %w", err)
	}

	docs := map[string]*spec.SpecDocument{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
	}
	return docs, nil
}

func (r *FilesystemRepository) writeDocuments(docs map[string]*spec.SpecDocument) error {
	path, err := r.ResolvePath(DocumentsFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) SaveScores(specID string, scores quality.SpecQualityScores) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadScores()
	if err != nil {
		return err
	}

	all[specID] = scores

	path, err := r.ResolvePath(ScoresFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadScores(specID string) (*quality.SpecQualityScores, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadScores()
	if err != nil {
		return nil, err
	}

	scores, ok := all[specID]
	if !ok {
		return nil, spec.ErrSpecNotFound
	}
	return &scores, nil
}

func (r *FilesystemRepository) loadScores() (map[string]quality.SpecQualityScores, error) {
	path, err := r.ResolvePath(ScoresFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]quality.SpecQualityScores{}, nil
		}
		return nil, fmt.Errorf("failed to read scores file: %w", err)
	}

	all := map[string]quality.SpecQualityScores{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	return all, nil
}

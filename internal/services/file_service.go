package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ChristianBello1/hosting/internal/models"
)

// FileServiceProvider defines the interface for the per-client file manager.
type FileServiceProvider interface {
	ListFiles(clientID, dirPath string) ([]models.FileEntry, error)
	ReadFile(clientID, filePath string) (string, error)
	WriteFile(clientID, filePath, content string) error
	CreateDirectory(clientID, dirPath string) error
	Delete(clientID, filePath string) error
	Move(clientID, oldPath, newPath string) error
}

// FileService manages files under each client's site directory. Every path
// is normalized and confined to the client's root.
type FileService struct {
	sitesDir string
}

// NewFileService creates a new FileService rooted at sitesDir.
func NewFileService(sitesDir string) *FileService {
	return &FileService{sitesDir: sitesDir}
}

// resolve maps a client-relative path to an absolute one inside the client's
// site root. Rooting the path before Clean strips any ".." traversal.
func (s *FileService) resolve(clientID, rel string) (string, error) {
	if clientID == "" || strings.ContainsAny(clientID, `/\`) {
		return "", fmt.Errorf("invalid client id %q", clientID)
	}
	base := filepath.Join(s.sitesDir, clientID)
	return filepath.Join(base, filepath.Clean("/"+rel)), nil
}

// ListFiles returns the entries of a directory, directories first then by
// name. A missing directory is created empty rather than reported as an
// error, matching the dashboard's expectation for fresh sites.
func (s *FileService) ListFiles(clientID, dirPath string) ([]models.FileEntry, error) {
	fullPath, err := s.resolve(clientID, dirPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return nil, err
		}
		return []models.FileEntry{}, nil
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileEntry, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		entryType := "file"
		if entry.IsDir() {
			entryType = "directory"
		}
		files = append(files, models.FileEntry{
			Name:       entry.Name(),
			Type:       entryType,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Type != files[j].Type {
			return files[i].Type == "directory"
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// ReadFile returns the content of a file.
func (s *FileService) ReadFile(clientID, filePath string) (string, error) {
	fullPath, err := s.resolve(clientID, filePath)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file %s: %w", filePath, ErrNotFound)
		}
		return "", err
	}
	return string(content), nil
}

// WriteFile writes content to a file, creating parent directories as needed.
func (s *FileService) WriteFile(clientID, filePath, content string) error {
	fullPath, err := s.resolve(clientID, filePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// CreateDirectory creates a directory (and any missing parents).
func (s *FileService) CreateDirectory(clientID, dirPath string) error {
	fullPath, err := s.resolve(clientID, dirPath)
	if err != nil {
		return err
	}
	return os.MkdirAll(fullPath, 0755)
}

// Delete removes a file or directory tree.
func (s *FileService) Delete(clientID, filePath string) error {
	fullPath, err := s.resolve(clientID, filePath)
	if err != nil {
		return err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s: %w", filePath, ErrNotFound)
		}
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(fullPath)
	}
	return os.Remove(fullPath)
}

// Move renames a file or directory within the client's site root.
func (s *FileService) Move(clientID, oldPath, newPath string) error {
	oldFull, err := s.resolve(clientID, oldPath)
	if err != nil {
		return err
	}
	newFull, err := s.resolve(clientID, newPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(newFull), 0755); err != nil {
		return err
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s: %w", oldPath, ErrNotFound)
		}
		return err
	}
	return nil
}

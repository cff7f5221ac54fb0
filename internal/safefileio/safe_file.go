// Package safefileio reads input files and writes exports without following
// symbolic links, and only ever touches regular files.
package safefileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/renameio/v2"
)

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file is too large.
	ErrFileTooLarge = errors.New("file too large")
)

// MaxFileSize is the largest file ReadFile accepts (16 MB)
const MaxFileSize = 16 * 1024 * 1024

// isNoFollowError reports whether opening failed because the path is a symlink
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, syscall.ELOOP) || errors.Is(e.Err, syscall.EMLINK)
}

// ReadFile reads a regular file of at most MaxFileSize bytes. The final path
// component must not be a symlink.
func ReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW rejects symlinks
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, filePath)
		}
		return nil, err
	}
	defer file.Close()

	info, err := regularFileInfo(file, filePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, filePath)
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if len(content) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, filePath)
	}
	return content, nil
}

// WriteFile creates or replaces a regular file with what write produces.
// The content goes to a temporary file in the same directory that is renamed
// into place only after write succeeds, so a failed write leaves any existing
// file untouched. Existing symlinks and non-regular files are refused.
func WriteFile(filePath string, perm os.FileMode, write func(io.Writer) error) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	if fi, statErr := os.Lstat(absPath); statErr == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, filePath)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
		}
	}

	pending, err := renameio.NewPendingFile(absPath, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filePath, err)
	}
	defer pending.Cleanup() //nolint:errcheck

	if err := write(pending); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filePath, err)
	}
	return nil
}

// regularFileInfo stats the open file, so the check applies to what was opened
func regularFileInfo(file *os.File, filePath string) (os.FileInfo, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}
	return info, nil
}

package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// RotatorConfig sizes a LogRotator.
type RotatorConfig struct {
	Dir        string
	BaseName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer appending to Dir/BaseName and rotating the file
// once it grows past MaxSizeMB. Backups are named BaseName.<timestamp>[.gz].
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

// NewLogRotator opens (or creates) the current log file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.BaseName == "" {
		cfg.BaseName = "keymapper.log"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		baseDir:    cfg.Dir,
		baseName:   cfg.BaseName,
		maxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		maxBackups: cfg.MaxBackups,
		compress:   cfg.Compress,
		now:        time.Now,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the file currently written to.
func (r *LogRotator) Path() string {
	return filepath.Join(r.baseDir, r.baseName)
}

func (r *LogRotator) openCurrentFile() error {
	logPath := r.Path()

	r.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
	}
	r.currentFile = nil

	backupPath := filepath.Join(r.baseDir, fmt.Sprintf("%s.%s", r.baseName, r.now().Format("2006-01-02-15-04-05.000")))
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func compressFile(filePath string) (err error) {
	in, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// cleanup drops backups older than maxAge, then the oldest ones past maxBackups.
func (r *LogRotator) cleanup() {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	now := r.now()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, r.baseName+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			r.remove(name)
			continue
		}
		backups = append(backups, info)
	}

	if r.maxBackups <= 0 || len(backups) <= r.maxBackups {
		return
	}
	slices.SortFunc(backups, func(a, b os.FileInfo) int {
		return a.ModTime().Compare(b.ModTime())
	})
	for _, info := range backups[:len(backups)-r.maxBackups] {
		r.remove(info.Name())
	}
}

func (r *LogRotator) remove(name string) {
	if err := os.Remove(filepath.Join(r.baseDir, name)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
	}
}

// Close closes the current file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"lexihub/internal/config"
)

// BackupInfo describes one dump file on disk.
type BackupInfo struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

type BackupService interface {
	CreateBackup(ctx context.Context) (*BackupInfo, error)
	ListBackups(ctx context.Context) ([]BackupInfo, error)
	ResolveBackupPath(filename string) (string, error)
	DeleteBackup(filename string) error
}

type backupService struct {
	databaseURL string
	backupDir   string
	logger      *slog.Logger
}

func NewBackupService(cfg *config.Config, logger *slog.Logger) BackupService {
	return &backupService{
		databaseURL: cfg.DatabaseURL,
		backupDir:   cfg.BackupDir,
		logger:      logger,
	}
}

// CreateBackup shells out to pg_dump and writes a timestamped .sql file
// under the backup directory.
func (s *backupService) CreateBackup(ctx context.Context) (*BackupInfo, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	filename := fmt.Sprintf("backup_%s.sql", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.backupDir, filename)

	cmd := exec.CommandContext(ctx, "pg_dump", "--no-owner", "--file", path, s.databaseURL)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// A partial dump is worse than none.
		_ = os.Remove(path)
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}
	s.logger.Info("database backup created", "file", filename, "bytes", info.Size())
	return &BackupInfo{
		Filename:  filename,
		SizeBytes: info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

func (s *backupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Filename:  entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	return backups, nil
}

// ResolveBackupPath validates the filename and returns its absolute path.
// Rejects anything that is not a plain .sql name inside the backup dir.
func (s *backupService) ResolveBackupPath(filename string) (string, error) {
	if err := validateBackupFilename(filename); err != nil {
		return "", err
	}
	path := filepath.Join(s.backupDir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrBackupNotFound
		}
		return "", fmt.Errorf("stat backup: %w", err)
	}
	return path, nil
}

func (s *backupService) DeleteBackup(filename string) error {
	path, err := s.ResolveBackupPath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	s.logger.Info("database backup deleted", "file", filename)
	return nil
}

func validateBackupFilename(filename string) error {
	if filename == "" || !strings.HasSuffix(filename, ".sql") {
		return ErrInvalidBackupFilename
	}
	// No separators or traversal segments: the name must resolve to itself.
	if filepath.Base(filename) != filename || strings.Contains(filename, "..") {
		return ErrInvalidBackupFilename
	}
	return nil
}

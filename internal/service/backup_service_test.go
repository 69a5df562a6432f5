package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lexihub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackupService(t *testing.T) (BackupService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{BackupDir: dir, DatabaseURL: "postgres://localhost/test"}
	return NewBackupService(cfg, testLogger()), dir
}

func TestResolveBackupPath_RejectsTraversal(t *testing.T) {
	svc, _ := newTestBackupService(t)

	for _, name := range []string{
		"../etc/passwd.sql",
		"..%2fescape.sql",
		"nested/dump.sql",
		"dump.tar.gz",
		"",
	} {
		_, err := svc.ResolveBackupPath(name)
		assert.ErrorIs(t, err, ErrInvalidBackupFilename, "filename %q should be rejected", name)
	}
}

func TestResolveBackupPath_MissingFile(t *testing.T) {
	svc, _ := newTestBackupService(t)

	_, err := svc.ResolveBackupPath("backup_20260101_000000.sql")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestListAndDeleteBackups(t *testing.T) {
	svc, dir := newTestBackupService(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup_20260101_000000.sql"), []byte("-- dump"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a dump"), 0o644))

	backups, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "backup_20260101_000000.sql", backups[0].Filename)
	assert.Equal(t, int64(7), backups[0].SizeBytes)

	require.NoError(t, svc.DeleteBackup("backup_20260101_000000.sql"))

	backups, err = svc.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestListBackups_EmptyDirGone(t *testing.T) {
	cfg := &config.Config{BackupDir: filepath.Join(t.TempDir(), "never-created")}
	svc := NewBackupService(cfg, testLogger())

	backups, err := svc.ListBackups(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, backups)
}

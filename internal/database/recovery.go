package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// RecoveryResult indicates the outcome of a recovery attempt.
type RecoveryResult int

const (
	// RecoverySuccess means the database was healthy or recovered in place.
	RecoverySuccess RecoveryResult = iota
	// RecoveryFromBackup means the database was restored from a backup.
	RecoveryFromBackup
	// RecoveryFailed means all recovery attempts failed.
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoverySuccess:
		return "success"
	case RecoveryFromBackup:
		return "restored_from_backup"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryStep records one phase of the recovery process.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
}

// RecoveryReport contains details about a recovery attempt.
type RecoveryReport struct {
	Result       RecoveryResult
	DatabasePath string
	BackupUsed   string
	WALRecovered bool
	Error        error
	Steps        []RecoveryStep
}

// run executes one recovery phase, appends it to the report, and
// returns whether it succeeded.
func (r *RecoveryReport) run(name string, fn func() (string, error)) bool {
	msg, err := fn()

	step := RecoveryStep{Name: name, Succeeded: err == nil, Message: msg}
	if err != nil {
		step.Message = err.Error()
	}
	r.Steps = append(r.Steps, step)
	return step.Succeeded
}

// AttemptRecovery checks a possibly corrupted database before it is
// opened for real. It tries, in order, an integrity check, a WAL
// replay, and a restore from the newest healthy backup.
func AttemptRecovery(dbPath string, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{DatabasePath: dbPath}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		// First run, nothing to recover
		report.Result = RecoverySuccess
		report.Steps = append(report.Steps, RecoveryStep{
			Name:      "check_exists",
			Succeeded: true,
			Message:   "database does not exist (first run)",
		})
		return report, nil
	}

	if report.run("integrity_check", func() (string, error) { return verifyFile(dbPath) }) {
		report.Result = RecoverySuccess
		slog.Info("database integrity check passed", "path", dbPath)
		return report, nil
	}
	slog.Warn("database integrity check failed", "path", dbPath)

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		replayed := report.run("wal_recovery", func() (string, error) { return replayWAL(dbPath) })
		if replayed && report.run("post_wal_integrity", func() (string, error) { return verifyFile(dbPath) }) {
			report.Result = RecoverySuccess
			report.WALRecovered = true
			slog.Info("database recovered via WAL replay", "path", dbPath)
			return report, nil
		}
	}

	if backupDir != "" {
		restored := report.run("backup_restoration", func() (string, error) {
			return restoreFromBackup(dbPath, backupDir)
		})
		if restored {
			last := report.Steps[len(report.Steps)-1]
			report.Result = RecoveryFromBackup
			report.BackupUsed = last.Message
			slog.Info("database restored from backup", "path", dbPath, "backup", last.Message)
			return report, nil
		}
	}

	report.Result = RecoveryFailed
	report.Error = errors.New("all recovery attempts failed")
	slog.Error("database recovery failed", "path", dbPath, "steps", len(report.Steps))
	return report, report.Error
}

// verifyFile opens the file read-only and runs SQLite's integrity
// check against it.
func verifyFile(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return "", fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "", fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, line)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating results: %w", err)
	}

	if len(results) != 1 || results[0] != "ok" {
		return "", fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
	}
	return "ok", nil
}

// replayWAL opens the database normally, which replays the WAL, then
// forces a checkpoint.
func replayWAL(dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("WAL checkpoint: %w", err)
	}
	return "WAL checkpoint complete", nil
}

// listBackups returns the backup files in the directory, newest first.
func listBackups(backupDir string) ([]string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path:    filepath.Join(backupDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime.After(found[j].modTime)
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}

// restoreFromBackup copies the newest backup that passes an integrity
// check over the corrupted database. The corrupted file is kept under
// a .corrupted suffix.
func restoreFromBackup(dbPath string, backupDir string) (string, error) {
	backups, err := listBackups(backupDir)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", errors.New("no backup files found")
	}

	for _, backup := range backups {
		if _, err := verifyFile(backup); err != nil {
			slog.Debug("backup failed integrity check", "path", backup, "error", err)
			continue
		}

		corruptedPath := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := moveFile(dbPath, corruptedPath); err != nil {
			slog.Warn("failed to preserve corrupted database", "path", dbPath, "error", err)
		}

		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		if err := copyFile(backup, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return backup, nil
	}

	return "", errors.New("no valid backup found")
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Cross-filesystem fallback
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("syncing destination: %w", err)
	}

	if info, err := os.Stat(src); err == nil {
		os.Chmod(dst, info.Mode())
	}
	return nil
}

package engine

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Export writes the current state as a backup document.
func (s *Service) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.Export(s.state, w)
}

// ExportToDir writes a timestamped backup file and returns its path.
func (s *Service) ExportToDir(dir, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.WriteBackupFile(s.state, dir, label)
}

// Import applies a decoded backup to the live state, either merging into it
// or replacing it wholesale, and persists the result. The caller is expected
// to have taken a safety export first.
func (s *Service) Import(ctx context.Context, bf *storage.BackupFile, mode storage.ImportMode) error {
	return s.mutate(ctx, func(st *storage.State) error {
		merged, err := storage.Apply(st, bf, mode)
		if err != nil {
			return err
		}
		*st = *merged
		log.WithFields(log.Fields{
			"mode":    mode,
			"version": bf.Version,
		}).Info("backup imported")
		return nil
	})
}

package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName tags backup files so imports from other apps are caught.
	AppName = "FamGrow"
	// BackupVersion is informational; mismatched versions still import.
	BackupVersion = "1.2.0"
)

// BackupFile is the export/import envelope.
type BackupFile struct {
	App       string          `json:"app"`
	Version   string          `json:"version"`
	CreatedAt string          `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// ImportMode selects how a backup's data is applied to the live state.
type ImportMode int

const (
	// ImportMerge deep-merges the backup into the live state: objects merge
	// key by key, arrays are replaced wholesale, scalars overwrite.
	ImportMerge ImportMode = iota
	// ImportOverwrite discards the live state and keeps only the backup.
	ImportOverwrite
)

// Export writes the state wrapped in a backup envelope.
func Export(s *State, w io.Writer) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("backup encode state: %w", err)
	}
	bf := BackupFile{
		App:       AppName,
		Version:   BackupVersion,
		CreatedAt: time.Now().Format(time.RFC3339),
		Data:      data,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&bf); err != nil {
		return fmt.Errorf("backup write: %w", err)
	}
	return nil
}

// WriteBackupFile exports the state to a timestamped file in dir and returns
// the path. Used for the automatic pre-import backup.
func WriteBackupFile(s *State, dir, label string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s_%s.json", AppName, label, stamp))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("backup create %s: %w", path, err)
	}
	defer f.Close()
	if err := Export(s, f); err != nil {
		return "", err
	}
	return path, nil
}

// DecodeBackup parses and shape-checks a backup file. Validation happens
// before anything touches live state; a bad file never causes a partial write.
func DecodeBackup(r io.Reader) (*BackupFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("backup read: %w", err)
	}
	var bf BackupFile
	if err := json.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("backup is not valid JSON: %w", err)
	}
	if len(bf.Data) == 0 {
		return nil, fmt.Errorf("backup file is missing its data block")
	}
	var probe map[string]any
	if err := json.Unmarshal(bf.Data, &probe); err != nil {
		return nil, fmt.Errorf("backup data block is not an object: %w", err)
	}
	return &bf, nil
}

// Apply produces the post-import state from the current one and a decoded
// backup. The current state is never mutated.
func Apply(current *State, bf *BackupFile, mode ImportMode) (*State, error) {
	if mode == ImportOverwrite {
		var next State
		if err := json.Unmarshal(bf.Data, &next); err != nil {
			return nil, fmt.Errorf("backup data decode: %w", err)
		}
		return &next, nil
	}

	curRaw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("current state encode: %w", err)
	}
	var curMap, srcMap map[string]any
	if err := json.Unmarshal(curRaw, &curMap); err != nil {
		return nil, fmt.Errorf("current state decode: %w", err)
	}
	if err := json.Unmarshal(bf.Data, &srcMap); err != nil {
		return nil, fmt.Errorf("backup data decode: %w", err)
	}

	merged := deepMerge(curMap, srcMap)
	mergedRaw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merged state encode: %w", err)
	}
	var next State
	if err := json.Unmarshal(mergedRaw, &next); err != nil {
		return nil, fmt.Errorf("merged state decode: %w", err)
	}
	return &next, nil
}

// deepMerge merges source into target: maps key by key, slices replaced
// wholesale (index-merging arrays produces garbage), scalars overwritten.
func deepMerge(target, source any) any {
	tm, tok := target.(map[string]any)
	sm, sok := source.(map[string]any)
	if tok && sok {
		out := make(map[string]any, len(tm)+len(sm))
		for k, v := range tm {
			out[k] = v
		}
		for k, v := range sm {
			if existing, ok := out[k]; ok {
				out[k] = deepMerge(existing, v)
			} else {
				out[k] = v
			}
		}
		return out
	}
	return source
}

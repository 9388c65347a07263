package layout

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wippyai/fwsize/errors"
	"go.uber.org/zap"
)

// HistoryFile is the fixed name of the persisted layout, written next
// to the firmware image it describes.
const HistoryFile = "fw-size.last"

// HistoryPath returns the history file location for a firmware image:
// the fixed name inside the image's directory.
func HistoryPath(elfPath string) string {
	return filepath.Join(filepath.Dir(elfPath), HistoryFile)
}

// LoadHistory reads the layout persisted by the previous run. Every
// failure mode (no file, unreadable file, stale or foreign shape)
// degrades to "no history": the returned layout is nil and the run
// proceeds without deltas. The file carries no version field, so a
// decode failure is the only way to detect foreign content, including
// files written by the old fixed-region tool this one replaced.
func LoadHistory(path string) Layout {
	data, err := os.ReadFile(path)
	if err != nil {
		Logger().Debug("no history", zap.String("path", path), zap.Error(err))
		return nil
	}
	var lay Layout
	if err := json.Unmarshal(data, &lay); err != nil {
		Logger().Debug("history unreadable, ignoring",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return lay
}

// SaveHistory overwrites the history file with the current build's
// layout.
func SaveHistory(path string, l Layout) error {
	data, err := json.Marshal(l)
	if err != nil {
		return errors.WriteFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

package csvlog

import (
	"fmt"
	"os"
	"path/filepath"
)

// LatestFile returns the most recently modified file in dir whose name
// starts with prefix and ends in .csv, the way a fresh logging session is
// picked up without naming it explicitly.
func LatestFile(dir, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.csv"))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", dir, err)
	}

	var (
		newest     string
		newestMod  int64
		foundMatch bool
	)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if !foundMatch || info.ModTime().UnixNano() > newestMod {
			newest = m
			newestMod = info.ModTime().UnixNano()
			foundMatch = true
		}
	}

	if !foundMatch {
		return "", fmt.Errorf("%w: no %s*.csv in %s", ErrSourceUnavailable, prefix, dir)
	}
	return newest, nil
}

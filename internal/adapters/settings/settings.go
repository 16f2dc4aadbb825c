// Package settings persists the two user preferences: the mute flag and the
// last-used difficulty. The file is plain key=value text.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
)

// Keys in the settings file.
const (
	keyMuted     = "GUESS_MUTED"
	keyLastLevel = "GUESS_LAST_LEVEL"
)

// Settings is the persisted preference pair.
type Settings struct {
	Muted     bool
	LastLevel level.Level
}

// Defaults returns the settings used when nothing is persisted: sound on,
// Medium difficulty.
func Defaults() Settings {
	return Settings{Muted: false, LastLevel: level.Default}
}

// Load reads the settings file at path. A missing file, missing key, or
// malformed value falls back to the default for that field.
func Load(_ context.Context, path string) (Settings, error) {
	s := Defaults()

	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrLoadSettings, err)
	}

	if raw, ok := values[keyMuted]; ok {
		if muted, perr := strconv.ParseBool(raw); perr == nil {
			s.Muted = muted
		}
	}
	if raw, ok := values[keyLastLevel]; ok {
		if lvl, perr := level.Parse(raw); perr == nil {
			s.LastLevel = lvl
		}
	}
	return s, nil
}

// Save rewrites the settings file at path.
func Save(_ context.Context, path string, s Settings) error {
	values := map[string]string{
		keyMuted:     strconv.FormatBool(s.Muted),
		keyLastLevel: s.LastLevel.Name(),
	}
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSettings, err)
	}
	return nil
}

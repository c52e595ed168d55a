package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported reports whether path has a decodable subtitle extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".srt":
		return true
	}
	return false
}

// ReadFile decodes a subtitle file chosen by extension. Missing metadata is
// filled from the file name.
func ReadFile(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, fmt.Errorf("open subtitle: %w", err)
	}
	defer f.Close()

	var track Track
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		track, err = DecodeBilibili(f)
	case ".srt":
		track, err = ParseSRT(f)
	default:
		return Track{}, fmt.Errorf("unsupported subtitle format %q", ext)
	}
	if err != nil {
		return Track{}, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if track.VideoID == "" {
		if id, err := ParseVideoID(stem); err == nil {
			track.VideoID = id
		} else {
			track.VideoID = SafeName(stem)
		}
	}
	if track.Title == "" {
		track.Title = track.VideoID
	}
	return track, nil
}

// SafeName reduces s to a single path element usable as a directory or file
// name prefix. Separators become "_" and dot-only names become "untitled".
func SafeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if strings.Trim(s, ".") == "" {
		return "untitled"
	}
	return s
}

package hls

import (
	"bufio"
	"os"
	"strings"

	"github.com/google/renameio/v2"
)

// ReadPlaylistLines loads a playlist from disk, splitting on either "\r\n" or
// "\n" line endings.
func ReadPlaylistLines(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- playlist paths come from our own segmenter
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WritePlaylist atomically replaces the playlist file so HTTP readers never
// observe a partially written window.
func WritePlaylist(path string, body string) error {
	return renameio.WriteFile(path, []byte(body), 0o644)
}

package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pwllr/airwave/internal/hls"
)

// channelNamePattern keeps playlist paths inside the channel's own directory.
var channelNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

const playlistContentType = "application/vnd.apple.mpegurl"

// handlePlaylist reads the segmenter's playlist for a channel, trims it to
// the configured window and serves the rewritten body. The playlist start is
// taken from the first program date time stamp the segmenter wrote; segments
// after it get recomputed stamps.
func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")
	if !channelNamePattern.MatchString(channel) || strings.Trim(channel, ".") == "" {
		http.Error(w, "invalid channel name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.DataDir, channel, "live.m3u8")
	lines, err := hls.ReadPlaylistLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "channel not found", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Str("channel", channel).Msg("read playlist")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	playlistStart, ok := firstProgramDateTime(lines)
	if !ok {
		playlistStart = s.now()
	}

	result, err := hls.TrimPlaylist(playlistStart, time.Time{}, lines, s.cfg.PlaylistWindow, false)
	if err != nil {
		s.log.Error().Err(err).Str("channel", channel).Msg("trim playlist")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", playlistContentType)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(result.Playlist))
}

func firstProgramDateTime(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if strings.HasPrefix(line, "#EXT-X-PROGRAM-DATE-TIME:") {
			raw := strings.TrimPrefix(line, "#EXT-X-PROGRAM-DATE-TIME:")
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

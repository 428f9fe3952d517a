package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMediaFixture(t *testing.T) (MediaService, StorageService) {
	t.Helper()
	storage := NewStorageService(t.TempDir(), MediaFolders(nil)...)
	require.NoError(t, storage.EnsureUploadDirs())
	return NewMediaService(storage, nil, zap.NewNop()), storage
}

func TestMediaService_Upload(t *testing.T) {
	svc, storage := newMediaFixture(t)

	t.Run("audio routed to audio folder", func(t *testing.T) {
		result, err := svc.Upload("audio", "my song.mp3", strings.NewReader("id3"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(storage.Dir("audio"), "my_song.mp3"), result.Path)
		assert.Equal(t, "The file 'my_song.mp3' was processed successfully and saved in the folder 'audio'.", result.Message)

		data, err := os.ReadFile(result.Path)
		require.NoError(t, err)
		assert.Equal(t, "id3", string(data))
	})

	t.Run("same audio declared as video is rejected", func(t *testing.T) {
		_, err := svc.Upload("video", "my song.mp3", strings.NewReader("id3"))
		assert.ErrorIs(t, err, ErrUploadRejected)
	})

	t.Run("video and screen recording share allow-list", func(t *testing.T) {
		video, err := svc.Upload("video", "talk.MKV", strings.NewReader("v"))
		require.NoError(t, err)
		assert.Equal(t, "videos", video.Folder)

		screen, err := svc.Upload("video-audio", "talk.webm", strings.NewReader("v"))
		require.NoError(t, err)
		assert.Equal(t, "videos-audios", screen.Folder)
		assert.Equal(t, storage.Dir("videos-audios"), filepath.Dir(screen.Path))
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			uploadType string
			filename   string
		}{
			{uploadType: "audio", filename: "track.exe"},
			{uploadType: "podcast", filename: "track.mp3"},
			{uploadType: "", filename: "track.mp3"},
			{uploadType: "audio", filename: "noextension"},
			{uploadType: "audio", filename: "..."},
		}
		for _, tt := range tests {
			_, err := svc.Upload(tt.uploadType, tt.filename, strings.NewReader("x"))
			assert.ErrorIs(t, err, ErrUploadRejected, "%s/%s", tt.uploadType, tt.filename)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.Upload("audio", "", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrNoFile)

		_, err = svc.Upload("audio", "a.mp3", nil)
		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("traversal stays in folder", func(t *testing.T) {
		result, err := svc.Upload("audio", "../../evil.wav", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(storage.Dir("audio"), "evil.wav"), result.Path)
	})
}

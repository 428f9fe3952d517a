package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"
)

var (
	ErrNoFile         = errors.New("no file selected")
	ErrUploadRejected = errors.New("file type not allowed or wrong upload type")
)

var (
	audioExtensions = []string{"mp3", "wav", "ogg", "flac"}
	videoExtensions = []string{"mp4", "mov", "avi", "mkv", "webm"}
)

// MediaRoute maps a declared upload type to its folder and allow-list.
type MediaRoute struct {
	Folder     string
	Extensions []string
}

// DefaultMediaRoutes: screen recordings ("video-audio") share the video
// allow-list but land in their own folder.
var DefaultMediaRoutes = map[string]MediaRoute{
	"audio":       {Folder: "audio", Extensions: audioExtensions},
	"video":       {Folder: "videos", Extensions: videoExtensions},
	"video-audio": {Folder: "videos-audios", Extensions: videoExtensions},
}

type MediaResult struct {
	Filename string
	Folder   string
	Path     string
	Message  string
}

type MediaService interface {
	Upload(uploadType, filename string, src io.Reader) (*MediaResult, error)
}

type mediaService struct {
	storage StorageService
	routes  map[string]MediaRoute
	log     *zap.Logger
}

func NewMediaService(storage StorageService, routes map[string]MediaRoute, log *zap.Logger) MediaService {
	if routes == nil {
		routes = DefaultMediaRoutes
	}
	return &mediaService{
		storage: storage,
		routes:  routes,
		log:     log,
	}
}

// MediaFolders lists the storage subdirectories used by the routes.
func MediaFolders(routes map[string]MediaRoute) []string {
	if routes == nil {
		routes = DefaultMediaRoutes
	}
	folders := make([]string, 0, len(routes))
	for _, r := range routes {
		folders = append(folders, r.Folder)
	}
	return folders
}

func (s *mediaService) Upload(uploadType, filename string, src io.Reader) (*MediaResult, error) {
	if src == nil || filename == "" {
		return nil, ErrNoFile
	}

	name := SecureFilename(filename)
	if name == "" {
		return nil, ErrUploadRejected
	}

	route, ok := s.routes[uploadType]
	if !ok || !contains(route.Extensions, fileExtension(name)) {
		return nil, ErrUploadRejected
	}

	path, err := s.storage.SaveFile(route.Folder, name, src, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info("media file saved", zap.String("upload_type", uploadType), zap.String("path", path))

	folder := filepath.Base(route.Folder)
	return &MediaResult{
		Filename: name,
		Folder:   folder,
		Path:     path,
		Message:  fmt.Sprintf("The file '%s' was processed successfully and saved in the folder '%s'.", name, folder),
	}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

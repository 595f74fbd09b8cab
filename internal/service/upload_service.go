package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"bmxhive/internal/config"
	"bmxhive/internal/models"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	avatarSubdir = "avatars"
	videoSubdir  = "videos"

	defaultUploadDir       = "uploads"
	defaultMaxUploadSizeMB = 25

	avatarWebPQuality = 85
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".avi":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadInput carries a buffered multipart upload.
type UploadInput struct {
	UserID   uint
	Filename string
	Content  []byte
}

// UploadService writes avatar images and trick videos to the local upload
// directory and returns their public URL paths.
type UploadService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewUploadService creates a new UploadService from configuration.
func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := defaultUploadDir
	maxUploadSizeMB := defaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &UploadService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadDir returns the root directory uploads are written under.
func (s *UploadService) UploadDir() string {
	return s.uploadDir
}

// SaveAvatar stores an avatar image. The content is sniffed, not trusted
// from the filename. JPEG and PNG uploads are transcoded to WebP; GIFs are
// kept as uploaded so animations survive, WebP passes through.
func (s *UploadService) SaveAvatar(in UploadInput) (string, error) {
	if err := s.checkCommon(in); err != nil {
		return "", err
	}

	detectedType := http.DetectContentType(in.Content)
	switch detectedType {
	case "image/jpeg", "image/png":
		img, _, err := image.Decode(bytes.NewReader(in.Content))
		if err != nil {
			return "", models.NewValidationError("Avatar image could not be decoded")
		}
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Quality: avatarWebPQuality}); err != nil {
			return "", models.NewInternalError(err)
		}
		in.Content = buf.Bytes()
		ext := filepath.Ext(in.Filename)
		in.Filename = strings.TrimSuffix(in.Filename, ext) + ".webp"
	case "image/gif", "image/webp":
	default:
		return "", models.NewValidationError("Avatar must be a JPEG, PNG, GIF or WebP image")
	}

	return s.write(avatarSubdir, in)
}

// SaveTrickVideo stores a trick video. Video containers are not reliably
// sniffable, so the extension is checked instead.
func (s *UploadService) SaveTrickVideo(in UploadInput) (string, error) {
	if err := s.checkCommon(in); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedVideoExtensions[ext] {
		return "", models.NewValidationError("Video must be MP4, MOV, WebM or AVI")
	}

	return s.write(videoSubdir, in)
}

func (s *UploadService) checkCommon(in UploadInput) error {
	if in.UserID == 0 {
		return models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	return nil
}

// write persists the file as {userID}_{timestamp}_{name} under the subdir
// and returns the URL path it is served from.
func (s *UploadService) write(subdir string, in UploadInput) (string, error) {
	dir := filepath.Join(s.uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := sanitizeFilename(in.Filename)
	filename := fmt.Sprintf("%d_%d_%s", in.UserID, time.Now().UnixNano(), name)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, in.Content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

// sanitizeFilename strips path components and unsafe characters so the
// stored name is safe to join and serve.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	const maxLen = 100
	if len(name) > maxLen {
		name = name[len(name)-maxLen:]
	}
	return name
}

package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"yatube/apperrors"
	"yatube/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PostImageLocation = "posts"

// Storage keeps uploaded media, paths are relative to its root
type Storage interface {
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

// SavePostImage decodes the uploaded image, stores a thumbnail of it and
// returns the new storage path
func SavePostImage(s Storage, reader io.Reader, maxSize uint) (string, error) {
	thumb := bytes.Buffer{}
	converted, err := utils.CreateThumb(maxSize, reader, &thumb)
	if err != nil {
		utils.Logger.Debug("decoding image", zap.Error(err))
		return "", apperrors.Validation(map[string]string{"image": "Upload a valid image"})
	}
	path := PostImageLocation + "/" + uuid.NewString() + ".jpg"
	utils.Logger.Debug("post image",
		zap.String("path", path),
		zap.Uint16("width", converted.OldX), zap.Uint16("height", converted.OldY),
		zap.Uint16("thumb_width", converted.NewX), zap.Uint16("thumb_height", converted.NewY),
		zap.Int64("thumb_size", converted.ThumbSize))
	if _, err := s.Save(path, &thumb); err != nil {
		utils.Logger.Error("saving image", zap.String("path", path), zap.Error(err))
		return "", apperrors.Wrap(apperrors.ErrInternal, "could not store image", err)
	}
	return path, nil
}

// CleanPath rejects paths that would escape the storage root
func CleanPath(path string) (string, bool) {
	path = strings.TrimPrefix(path, "/")
	if path == "" || strings.Contains(path, "..") || strings.Contains(path, "\\") {
		return "", false
	}
	return path, true
}

// Package upload validates and stores admin image uploads
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is the per-file upload limit
	MaxFileSize int64 = 5 << 20

	// MaxFiles is the most files accepted by a multiple upload
	MaxFiles = 10
)

var allowedTypes = regexp.MustCompile(`jpeg|jpg|png|gif|webp|svg`)

var (
	ErrNotImage        = errors.New("Only image files are allowed (jpeg, jpg, png, gif, webp, svg)")
	ErrTooLarge        = errors.New("File too large. Maximum size is 5MB")
	ErrTooManyFiles    = fmt.Errorf("Too many files. Maximum is %d", MaxFiles)
	ErrNotFound        = errors.New("image not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

// Image describes a stored upload as returned to clients
type Image struct {
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	Size         int64     `json:"size"`
	Mimetype     string    `json:"mimetype"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Object is a stored file as seen by a Storage backend
type Object struct {
	Name         string
	Size         int64
	ContentType  string
	OriginalName string
	ModTime      time.Time
}

// Storage is where accepted images end up
type Storage interface {
	Save(ctx context.Context, obj Object, r io.Reader) error
	List(ctx context.Context) ([]Object, error)
	Delete(ctx context.Context, name string) error
}

// Uploader applies the image rules before handing files to a Storage
type Uploader struct {
	store   Storage
	baseURL string
	maxSize int64
	now     func() time.Time
	newID   func() string
}

// NewUploader creates an uploader publishing files under baseURL
func NewUploader(store Storage, baseURL string, maxSize int64) *Uploader {
	if baseURL == "" {
		baseURL = "/uploads"
	}
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	return &Uploader{
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		maxSize: maxSize,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// MaxSize is the per-file limit this uploader enforces
func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

// Validate checks size, extension and declared content type
func (u *Uploader) Validate(fh *multipart.FileHeader) error {
	if fh.Size > u.maxSize {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedTypes.MatchString(ext) || !allowedTypes.MatchString(fh.Header.Get("Content-Type")) {
		return ErrNotImage
	}
	return nil
}

// Save validates and stores one file received in the given form field
func (u *Uploader) Save(ctx context.Context, field string, fh *multipart.FileHeader) (Image, error) {
	if err := u.Validate(fh); err != nil {
		return Image{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return Image{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	obj := Object{
		Name:         field + "-" + u.newID() + strings.ToLower(filepath.Ext(fh.Filename)),
		Size:         fh.Size,
		ContentType:  fh.Header.Get("Content-Type"),
		OriginalName: fh.Filename,
		ModTime:      u.now().UTC(),
	}
	if err := u.store.Save(ctx, obj, io.LimitReader(f, u.maxSize+1)); err != nil {
		return Image{}, fmt.Errorf("store upload %s: %w", fh.Filename, err)
	}
	return u.image(obj), nil
}

// SaveAll validates every file before storing any of them
func (u *Uploader) SaveAll(ctx context.Context, field string, files []*multipart.FileHeader) ([]Image, error) {
	if len(files) > MaxFiles {
		return nil, ErrTooManyFiles
	}
	for _, fh := range files {
		if err := u.Validate(fh); err != nil {
			return nil, err
		}
	}

	images := make([]Image, 0, len(files))
	for _, fh := range files {
		img, err := u.Save(ctx, field, fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// List returns the stored images, newest first
func (u *Uploader) List(ctx context.Context) ([]Image, error) {
	objects, err := u.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	images := make([]Image, 0, len(objects))
	for _, obj := range objects {
		if !allowedTypes.MatchString(strings.ToLower(path.Ext(obj.Name))) {
			continue
		}
		images = append(images, u.image(obj))
	}
	slices.SortStableFunc(images, func(a, b Image) int {
		return b.UploadedAt.Compare(a.UploadedAt)
	})
	return images, nil
}

// Delete removes one stored image by its generated filename
func (u *Uploader) Delete(ctx context.Context, filename string) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	return u.store.Delete(ctx, filename)
}

// ValidateFilename rejects names that could address anything outside the
// upload root
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return ErrInvalidFilename
	}
	return nil
}

func (u *Uploader) image(obj Object) Image {
	contentType := obj.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(obj.Name)))
	}
	return Image{
		URL:          u.baseURL + "/" + obj.Name,
		Filename:     obj.Name,
		OriginalName: obj.OriginalName,
		Size:         obj.Size,
		Mimetype:     contentType,
		UploadedAt:   obj.ModTime,
	}
}

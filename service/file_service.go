package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"unicode/utf8"

	"github.com/tranvd/ragchat-be/types"
	"github.com/tranvd/ragchat-be/utils"
)

// MaxFileSize is the per-file ceiling for uploads
const MaxFileSize = 10 << 20 // 10 MiB

var (
	ErrSizeLimitExceeded = errors.New("file size limit exceeded")
	ErrReadFailure       = errors.New("file read failed")
)

// FileService classifies and transcodes uploaded files into
// transport-ready attachments
type FileService struct {
	maxFileSize int64
}

func NewFileService() *FileService {
	return &FileService{
		maxFileSize: MaxFileSize,
	}
}

// ProcessFile converts a single upload into an attachment. Files over
// the size ceiling are rejected before any read. Classification runs
// declared MIME type first, then the extension table; a text-classified
// file whose bytes do not decode as text falls back to base64 with
// IsText set.
func (s *FileService) ProcessFile(upload types.FileUpload) (types.Attachment, error) {
	if upload.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MiB",
			ErrSizeLimitExceeded, upload.Name, s.maxFileSize>>20)
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = utils.MimeTypeByExtension(upload.Name)
	}
	// extension classification is an OR-fallback: a text-like extension
	// wins even when the declared MIME type looks binary
	isText := utils.IsTextMimeType(mimeType) || utils.IsTextExtension(upload.Name)

	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailure, upload.Name, err)
	}

	if isText {
		if utf8.Valid(data) {
			return types.TextAttachment{
				Type:    types.AttachmentTypeText,
				Name:    upload.Name,
				Content: string(data),
			}, nil
		}
		// textual content that could not be decoded travels as base64
		return types.BinaryAttachment{
			Type:     types.AttachmentTypeFile,
			Name:     upload.Name,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Content:  base64.StdEncoding.EncodeToString(data),
			IsText:   true,
		}, nil
	}

	return types.BinaryAttachment{
		Type:     types.AttachmentTypeFile,
		Name:     upload.Name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Content:  base64.StdEncoding.EncodeToString(data),
		IsText:   false,
	}, nil
}

// ProcessFiles runs a batch of uploads independently. A failure on one
// file never aborts the others; successes and failures are collected
// separately.
func (s *FileService) ProcessFiles(uploads []types.FileUpload) ([]types.Attachment, []error) {
	var attachments []types.Attachment
	var failures []error
	for _, upload := range uploads {
		attachment, err := s.ProcessFile(upload)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		attachments = append(attachments, attachment)
	}
	return attachments, failures
}

// ProcessMultipart adapts a multipart file header into an upload and
// processes it
func (s *FileService) ProcessMultipart(header *multipart.FileHeader) (types.Attachment, error) {
	if header.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MiB",
			ErrSizeLimitExceeded, header.Filename, s.maxFileSize>>20)
	}
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailure, header.Filename, err)
	}
	defer src.Close()

	return s.ProcessFile(types.FileUpload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Reader:   src,
	})
}

package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranvd/ragchat-be/types"
)

// mustNotRead fails the test if anything tries to read from it
type mustNotRead struct {
	t *testing.T
}

func (r mustNotRead) Read([]byte) (int, error) {
	r.t.Fatal("reader must not be touched")
	return 0, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken handle")
}

func TestProcessFileTextRoundTrip(t *testing.T) {
	s := NewFileService()
	content := "package main\n\nfunc main() {}\n"

	attachment, err := s.ProcessFile(types.FileUpload{
		Name:     "main.go",
		MimeType: "text/x-go",
		Size:     int64(len(content)),
		Reader:   strings.NewReader(content),
	})
	require.NoError(t, err)

	text, ok := attachment.(types.TextAttachment)
	require.True(t, ok, "expected a text attachment, got %T", attachment)
	assert.Equal(t, types.AttachmentTypeText, text.Type)
	assert.Equal(t, "main.go", text.Name)
	assert.Equal(t, content, text.Content)
}

func TestProcessFileBinaryRoundTrip(t *testing.T) {
	s := NewFileService()
	payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x01, 0x02}

	attachment, err := s.ProcessFile(types.FileUpload{
		Name:     "image.png",
		MimeType: "image/png",
		Size:     int64(len(payload)),
		Reader:   bytes.NewReader(payload),
	})
	require.NoError(t, err)

	binary, ok := attachment.(types.BinaryAttachment)
	require.True(t, ok, "expected a binary attachment, got %T", attachment)
	assert.Equal(t, types.AttachmentTypeFile, binary.Type)
	assert.Equal(t, "image/png", binary.MimeType)
	assert.Equal(t, int64(len(payload)), binary.Size)
	assert.False(t, binary.IsText)

	decoded, err := base64.StdEncoding.DecodeString(binary.Content)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestProcessFileSizeLimit(t *testing.T) {
	s := NewFileService()

	_, err := s.ProcessFile(types.FileUpload{
		Name:   "huge.bin",
		Size:   MaxFileSize + 1,
		Reader: mustNotRead{t: t},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSizeLimitExceeded)
	assert.Contains(t, err.Error(), "huge.bin")
	assert.Contains(t, err.Error(), "10 MiB")
}

func TestProcessFileAtSizeLimit(t *testing.T) {
	s := NewFileService()

	// exactly at the ceiling passes
	attachment, err := s.ProcessFile(types.FileUpload{
		Name:     "edge.txt",
		MimeType: "text/plain",
		Size:     MaxFileSize,
		Reader:   strings.NewReader("small actual body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "edge.txt", attachment.FileName())
}

func TestProcessFileMimeFromExtension(t *testing.T) {
	s := NewFileService()

	attachment, err := s.ProcessFile(types.FileUpload{
		Name:   "notes.md",
		Size:   5,
		Reader: strings.NewReader("hello"),
	})
	require.NoError(t, err)
	_, ok := attachment.(types.TextAttachment)
	assert.True(t, ok, "markdown resolved from extension should be text")
}

func TestProcessFileExtensionOverridesBinaryMime(t *testing.T) {
	s := NewFileService()

	// a text-like extension wins even when the declared type is opaque
	attachment, err := s.ProcessFile(types.FileUpload{
		Name:     "data.txt",
		MimeType: "application/octet-stream",
		Size:     5,
		Reader:   strings.NewReader("hello"),
	})
	require.NoError(t, err)
	_, ok := attachment.(types.TextAttachment)
	assert.True(t, ok)
}

func TestProcessFileTextDecodeFallback(t *testing.T) {
	s := NewFileService()
	invalid := []byte{0xFF, 0xFE, 0x00, 0x41, 0xC3}

	attachment, err := s.ProcessFile(types.FileUpload{
		Name:     "latin.txt",
		MimeType: "text/plain",
		Size:     int64(len(invalid)),
		Reader:   bytes.NewReader(invalid),
	})
	require.NoError(t, err)

	binary, ok := attachment.(types.BinaryAttachment)
	require.True(t, ok, "undecodable text should fall back to base64")
	assert.True(t, binary.IsText, "fallback keeps the text classification visible")

	decoded, err := base64.StdEncoding.DecodeString(binary.Content)
	require.NoError(t, err)
	assert.Equal(t, invalid, decoded)
}

func TestProcessFileUnknownExtensionIsBinary(t *testing.T) {
	s := NewFileService()

	attachment, err := s.ProcessFile(types.FileUpload{
		Name:   "mystery.xyz",
		Size:   3,
		Reader: bytes.NewReader([]byte{1, 2, 3}),
	})
	require.NoError(t, err)

	binary, ok := attachment.(types.BinaryAttachment)
	require.True(t, ok)
	assert.Equal(t, "application/octet-stream", binary.MimeType)
	assert.False(t, binary.IsText)
}

func TestProcessFileReadFailure(t *testing.T) {
	s := NewFileService()

	_, err := s.ProcessFile(types.FileUpload{
		Name:   "broken.txt",
		Size:   10,
		Reader: failingReader{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadFailure)
	assert.Contains(t, err.Error(), "broken.txt")
	assert.Contains(t, err.Error(), "broken handle")
}

func TestProcessFilesPartialFailure(t *testing.T) {
	s := NewFileService()

	uploads := []types.FileUpload{
		{Name: "ok.txt", MimeType: "text/plain", Size: 2, Reader: strings.NewReader("ok")},
		{Name: "huge.bin", Size: MaxFileSize + 1, Reader: bytes.NewReader(nil)},
		{Name: "also-ok.txt", MimeType: "text/plain", Size: 4, Reader: strings.NewReader("fine")},
	}

	attachments, failures := s.ProcessFiles(uploads)
	require.Len(t, attachments, 2, "a failing file must not abort its siblings")
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrSizeLimitExceeded)
	assert.Equal(t, "ok.txt", attachments[0].FileName())
	assert.Equal(t, "also-ok.txt", attachments[1].FileName())
}

func TestProcessFilesAllFail(t *testing.T) {
	s := NewFileService()

	uploads := []types.FileUpload{
		{Name: "a.bin", Size: MaxFileSize + 1, Reader: bytes.NewReader(nil)},
		{Name: "b.bin", Size: MaxFileSize + 1, Reader: bytes.NewReader(nil)},
	}

	attachments, failures := s.ProcessFiles(uploads)
	assert.Empty(t, attachments)
	assert.Len(t, failures, 2)
}

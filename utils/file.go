package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// mimeByExtension maps common file extensions to MIME types. Unknown
// extensions resolve to application/octet-stream.
var mimeByExtension = map[string]string{
	// programming languages
	".go":    "text/x-go",
	".py":    "text/x-python",
	".js":    "text/javascript",
	".jsx":   "text/javascript",
	".ts":    "text/typescript",
	".tsx":   "text/typescript",
	".java":  "text/x-java-source",
	".c":     "text/x-c",
	".h":     "text/x-c",
	".cpp":   "text/x-c++",
	".cs":    "text/x-csharp",
	".rb":    "text/x-ruby",
	".rs":    "text/x-rust",
	".php":   "application/x-php",
	".sh":    "application/x-sh",
	".swift": "text/x-swift",
	".kt":    "text/x-kotlin",
	".sql":   "application/sql",

	// markup and config
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".xml":  "application/xml",
	".json": "application/json",
	".yaml": "application/x-yaml",
	".yml":  "application/x-yaml",
	".toml": "application/toml",
	".ini":  "text/plain",
	".env":  "text/plain",
	".log":  "text/plain",

	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".ico":  "image/x-icon",

	// documents
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rtf":  "application/rtf",

	// archives
	".zip": "application/zip",
	".tar": "application/x-tar",
	".gz":  "application/gzip",
	".rar": "application/vnd.rar",
	".7z":  "application/x-7z-compressed",

	// media
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
}

// textMimePatterns are application/* subtypes treated as text in addition
// to the text/* prefix.
var textMimePatterns = []string{
	"application/json",
	"application/xml",
	"application/x-yaml",
	"application/toml",
	"application/sql",
	"application/x-sh",
	"application/x-php",
	"application/javascript",
	"application/rtf",
}

// textExtensions is the extension allow-list for text classification.
// A file with one of these extensions is treated as text even when its
// declared MIME type looks binary.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".log": true,
	".csv": true, ".tsv": true, ".json": true, ".xml": true,
	".yaml": true, ".yml": true, ".toml": true, ".ini": true, ".env": true,
	".html": true, ".htm": true, ".css": true,
	".go": true, ".py": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".java": true, ".c": true, ".h": true, ".cpp": true,
	".cs": true, ".rb": true, ".rs": true, ".php": true, ".sh": true,
	".swift": true, ".kt": true, ".sql": true,
}

// MimeTypeByExtension resolves a MIME type from a filename extension
func MimeTypeByExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsTextMimeType reports whether a MIME type describes textual content
func IsTextMimeType(mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	for _, pattern := range textMimePatterns {
		if strings.HasPrefix(mimeType, pattern) {
			return true
		}
	}
	return false
}

// IsTextExtension reports whether a filename carries a text extension
func IsTextExtension(filename string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FormatFileSize renders a byte count using binary (1024) multiples
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[unit])
}

// GetFileCategory maps a MIME type to a display category. Matching is
// evaluated in a fixed priority order.
func GetFileCategory(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "Image"
	case strings.HasPrefix(mimeType, "video/"):
		return "Video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "Audio"
	case strings.HasPrefix(mimeType, "text/"):
		return "Text"
	case strings.Contains(mimeType, "pdf"):
		return "PDF"
	case strings.Contains(mimeType, "word") || strings.Contains(mimeType, "document"):
		return "Document"
	case strings.Contains(mimeType, "sheet") || strings.Contains(mimeType, "excel"):
		return "Spreadsheet"
	case strings.Contains(mimeType, "presentation") || strings.Contains(mimeType, "powerpoint"):
		return "Presentation"
	case strings.Contains(mimeType, "zip") || strings.Contains(mimeType, "tar") ||
		strings.Contains(mimeType, "compressed") || strings.Contains(mimeType, "archive"):
		return "Archive"
	default:
		return "File"
	}
}

package handlers

import (
	"path/filepath"
	"strings"
)

// determineMimeType derives a MIME type from the filename extension,
// falling back to what the client reported. Browsers are unreliable about
// Content-Type on multipart file parts.
func determineMimeType(filename, headerType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md", ".csv", ".log":
		return "text/plain"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".webm":
		return "audio/webm"
	case ".m4a":
		return "audio/mp4"
	}

	if headerType != "" {
		return headerType
	}
	return "application/octet-stream"
}

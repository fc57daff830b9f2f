// Package extractor turns uploaded files into prompt-ready text. It never
// fails for unsupported types; those produce an explanatory note instead.
package extractor

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/utils"
)

const (
	mimePDF  = "application/pdf"
	mimeText = "text/plain"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Extractor struct {
	logger *utils.Logger
}

func New(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads one uploaded file from the transient store and produces its
// prompt representation. The file itself is not deleted here; the store
// releases it when the request ends.
//
// withPayload asks for the base64 image payload used by the vision path;
// the general chat path carries only the templated note.
func (e *Extractor) Extract(file models.UploadedFile, withPayload bool) (models.ExtractedContent, error) {
	data, err := os.ReadFile(file.TemporaryPath)
	if err != nil {
		return models.ExtractedContent{}, fmt.Errorf("reading %s: %w", file.OriginalName, err)
	}

	ec := models.ExtractedContent{SourceFile: file}

	switch {
	case strings.HasPrefix(file.MimeType, "image/"):
		ec.Kind = models.KindImage
		ec.RenderedText = imageNote(file.OriginalName)
		if withPayload {
			ec.EncodedPayload = base64.StdEncoding.EncodeToString(data)
		}

	case file.MimeType == mimePDF:
		ec.Kind = models.KindPDF
		text, err := ExtractPDF(data)
		if err != nil {
			// Extraction is best effort; the templated note stands in
			// whenever the PDF yields no text.
			e.logger.Warn("PDF text extraction failed, using placeholder",
				"filename", file.OriginalName, "error", err)
			ec.RenderedText = pdfNote(file.OriginalName)
		} else {
			ec.RenderedText = textNote(file.OriginalName, text)
		}

	case file.MimeType == mimeDOCX || file.MimeType == mimeDOC:
		text, err := ExtractDOCX(data)
		if err != nil {
			e.logger.Warn("DOCX text extraction failed",
				"filename", file.OriginalName, "error", err)
			ec.Kind = models.KindUnsupported
			ec.RenderedText = unsupportedNote(file.OriginalName, file.MimeType)
		} else {
			ec.Kind = models.KindText
			ec.RenderedText = textNote(file.OriginalName, text)
		}

	case isTextMime(file.MimeType):
		ec.Kind = models.KindText
		text, err := ExtractTXT(data)
		if err != nil {
			return models.ExtractedContent{}, fmt.Errorf("decoding %s: %w", file.OriginalName, err)
		}
		ec.RenderedText = textNote(file.OriginalName, text)

	default:
		ec.Kind = models.KindUnsupported
		ec.RenderedText = unsupportedNote(file.OriginalName, file.MimeType)
	}

	return ec, nil
}

func isTextMime(mimeType string) bool {
	return mimeType == mimeText || strings.HasPrefix(mimeType, "text/")
}

func textNote(name, content string) string {
	return fmt.Sprintf("\nFile: %s\nContent: %s\n", name, content)
}

func imageNote(name string) string {
	return fmt.Sprintf("\nFile: %s\nType: Medical Image/Scan\n"+
		"[This is a medical image that the user has uploaded for analysis. "+
		"Please provide general guidance about analyzing such images and what information "+
		"might be relevant from %s.]", name, name)
}

func pdfNote(name string) string {
	return fmt.Sprintf("\nFile: %s\nType: PDF Document\n"+
		"[This is a PDF document that may contain medical information. "+
		"Please provide guidance on how to interpret the information in this document.]", name)
}

func unsupportedNote(name, mimeType string) string {
	return fmt.Sprintf("\nFile: %s\n[Unsupported file type %q. "+
		"The contents of this file could not be included.]\n", name, mimeType)
}

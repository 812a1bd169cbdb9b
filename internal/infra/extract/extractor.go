package extract

import (
	"bytes"
	"fmt"
	"mime"

	"code.sajari.com/docconv"

	"github.com/bryanwahyu/clausecheck/internal/domain/review"
)

const (
	mimeText = "text/plain"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF  = "application/pdf"
)

// Extractor converts an uploaded document into plain text, dispatching
// strictly on the declared MIME type. The payload is never content-sniffed
// and no size limit is enforced here.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(doc review.Document) (string, error) {
	mediaType := doc.ContentType
	if mt, _, err := mime.ParseMediaType(doc.ContentType); err == nil {
		mediaType = mt
	}

	switch mediaType {
	case mimeText:
		if doc.Data == nil {
			return "", fmt.Errorf("%w: no file data", review.ErrReadFailed)
		}
		return string(doc.Data), nil

	case mimeDocx:
		// docconv strips formatting and returns the raw text; a corrupted
		// archive surfaces as an unsupported-format error.
		text, _, err := docconv.ConvertDocx(bytes.NewReader(doc.Data))
		if err != nil {
			return "", fmt.Errorf("%w: %v", review.ErrUnsupportedFormat, err)
		}
		return text, nil

	case mimePDF:
		return "", review.ErrPDFNotSupported

	default:
		return "", fmt.Errorf("%w: %s", review.ErrUnsupportedFormat, mediaType)
	}
}

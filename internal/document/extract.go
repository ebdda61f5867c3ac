package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	pdf "github.com/dslipak/pdf"
	"github.com/gabriel-vasile/mimetype"
	"github.com/josinaldojr/finwise-advisor/internal/rag"
)

// MaxFileSize bounds uploads.
const MaxFileSize = 10 << 20

var (
	ErrFileTooLarge      = errors.New("file exceeds the 10MB limit")
	ErrUnsupportedFormat = errors.New("unsupported format: upload PDF, JPG, PNG, TXT or HTML files")
	ErrEmptyFile         = errors.New("file has no readable content")
)

type Kind string

const (
	KindText  Kind = "text"
	KindHTML  Kind = "html"
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

var kindsByExt = map[string]Kind{
	".txt":  KindText,
	".html": KindHTML,
	".htm":  KindHTML,
	".pdf":  KindPDF,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
}

// Extracted is an upload ready for the model. Text is set when the content
// could be read locally; otherwise Data carries the raw bytes to send inline.
type Extracted struct {
	Name     string
	Kind     Kind
	MIMEType string
	Text     string
	Data     []byte
}

// Inline reports whether the bytes have to travel with the prompt.
func (e Extracted) Inline() bool {
	return e.Text == "" && len(e.Data) > 0
}

// Extract validates an upload by extension and sniffed content type and pulls
// out its text.
func Extract(name string, data []byte) (Extracted, error) {
	kind, ok := kindsByExt[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return Extracted{}, ErrUnsupportedFormat
	}
	if len(data) > MaxFileSize {
		return Extracted{}, ErrFileTooLarge
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Extracted{}, ErrEmptyFile
	}

	mt := mimetype.Detect(data)
	if !matches(kind, mt) {
		return Extracted{}, fmt.Errorf("%w: %s content in a %s file", ErrUnsupportedFormat, mt.String(), filepath.Ext(name))
	}

	// the sniffed type only matters for content sent inline
	out := Extracted{Name: name, Kind: kind, MIMEType: baseType(mt.String())}
	switch kind {
	case KindText:
		out.MIMEType = "text/plain"
		out.Text = rag.SanitizeUTF8(strings.TrimSpace(string(data)))
	case KindHTML:
		out.MIMEType = "text/html"
		out.Text = rag.SanitizeUTF8(ExtractMainText(string(data)))
	case KindPDF:
		text, err := PDFText(data)
		if err != nil || text == "" {
			// scanned or unreadable PDFs are left to the model
			out.Data = data
			return out, nil
		}
		out.Text = text
	case KindImage:
		out.Data = data
		return out, nil
	}

	if out.Text == "" {
		return Extracted{}, ErrEmptyFile
	}
	return out, nil
}

// PDFText returns the plain text layer of a PDF.
func PDFText(data []byte) (text string, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return rag.SanitizeUTF8(strings.TrimSpace(buf.String())), nil
}

func matches(kind Kind, mt *mimetype.MIME) bool {
	switch kind {
	case KindPDF:
		return mt.Is("application/pdf")
	case KindImage:
		return mimetype.EqualsAny(mt.String(), "image/jpeg", "image/png")
	default:
		for m := mt; m != nil; m = m.Parent() {
			if m.Is("text/plain") {
				return true
			}
		}
		return false
	}
}

func baseType(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		return strings.TrimSpace(m[:i])
	}
	return m
}

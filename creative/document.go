package creative

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/forgeads/forgeads"
)

// DocumentExtractor extracts uploaded PDF and plain text documents.
type DocumentExtractor struct {
	Converter forgeads.PDFConverter
}

// ExtractDocument extracts data declared as mimeType.
//
// PDFs are converted to text and structured; a conversion failure or a
// result shorter than forgeads.MinDocumentTextLength is an EINSUFFICIENT
// error. Plain text becomes the full text of the content. Other types are
// rejected with EINVALID.
func (d *DocumentExtractor) ExtractDocument(ctx context.Context, data []byte, mimeType string) (*forgeads.ExtractedContent, error) {
	switch {
	case forgeads.IsPDF(mimeType):
		return d.extractPDF(ctx, data)
	case forgeads.IsPlainText(mimeType):
		return forgeads.NewTextContent(string(decodeBase64(data, false))), nil
	default:
		return nil, forgeads.Errorf(forgeads.EINVALID, "Tipo de arquivo não suportado: %s. Envie um PDF ou arquivo de texto.", mimeType)
	}
}

func (d *DocumentExtractor) extractPDF(ctx context.Context, data []byte) (*forgeads.ExtractedContent, error) {
	pdf := decodeBase64(data, true)

	text, err := d.Converter.ConvertPDF(ctx, pdf)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		} else if forgeads.ErrorCode(err) == forgeads.EINVALID {
			return nil, err
		}
		return nil, forgeads.Errorf(forgeads.EINSUFFICIENT, "%s", PDFUnreadableMessage)
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < forgeads.MinDocumentTextLength {
		return nil, forgeads.Errorf(forgeads.EINSUFFICIENT, "%s", PDFTooShortMessage)
	}
	return forgeads.StructureDocumentText(text), nil
}

var pdfMagic = []byte("%PDF")

// decodeBase64 returns the decoded form of base64 transported data, with
// an optional data URL prefix, or data itself when it is not base64. For
// PDFs the raw form is recognized by its magic number.
func decodeBase64(data []byte, pdf bool) []byte {
	if pdf && bytes.HasPrefix(data, pdfMagic) {
		return data
	}

	s := strings.TrimSpace(string(data))
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	} else if !pdf {
		return data
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return data
	}
	return decoded
}

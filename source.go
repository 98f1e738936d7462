package forgeads

import (
	"net/url"
	"strings"
)

// SourceType identifies where analyzed content came from.
type SourceType string

// Source types.
const (
	SourceLink SourceType = "link"
	SourcePDF  SourceType = "pdf"
	SourceFile SourceType = "file"
)

// Source is the raw input of one pipeline run: either a page URL or an
// uploaded document.
type Source struct {
	URL string `json:"url,omitempty"`

	// Data holds the document bytes, or base64 text of a PDF.
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	FileName string `json:"fileName,omitempty"`

	// Objective the generated copy is written for. Defaults to ObjectiveSales.
	Objective Objective `json:"objective,omitempty"`
}

// Type returns the source type derived from the source fields.
func (s *Source) Type() SourceType {
	if s.URL != "" {
		return SourceLink
	} else if IsPDF(s.MIMEType) {
		return SourcePDF
	}
	return SourceFile
}

// Validate returns an error if the source is missing or malformed.
func (s *Source) Validate() error {
	if s.URL == "" && len(s.Data) == 0 {
		return Errorf(EINVALID, "Informe uma URL ou envie um arquivo.")
	} else if s.URL != "" && len(s.Data) > 0 {
		return Errorf(EINVALID, "Informe apenas uma URL ou um arquivo, não ambos.")
	}

	if s.URL != "" {
		if err := ValidateURL(s.URL); err != nil {
			return err
		}
	} else if s.MIMEType == "" {
		return Errorf(EINVALID, "Tipo do arquivo é obrigatório.")
	}

	if s.Objective != "" {
		return s.Objective.Validate()
	}
	return nil
}

// ObjectiveOrDefault returns the source objective or ObjectiveSales.
func (s *Source) ObjectiveOrDefault() Objective {
	if s.Objective == "" {
		return ObjectiveSales
	}
	return s.Objective
}

// ValidateURL returns EINVALID unless rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "URL inválida. Use http:// ou https://")
	}
	return nil
}

// IsPDF reports whether mimeType declares a PDF document.
func IsPDF(mimeType string) bool {
	return strings.Contains(strings.ToLower(mimeType), "pdf")
}

// IsPlainText reports whether mimeType declares a text document.
func IsPlainText(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "text/")
}

package domain

import (
	"path"
	"sort"
	"strings"
)

// Metadata keys attached to stored document objects
const (
	MetadataKeyDocumentType  = "document_type"
	MetadataKeyCreditScore   = "credit_score"
	MetadataKeyMonthlyIncome = "monthly_income"
	MetadataKeyReferences    = "references"
)

// Well-known document categories used for metric extraction
const (
	DocTypeCreditScore        = "credit score"
	DocTypeIncomeVerification = "income verification"
	DocTypeReferences         = "references"
)

// FileInfo describes one stored tenant document.
type FileInfo struct {
	Key      string            `json:"key"`
	Name     string            `json:"name"`
	Size     int64             `json:"size"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DocType returns the document's normalized category, or "" if untyped.
func (f FileInfo) DocType() string {
	return NormalizeDocType(f.Metadata[MetadataKeyDocumentType])
}

// NormalizeDocType lower-cases, trims, and replaces underscores with spaces.
// This is the canonical form used everywhere a category is compared.
func NormalizeDocType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	return strings.ReplaceAll(t, "_", " ")
}

// SameDocType reports whether two category labels match after normalization.
func SameDocType(a, b string) bool {
	return NormalizeDocType(a) == NormalizeDocType(b)
}

// Categories returns the distinct normalized document types present in files,
// sorted for stable selection menus. Untyped documents are excluded.
func Categories(files []FileInfo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range files {
		t := f.DocType()
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Kind classifies a document for the viewer.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
	KindText  Kind = "text"
	KindOther Kind = "other"
)

// FileKind determines the viewer kind from a file name.
func FileKind(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return KindImage
	case ".txt", ".md", ".markdown", ".csv", ".log":
		return KindText
	default:
		return KindOther
	}
}

// IsTextFile reports whether a document can be fed to the language model as
// prompt text.
func IsTextFile(name string) bool {
	return FileKind(name) == KindText
}

// DocumentView is what the viewer needs to render one document: inline text
// content for text files, a time-limited URL for everything else.
type DocumentView struct {
	Key      string `json:"key"`
	Kind     Kind   `json:"kind"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	URL      string `json:"url,omitempty"`
}

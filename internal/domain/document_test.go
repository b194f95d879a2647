package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDocType(t *testing.T) {
	assert.Equal(t, "credit score", NormalizeDocType("Credit_Score"))
	assert.Equal(t, "income verification", NormalizeDocType("  Income Verification "))
	assert.Equal(t, "", NormalizeDocType(""))
}

func TestSameDocType(t *testing.T) {
	assert.True(t, SameDocType("Credit_Score", "credit score"))
	assert.True(t, SameDocType("REFERENCES", "references"))
	assert.False(t, SameDocType("income", "income verification"))
}

func TestCategories(t *testing.T) {
	files := []FileInfo{
		{Key: "a", Metadata: map[string]string{MetadataKeyDocumentType: "Credit_Score"}},
		{Key: "b", Metadata: map[string]string{MetadataKeyDocumentType: "credit score"}},
		{Key: "c", Metadata: map[string]string{MetadataKeyDocumentType: "references"}},
		{Key: "d"}, // untyped, excluded
	}
	assert.Equal(t, []string{"credit score", "references"}, Categories(files))
}

func TestCategoriesEmpty(t *testing.T) {
	assert.Empty(t, Categories(nil))
}

func TestFileKind(t *testing.T) {
	assert.Equal(t, KindPDF, FileKind("lease.PDF"))
	assert.Equal(t, KindImage, FileKind("id.jpeg"))
	assert.Equal(t, KindText, FileKind("paystub.txt"))
	assert.Equal(t, KindOther, FileKind("archive.zip"))
}

func TestIsTextFile(t *testing.T) {
	assert.True(t, IsTextFile("notes.md"))
	assert.False(t, IsTextFile("photo.png"))
}

func TestTenantNames(t *testing.T) {
	assert.Equal(t, "Jane Doe", TenantDisplayName("Jane_Doe"))
	assert.Equal(t, "Jane_Doe", TenantKeyName("Jane Doe"))
}

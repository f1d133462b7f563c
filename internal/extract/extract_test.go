package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParsePlainText(t *testing.T) {
	text, err := Parse(context.Background(), []byte("Jane Doe\n\n\n\nSenior Engineer  \n"), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("parse plain text: %v", err)
	}
	if text != "Jane Doe\n\nSenior Engineer" {
		t.Fatalf("unexpected cleaned text: %q", text)
	}
}

func TestParseDocxFromZipMime(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Led the platform team</w:t></w:r></w:p></w:body></w:document>`)

	text, err := Parse(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to parse from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Led the platform team") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Parse(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Kind != KindUnsupportedFormat {
		t.Fatalf("expected unsupported_format, got %s", parseErr.Kind)
	}
}

func TestParseEmptyContent(t *testing.T) {
	_, err := Parse(context.Background(), nil, "application/pdf", "resume.pdf")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != KindEmptyContent {
		t.Fatalf("expected empty_content, got %v", err)
	}

	_, err = Parse(context.Background(), []byte("   \n\t "), "text/plain", "resume.txt")
	if !errors.As(err, &parseErr) || parseErr.Kind != KindEmptyContent {
		t.Fatalf("expected empty_content for whitespace-only text, got %v", err)
	}
}

func TestParseOversize(t *testing.T) {
	data := make([]byte, MaxDocumentBytes+1)
	_, err := Parse(context.Background(), data, "text/plain", "big.txt")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != KindOversize {
		t.Fatalf("expected oversize, got %v", err)
	}
}

func TestParseCorruptDocx(t *testing.T) {
	// Claims to be a docx but isn't a zip archive at all.
	_, err := Parse(context.Background(), []byte("not a zip"), mimeDOCX, "resume.docx")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != KindCorrupt {
		t.Fatalf("expected corrupt, got %v", err)
	}
}

func TestParseMimeFallsBackToExtension(t *testing.T) {
	text, err := Parse(context.Background(), []byte("plain body"), "", "resume.txt")
	if err != nil {
		t.Fatalf("parse with empty mime: %v", err)
	}
	if text != "plain body" {
		t.Fatalf("unexpected text: %q", text)
	}
}

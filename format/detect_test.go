package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, ".docx"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"test-quiz.docx", DOCX},
		{"TEST-QUIZ.DOCX", DOCX},
		{"/path/to/preview.html", HTML},
		{"preview.htm", HTML},
		{"document.doc", Unknown},
		{"document.pdf", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"too short", []byte("PK"), Unknown},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"doctype", []byte("<!DOCTYPE html><html></html>"), HTML},
		{"html tag with whitespace", []byte("\n  <html lang=\"zh\">"), HTML},
		{"xhtml", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml">`), HTML},
		{"plain xml", []byte(`<?xml version="1.0"?><root/>`), Unknown},
		{"text", []byte("hello world"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte("<x/>"))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectFromReader_DOCX(t *testing.T) {
	data := zipWith(t, "[Content_Types].xml", "_rels/.rels", "word/document.xml")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != DOCX {
		t.Errorf("DetectFromReader() = %v, want DOCX", got)
	}
}

func TestDetectFromReader_OtherZIP(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"spreadsheet", []string{"[Content_Types].xml", "xl/workbook.xml"}},
		{"no content types", []string{"word/document.xml"}},
		{"plain archive", []string{"readme.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := zipWith(t, tt.files...)
			got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != Unknown {
				t.Errorf("DetectFromReader() = %v, want Unknown", got)
			}
		})
	}
}

func TestDetectFromReader_HTML(t *testing.T) {
	data := []byte("<!DOCTYPE html><html><body><mark>DNA</mark></body></html>")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != HTML {
		t.Errorf("DetectFromReader() = %v, want HTML", got)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("just some text")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}
}

func TestDetectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renamed.bin")
	if err := os.WriteFile(path, zipWith(t, "[Content_Types].xml", "word/document.xml"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile() error = %v", err)
	}
	if got != DOCX {
		t.Errorf("DetectFile() = %v, want DOCX", got)
	}

	if _, err := DetectFile(filepath.Join(t.TempDir(), "missing.docx")); err == nil {
		t.Error("DetectFile() on a missing file should fail")
	}
}

package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Form is a multipart/form-data body, used for uploads such as hackathon
// cover images. Parts are written in the order they were added.
type Form struct {
	parts []formPart
}

type formPart struct {
	name     string
	value    string
	filename string
	data     []byte
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Field adds a text field.
func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// File adds a file part. Its content type is sniffed from data.
func (f *Form) File(name, filename string, data []byte) *Form {
	f.parts = append(f.parts, formPart{name: name, filename: filename, data: data})
	return f
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode renders the form and returns the body with its content type,
// boundary included.
func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range f.parts {
		if p.filename == "" {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.name, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.name), quoteEscaper.Replace(p.filename)))
		h.Set("Content-Type", http.DetectContentType(p.data))
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := part.Write(p.data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

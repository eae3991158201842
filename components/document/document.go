// Package document loads lab reports from files and turns them into plain text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is a parsed document with metadata
type Document struct {
	Text string
	Meta map[string]string
}

// Load reads the file at path and parses it according to its sniffed MIME type
func Load(ctx context.Context, path string) (*Document, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(ctx, bs)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Meta["filename"] = path
	return doc, nil
}

// Parse detects the MIME type of bs and converts it into text
func Parse(ctx context.Context, bs []byte) (*Document, error) {
	mime := mimetype.Detect(bs)
	parser, err := ParserFor(mime)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := parser.Parse(ctx, bytes.NewReader(bs), buf); err != nil {
		return nil, err
	}
	return &Document{
		Text: buf.String(),
		Meta: map[string]string{
			"mimetype": mime.String(),
		},
	}, nil
}

// ParserFor returns the parser handling the given MIME type
func ParserFor(mime *mimetype.MIME) (Parser, error) {
	switch {
	case mime.Is("application/pdf"):
		return NewPDFParser(), nil
	case mime.Is("text/html"):
		return NewHTML2MDParser(), nil
	}
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return TextParser{}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime.String())
}

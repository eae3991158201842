package document

import (
	"bytes"
	"context"
	"io"
)

// Parser converts a document body into text written to an io.Writer
type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}

// TextParser copies plain text through unchanged
type TextParser struct{}

var _ Parser = (*TextParser)(nil)

func (TextParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	_, err := io.Copy(writer, reader)
	return err
}

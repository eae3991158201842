package document

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFParser is a parser which parse PDF content to text
type PDFParser struct {
	password string
}

var _ Parser = (*PDFParser)(nil)

type PDFParserOption func(*PDFParser)

func PDFParserWithPassword(password string) PDFParserOption {
	return func(p *PDFParser) {
		p.password = password
	}
}

func NewPDFParser(opts ...PDFParserOption) *PDFParser {
	ret := new(PDFParser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse writes the text of every page, one row per line
func (p *PDFParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	var (
		r    *pdf.Reader
		err  error
		size = reader.Size()
	)
	if p.password != "" {
		r, err = pdf.NewReaderEncrypted(reader, size, func() string {
			return p.password
		})
	} else {
		r, err = pdf.NewReader(reader, size)
	}
	if err != nil {
		return err
	}
	var wrote bool
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return err
		}
		for _, row := range rows {
			if wrote {
				if _, err := writer.Write([]byte{'\n'}); err != nil {
					return err
				}
			}
			for _, word := range row.Content {
				if _, err := io.WriteString(writer, word.S); err != nil {
					return err
				}
			}
			wrote = true
		}
	}
	return nil
}

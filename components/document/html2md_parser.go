package document

import (
	"bytes"
	"context"
	"io"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// HTML2MDParser turns an HTML lab report, such as a patient portal export, into
// markdown text. Result tables become markdown tables with one test per row.
type HTML2MDParser struct {
	conv *converter.Converter
	opts []converter.ConvertOptionFunc
}

var _ Parser = (*HTML2MDParser)(nil)

func NewHTML2MDParser(opts ...converter.ConvertOptionFunc) *HTML2MDParser {
	return &HTML2MDParser{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithHeaderPromotion(true),
					table.WithSkipEmptyRows(true),
				),
			),
		),
		opts: opts,
	}
}

// Parse writes the report as markdown
func (h *HTML2MDParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := append([]converter.ConvertOptionFunc{converter.WithContext(ctx)}, h.opts...)
	bs, err := h.conv.ConvertReader(reader, opts...)
	if err != nil {
		return err
	}
	_, err = writer.Write(bs)
	return err
}

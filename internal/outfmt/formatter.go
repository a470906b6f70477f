package outfmt

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter writes command results according to the output settings held
// in its context.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// Output applies the context query and writes the result as a template,
// JSON lines or JSON.
func (f *Formatter) Output(data any) error {
	filtered, err := Apply(data, GetQuery(f.ctx))
	if err != nil {
		return err
	}
	if tmpl := GetTemplate(f.ctx); tmpl != "" {
		return WriteTemplate(f.out, filtered, tmpl)
	}
	if ModeFromContext(f.ctx) == JSONL {
		return WriteJSONL(f.out, filtered)
	}
	return WriteJSON(f.out, filtered, IsCompact(f.ctx))
}

// Tabular reports whether results should be rendered as a table: text mode
// with no query or template.
func (f *Formatter) Tabular() bool {
	return ModeFromContext(f.ctx) == Text && GetQuery(f.ctx) == "" && GetTemplate(f.ctx) == ""
}

// Row writes a single tab-separated row; call Flush when done.
func (f *Formatter) Row(columns ...string) {
	for i, col := range columns {
		if i > 0 {
			_, _ = fmt.Fprint(f.tabWriter, "\t")
		}
		_, _ = fmt.Fprint(f.tabWriter, col)
	}
	_, _ = fmt.Fprintln(f.tabWriter)
}

// Flush flushes the table output.
func (f *Formatter) Flush() error {
	return f.tabWriter.Flush()
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}

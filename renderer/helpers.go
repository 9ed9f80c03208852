package renderer

import (
	"bytes"
	"io"
)

// SectionPrinter prints a section header before the first row and a footer
// after the last one, staying silent for sections that never get a row.
type SectionPrinter struct {
	header  func(io.Writer)
	footer  func(io.Writer)
	started bool
}

// Header starts a SectionPrinter with the given header function.
func Header(f func(io.Writer)) *SectionPrinter {
	return &SectionPrinter{header: f}
}

// Footer sets the footer function.
func (p *SectionPrinter) Footer(f func(io.Writer)) *SectionPrinter {
	p.footer = f
	return p
}

// PrintHeader emits the header once, on the first call.
func (p *SectionPrinter) PrintHeader(w io.Writer) {
	if p.started {
		return
	}
	p.started = true
	if p.header != nil {
		p.header(w)
	}
}

// PrintFooter emits the footer, but only for a section that printed rows.
func (p *SectionPrinter) PrintFooter(w io.Writer) {
	if p.started && p.footer != nil {
		p.footer(w)
	}
}

// ConditionalBlock buffers what block writes and copies it to w only when
// block returns true.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var buf bytes.Buffer
	if block(&buf) {
		io.Copy(w, &buf)
	}
}

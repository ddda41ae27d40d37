// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// helpSource is the viewer's help overlay, written as markdown so it
// can be styled the same way as any other prose the viewer shows.
const helpSource = `# kitchend --watch

- **up/down** or **k/j** — move the selected order
- **/** — filter the order list by id (fuzzy match)
- **enter** — toggle the detail pane for the selected order
- **q** or **ctrl+c** — exit the viewer (does not stop the kitchen)

This is a read-only view: it only ever polls the report stream.
`

var (
	helpParserInstance goldmark.Markdown
	helpParserOnce     sync.Once
)

func helpParser() goldmark.Markdown {
	helpParserOnce.Do(func() {
		helpParserInstance = goldmark.New()
	})
	return helpParserInstance
}

// renderHelp converts helpSource to styled terminal text. It supports
// only the constructs the help text above actually uses (headings,
// paragraphs, tight lists, bold) rather than the full CommonMark
// surface — a general-purpose renderer belongs in a package that
// displays arbitrary markdown, which this viewer does not.
func renderHelp(theme Theme) string {
	source := []byte(helpSource)
	document := helpParser().Parser().Parse(text.NewReader(source))

	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &helpRenderer{source: source, theme: theme, lip: lipRenderer}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

type helpRenderer struct {
	source []byte
	theme  Theme
	lip    *lipgloss.Renderer
	output strings.Builder
	inline strings.Builder
	bold   int
}

func (r *helpRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindHeading:
		if entering {
			r.inline.Reset()
		} else {
			style := r.lip.NewStyle().Bold(true).Foreground(r.theme.HeaderForeground)
			r.output.WriteString(style.Render(r.inline.String()))
			r.output.WriteString("\n\n")
		}
	case ast.KindParagraph:
		if entering {
			r.inline.Reset()
		} else {
			r.output.WriteString(r.inline.String())
			r.output.WriteString("\n\n")
		}
	case ast.KindListItem:
		if entering {
			r.inline.Reset()
			r.output.WriteString("  - ")
		} else {
			r.output.WriteString(r.inline.String())
			r.output.WriteString("\n")
		}
	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		if emphasis.Level >= 2 {
			if entering {
				r.bold++
			} else {
				r.bold--
			}
		}
	case ast.KindText:
		if entering {
			value := string(node.(*ast.Text).Segment.Value(r.source))
			style := r.lip.NewStyle().Foreground(r.theme.NormalText)
			if r.bold > 0 {
				style = style.Bold(true)
			}
			r.inline.WriteString(style.Render(value))
		}
	}
	return ast.WalkContinue, nil
}

// Command gendocs renders README.md into a standalone index.html, appending
// the key bindings and the embedded default configuration so the page never
// drifts from the binary.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/prun/internal/config"
	"github.com/oakwood-commons/prun/internal/ui"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}

	readme, err := os.ReadFile("README.md")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading README.md: %v\n", err)
		os.Exit(1)
	}

	indexPath := filepath.Join(os.Args[1], "index.html")
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", filepath.Dir(indexPath), err)
		os.Exit(1)
	}

	var page bytes.Buffer
	writePage(&page, readme, ui.DefaultKeyMap(), config.DefaultConfigYAML())
	if err := os.WriteFile(indexPath, page.Bytes(), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", indexPath, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

// writePage renders the full HTML document.
func writePage(w io.Writer, readme []byte, keys ui.KeyMap, defaults []byte) {
	writeHeader(w)
	_, _ = w.Write(renderMarkdown(appendReference(readme, keys, defaults)))
	writeFooter(w)
}

// appendReference adds the generated sections to the README source.
func appendReference(readme []byte, keys ui.KeyMap, defaults []byte) []byte {
	var sb strings.Builder
	sb.Write(bytes.TrimRight(readme, "\n"))
	sb.WriteString("\n\n## Keys\n\n| Key | Action |\n|---|---|\n")
	for _, b := range keys.Bindings() {
		h := b.Help()
		fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	sb.WriteString("\n## Default configuration\n\n```yaml\n")
	sb.Write(bytes.TrimRight(defaults, "\n"))
	sb.WriteString("\n```\n")
	return []byte(sb.String())
}

func renderMarkdown(src []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse(src)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(doc, renderer)
}

func writeHeader(w io.Writer) {
	fmt.Fprint(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>prun - program launcher</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #cdd6f4; background: #1e1e2e; }
    h1 { color: #89b4fa; border-bottom: 2px solid #585b70; padding-bottom: 10px; }
    h2 { color: #89b4fa; margin-top: 30px; }
    a { color: #89b4fa; }
    code { background: #313244; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
    pre { background: #181825; padding: 16px; border-radius: 6px; overflow-x: auto; border: 1px solid #585b70; }
    pre code { background: none; padding: 0; }
    table { border-collapse: collapse; }
    td, th { padding: 4px 12px; border-bottom: 1px solid #585b70; text-align: left; }
  </style>
</head>
<body>
`)
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, `</body>
</html>
`)
}

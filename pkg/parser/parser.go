package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseFile extracts plain text from an uploaded document based on its
// extension. Supported: .txt, .md, .html, .htm.
func ParseFile(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return parseText(data)
	case ".html", ".htm":
		return parseHTML(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

func parseText(data []byte) (string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("file contains no text")
	}
	return text, nil
}

// parseHTML keeps only rendered text, skipping script/style content.
func parseHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("title, h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	// Fallback for pages without block structure
	if len(parts) == 0 {
		if text := strings.TrimSpace(doc.Text()); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("document contains no text")
	}

	return strings.Join(parts, "\n\n"), nil
}

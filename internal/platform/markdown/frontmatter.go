package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Document is a markdown body with its decoded YAML header.
type Document struct {
	Title string `yaml:"title"`
	Width int    `yaml:"width"`
	Body  string `yaml:"-"`
}

// Parse splits an optional frontmatter block from content. Without a leading
// separator the whole input is the body.
func Parse(content string) (Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return Document{Body: content}, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return Document{}, fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(rest[:idx]), &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	doc.Body = strings.TrimLeft(rest[idx+len("\n"+separator):], "\n")
	return doc, nil
}

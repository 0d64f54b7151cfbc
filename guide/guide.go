// Package guide serves the embedded documentation pages used by the CLI
// guide command and the MCP guide tool.
package guide

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var pages embed.FS

// indexPage is served when no topic is requested. It is omitted from List
// because it is the page that lists the others.
const indexPage = "guide"

// Get returns a guide page by topic name. An empty name returns the index
// page; a ".md" suffix on the name is tolerated.
func Get(name string) (string, error) {
	if name == "" {
		name = indexPage
	}
	name = strings.TrimSuffix(name, ".md")
	data, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the available topic names, sorted, without the index page.
func List() ([]string, error) {
	matches, err := fs.Glob(pages, "*.md")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".md")
		if name == indexPage {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

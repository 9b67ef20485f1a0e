package site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

const cardWrapClass = "block no-underline hover:no-underline transition-all duration-300"

// isCardRoot matches the outer div every linkable card carries.
func isCardRoot(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "div" && attr(n, "class") == "flex flex-col gap-4 group"
}

// WrapCard wraps a card fragment in an anchor to href. It reports false when
// the fragment is already wrapped or carries no card root.
func WrapCard(fragment, href string) (string, bool) {
	trimmed := strings.TrimSpace(fragment)
	if strings.HasPrefix(trimmed, "<a href=") {
		return fragment, false
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil || find(doc, isCardRoot) == nil {
		return fragment, false
	}
	return fmt.Sprintf("<a href=%q class=%q>\n%s\n</a>\n", href, cardWrapClass, trimmed), true
}

// LinkCards wraps every mapped card under baseDir in a link to its page and
// returns the cards it changed.
func LinkCards(baseDir string, m Mapping) ([]string, error) {
	if len(m) == 0 {
		var err error
		if m, err = DiscoverMapping(baseDir); err != nil {
			return nil, err
		}
	}
	var changed []string
	for _, card := range m.Sorted() {
		file := filepath.Join(baseDir, CardsDir, filepath.FromSlash(card))
		data, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return changed, err
		}
		out, ok := WrapCard(string(data), PagesDir+"/"+path.Base(m[card]))
		if !ok {
			continue
		}
		if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
			return changed, err
		}
		changed = append(changed, card)
	}
	return changed, nil
}

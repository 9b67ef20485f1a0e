package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	CardsDir = "project_cards"
	PagesDir = "projects"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">

<head>
    <meta charset="utf-8" />
    <meta content="width=device-width, initial-scale=1.0" name="viewport" />
    <title>{{.Title}}{{with .Owner}} | {{.}}{{end}}</title>
    <link href="../logo.webp" rel="icon" type="image/webp" />
    <script src="https://cdn.tailwindcss.com?plugins=forms,container-queries"></script>
</head>

<body>
    <div class="relative flex size-full min-h-screen flex-col overflow-x-hidden" style="background: #111714;">
        <div class="layout-container flex h-full grow flex-col">

            <header
                class="flex items-center justify-between whitespace-nowrap border-b border-solid border-b-[#29382f] px-5 sm:px-10 py-3 sm:py-4 fixed top-0 left-0 right-0 bg-[#111714]/80 backdrop-blur-sm z-50">
                <h2 class="text-white text-lg sm:text-xl font-bold leading-tight">
                    <a href="../index.html" class="hover:text-[#38e07b] transition-colors">{{.Owner}}</a>
                </h2>
                <nav class="hidden sm:flex items-center gap-8">
                    <a class="text-gray-300 hover:text-white transition-colors text-base font-medium" href="../index.html">About</a>
                    <a class="text-gray-300 hover:text-white transition-colors text-base font-medium" href="../projects.html">Projects</a>
                    <a class="text-gray-300 hover:text-white transition-colors text-base font-medium" href="../contact.html">Contact</a>
                </nav>
            </header>

            <main class="flex-1 mt-20 pb-16">
                <section class="px-4 sm:px-8 lg:px-20 py-12 sm:py-16 bg-[#0c1511]">
                    <div class="max-w-4xl mx-auto">
                        <a href="../projects.html"
                            class="inline-flex items-center gap-2 text-[#9eb7a8] hover:text-[#38e07b] transition-colors mb-8">&larr; Back to Projects</a>

                        <div class="mb-8">
                            <p class="text-[#38e07b] text-sm font-semibold mb-2 uppercase tracking-wider">{{.Institution}}{{with .Year}} &mdash; {{.}}{{end}}</p>
                            <h1 class="text-white text-3xl sm:text-4xl lg:text-5xl font-bold leading-tight mb-4">{{.Title}}</h1>
                        </div>

                        <div class="flex flex-wrap gap-2 mb-8">
{{range .Tags}}                            <span class="px-3 py-1 rounded-full text-sm bg-[#38e07b]/15 text-[#38e07b] border border-[#38e07b]/30">{{.}}</span>
{{end}}                        </div>
                    </div>
                </section>

                <section class="px-4 sm:px-8 lg:px-20 py-12 bg-[#0f1a15]">
                    <div class="max-w-4xl mx-auto">
{{with .Media}}                        <div class="rounded-2xl p-4 mb-8 bg-[#1c2620] border border-[#3d5245]">
                            {{.}}
                        </div>
{{end}}
                        <article class="prose prose-invert max-w-none">
                            <h2 class="text-white text-2xl sm:text-3xl font-bold mb-6">Overview</h2>
{{range .Description}}                            <p class="text-[#e5e7eb] text-lg leading-relaxed mb-6">{{.}}</p>
{{end}}
                            <div class="mt-8">
                                <h3 class="text-white text-xl font-bold mb-4">Resources</h3>
                                <div class="flex flex-wrap gap-4">
{{range .Links}}                                    <a href="{{.URL}}" target="_blank"
                                        class="inline-flex items-center px-6 py-3 rounded-full bg-[#38e07b] text-[#111714] font-semibold hover:bg-[#2dd06f] transition-all hover:scale-105">{{.Text}}</a>
{{else}}                                    <p class="text-[#9eb7a8]">No additional resources available.</p>
{{end}}                                </div>
                            </div>
                        </article>
                    </div>
                </section>
            </main>

            <footer class="border-t border-solid border-t-[#29382f] px-5 sm:px-10 py-4" style="background: #161d1a;">
                <div class="max-w-7xl mx-auto flex justify-between items-center text-white">
                    <p class="text-[#e5e7eb] text-sm">{{.FooterYear}}<span class="text-[#8aa096] mx-2">|</span>{{.Owner}}</p>
                </div>
            </footer>

        </div>
    </div>
</body>

</html>
`))

// DefaultOwner is the site name used in page headers when none is configured.
const DefaultOwner = "Portfolio"

// pageData is what the page template renders.
type pageData struct {
	Card
	Owner      string
	FooterYear int
}

// Mapping pairs a card path relative to CardsDir (slash separated, e.g.
// "robotics/IBVS.html") with a page file name in PagesDir.
type Mapping map[string]string

// pageName is the flat page file a card renders to.
func pageName(card string) string {
	return strings.ToLower(path.Base(card))
}

// ParseMapping reads "card=page" entries. A bare "card" maps to its
// lowercased base name. Pages always land directly in PagesDir.
func ParseMapping(entries []string) (Mapping, error) {
	m := Mapping{}
	for _, e := range entries {
		card, page, found := strings.Cut(strings.TrimSpace(e), "=")
		card, page = strings.TrimSpace(card), strings.TrimSpace(page)
		card = filepath.ToSlash(card)
		if !found {
			page = pageName(card)
		}
		if page != "" {
			page = path.Base(filepath.ToSlash(page))
		}
		if card == "" || page == "" || page == "." || page == "/" {
			return nil, fmt.Errorf("invalid project mapping %q (want card.html=page.html)", e)
		}
		m[card] = page
	}
	return m, nil
}

// DiscoverMapping walks the cards under baseDir, category folders
// included, and maps each to a page named after its lowercased base name.
func DiscoverMapping(baseDir string) (Mapping, error) {
	root := filepath.Join(baseDir, CardsDir)
	m := Mapping{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		card := filepath.ToSlash(rel)
		m[card] = pageName(card)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("no cards found under %s", root)
	}
	return m, nil
}

// Sorted returns the card names in a stable order.
func (m Mapping) Sorted() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderPage writes the standalone page for c. An empty owner falls back
// to DefaultOwner.
func RenderPage(c Card, owner string) (string, error) {
	if owner == "" {
		owner = DefaultOwner
	}
	var b strings.Builder
	if err := pageTmpl.Execute(&b, pageData{Card: c, Owner: owner, FooterYear: time.Now().Year()}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// GeneratePages renders one page per mapped card and returns the written
// paths. An empty mapping is discovered from the cards directory. Missing
// cards are reported in the error after the others are written.
func GeneratePages(baseDir string, m Mapping, owner string) ([]string, error) {
	if len(m) == 0 {
		var err error
		if m, err = DiscoverMapping(baseDir); err != nil {
			return nil, err
		}
	}
	outDir := filepath.Join(baseDir, PagesDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var written, missing []string
	for _, card := range m.Sorted() {
		src := filepath.Join(baseDir, CardsDir, filepath.FromSlash(card))
		f, err := os.Open(src)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, card)
				continue
			}
			return written, err
		}
		c, err := ParseCard(f)
		f.Close()
		if err != nil {
			return written, fmt.Errorf("parse %s: %w", card, err)
		}
		page, err := RenderPage(c, owner)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", card, err)
		}
		dst := filepath.Join(outDir, path.Base(m[card]))
		if err := os.WriteFile(dst, []byte(page), 0o644); err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	if len(missing) > 0 {
		return written, fmt.Errorf("cards not found: %s", strings.Join(missing, ", "))
	}
	return written, nil
}

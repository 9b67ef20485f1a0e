package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const sampleCard = `<div class="flex flex-col gap-4 group">
  <video src="images/demo.mp4" autoplay muted loop></video>
  <h3 class="text-lg">Clip Tool <span class="ml-2 text-xs">new</span></h3>
  <span class="text-xs text-white">Acme Lab</span>
  <span class="text-xs">2023</span>
  <p class="text-[#9eb7a8] text-sm">First line.<br>Second <b>bold</b> line.</p>
  <span class="px-2 py-1 bg-[#38e07b]/20 text-xs">Go</span>
  <span class="px-2 py-1 bg-[#38e07b]/20 text-xs">ffmpeg</span>
  <a href="https://github.com/x/y" target="_blank"><span>Code</span></a>
  <a href="projects/demo.html" target="_blank"><span>Page</span></a>
</div>
`

func TestParseCard(t *testing.T) {
	c, err := ParseCard(strings.NewReader(sampleCard))
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if c.Title != "Clip Tool" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.Year != "2023" {
		t.Errorf("Year = %q", c.Year)
	}
	if c.Institution != "Acme Lab" {
		t.Errorf("Institution = %q", c.Institution)
	}
	if len(c.Description) != 2 || c.Description[0] != "First line." || c.Description[1] != "Second <b>bold</b> line." {
		t.Errorf("Description = %q", c.Description)
	}
	if !reflect.DeepEqual(c.Tags, []string{"Go", "ffmpeg"}) {
		t.Errorf("Tags = %v", c.Tags)
	}
	if !strings.Contains(string(c.Media), `src="../images/demo.mp4"`) {
		t.Errorf("Media = %s", c.Media)
	}
	want := []Link{{URL: "https://github.com/x/y", Text: "Code"}, {URL: "../projects/demo.html", Text: "Page"}}
	if !reflect.DeepEqual(c.Links, want) {
		t.Errorf("Links = %v, want %v", c.Links, want)
	}
}

func TestParseCard_Defaults(t *testing.T) {
	c, err := ParseCard(strings.NewReader(`<div><img src="images/a.png" alt="A"></div>`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Title != "Project" || c.Institution != "Personal" || c.Year != "" {
		t.Errorf("defaults = %q %q %q", c.Title, c.Institution, c.Year)
	}
	if !strings.Contains(string(c.Media), `src="../images/a.png"`) {
		t.Errorf("Media = %s", c.Media)
	}
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping([]string{"Demo.html=demo-page.html", " Other.html "})
	if err != nil {
		t.Fatal(err)
	}
	want := Mapping{"Demo.html": "demo-page.html", "Other.html": "other.html"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("ParseMapping = %v, want %v", m, want)
	}
	m, err = ParseMapping([]string{"robotics/IBVS.html", "robotics/final_manipulator.html=projects/puzzlebot.html"})
	if err != nil {
		t.Fatal(err)
	}
	want = Mapping{"robotics/IBVS.html": "ibvs.html", "robotics/final_manipulator.html": "puzzlebot.html"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("ParseMapping nested = %v, want %v", m, want)
	}
	if _, err := ParseMapping([]string{"=x.html"}); err == nil {
		t.Error("empty card name should fail")
	}
}

func writeCard(t *testing.T, base, name, body string) {
	t.Helper()
	file := filepath.Join(base, CardsDir, name)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGeneratePages(t *testing.T) {
	base := t.TempDir()
	writeCard(t, base, "Demo.html", sampleCard)

	written, err := GeneratePages(base, nil, "")
	if err != nil {
		t.Fatalf("GeneratePages: %v", err)
	}
	wantPath := filepath.Join(base, PagesDir, "demo.html")
	if len(written) != 1 || written[0] != wantPath {
		t.Fatalf("written = %v", written)
	}
	page, _ := os.ReadFile(wantPath)
	for _, s := range []string{
		"<title>Clip Tool | Portfolio</title>",
		"Acme Lab &mdash; 2023",
		"Second <b>bold</b> line.",
		`href="../index.html"`,
		`href="../projects.html"`,
		"<h3 class=\"text-white text-xl font-bold mb-4\">Resources</h3>",
		`href="https://github.com/x/y" target="_blank"`,
		"<footer",
	} {
		if !strings.Contains(string(page), s) {
			t.Errorf("page missing %q", s)
		}
	}
}

func TestGeneratePages_CategoryFolders(t *testing.T) {
	base := t.TempDir()
	writeCard(t, base, filepath.Join("robotics", "IBVS.html"), sampleCard)
	writeCard(t, base, filepath.Join("signals", "music.html"), `<div class="flex flex-col gap-4 group"><h3>Music</h3></div>`)

	m, err := DiscoverMapping(base)
	if err != nil {
		t.Fatalf("DiscoverMapping: %v", err)
	}
	wantMap := Mapping{"robotics/IBVS.html": "ibvs.html", "signals/music.html": "music.html"}
	if !reflect.DeepEqual(m, wantMap) {
		t.Fatalf("DiscoverMapping = %v, want %v", m, wantMap)
	}

	written, err := GeneratePages(base, nil, "")
	if err != nil {
		t.Fatalf("GeneratePages: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	page, err := os.ReadFile(filepath.Join(base, PagesDir, "music.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "No additional resources available.") {
		t.Error("page without links is missing the resources fallback")
	}

	m, err = ParseMapping([]string{"robotics/IBVS.html"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GeneratePages(base, m, ""); err != nil {
		t.Fatalf("GeneratePages with bare nested entry: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, PagesDir, "ibvs.html")); err != nil {
		t.Errorf("ibvs.html not written: %v", err)
	}

	changed, err := LinkCards(base, nil)
	if err != nil || len(changed) != 2 {
		t.Fatalf("LinkCards = %v, %v", changed, err)
	}
	card, _ := os.ReadFile(filepath.Join(base, CardsDir, "robotics", "IBVS.html"))
	if !strings.HasPrefix(string(card), `<a href="projects/ibvs.html"`) {
		t.Errorf("card not linked to its page: %.60s", card)
	}
}

func TestDiscoverMapping_Empty(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, CardsDir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := DiscoverMapping(base); err == nil {
		t.Error("DiscoverMapping with no cards should fail")
	}
}

func TestGeneratePages_MissingCard(t *testing.T) {
	base := t.TempDir()
	writeCard(t, base, "a.html", sampleCard)
	written, err := GeneratePages(base, Mapping{"a.html": "a.html", "gone.html": "gone.html"}, "Jane Doe")
	if err == nil || !strings.Contains(err.Error(), "gone.html") {
		t.Fatalf("err = %v, want missing card", err)
	}
	if len(written) != 1 {
		t.Errorf("written = %v", written)
	}
}

func TestWrapCard(t *testing.T) {
	out, ok := WrapCard(sampleCard, "projects/demo.html")
	if !ok {
		t.Fatal("WrapCard did not wrap")
	}
	if !strings.HasPrefix(out, `<a href="projects/demo.html" class="block no-underline hover:no-underline transition-all duration-300">`) {
		t.Errorf("prefix = %q", out[:80])
	}
	if !strings.HasSuffix(out, "</a>\n") {
		t.Errorf("suffix missing")
	}
	if _, ok := WrapCard(out, "projects/demo.html"); ok {
		t.Error("wrapped card was wrapped twice")
	}
	if _, ok := WrapCard(`<div class="other"></div>`, "x.html"); ok {
		t.Error("non-card fragment was wrapped")
	}
}

func TestLinkCards(t *testing.T) {
	base := t.TempDir()
	writeCard(t, base, "demo.html", sampleCard)
	changed, err := LinkCards(base, nil)
	if err != nil || len(changed) != 1 {
		t.Fatalf("LinkCards = %v, %v", changed, err)
	}
	changed, err = LinkCards(base, nil)
	if err != nil || len(changed) != 0 {
		t.Fatalf("second LinkCards = %v, %v", changed, err)
	}
}

func TestHandler_NoCache(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewHandler(dir, zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/index.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "hello" {
		t.Fatalf("GET = %d %q", resp.StatusCode, body)
	}
	headers := map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	}
	for k, v := range headers {
		if got := resp.Header.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

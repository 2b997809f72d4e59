package preview

import (
	"errors"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><head><title> Boulangerie  Dupont </title><style>body{color:red}</style>
<script>var hidden = "nope";</script></head>
<body>
<header><nav><a href="/menu">Nos pains</a> <a href="#top">Haut</a> <a href="https://other.test/x">Ailleurs</a></nav></header>
<main><h1>Bienvenue</h1><p>Du pain   frais
tous les jours.</p></main>
</body></html>`

func TestExtractHTML(t *testing.T) {
	page, err := Extract("https://boulangerie.test/accueil", []byte(samplePage))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if page.Kind != KindHTML {
		t.Fatalf("kind = %s", page.Kind)
	}
	if page.Title != "Boulangerie Dupont" {
		t.Fatalf("title = %q", page.Title)
	}
	if strings.Contains(page.Text, "hidden") || strings.Contains(page.Text, "color") {
		t.Fatalf("script or style leaked into text: %q", page.Text)
	}
	if !strings.Contains(page.Text, "Bienvenue\nDu pain frais tous les jours.") {
		t.Fatalf("unexpected text %q", page.Text)
	}
	if len(page.Links) != 2 {
		t.Fatalf("expected 2 links, got %+v", page.Links)
	}
	if page.Links[0].URL != "https://boulangerie.test/menu" || page.Links[0].Text != "Nos pains" {
		t.Fatalf("relative link not resolved: %+v", page.Links[0])
	}
	if !strings.Contains(page.Source, "<title>") {
		t.Fatalf("source should keep markup: %q", page.Source)
	}
}

func TestExtractPlainTextAndJSON(t *testing.T) {
	page, err := Extract("https://x.test/robots.txt", []byte("User-agent: *\nDisallow:\n"))
	if err != nil {
		t.Fatalf("Extract text: %v", err)
	}
	if page.Kind != KindText || !strings.HasPrefix(page.Text, "User-agent") {
		t.Fatalf("unexpected text page %+v", page)
	}

	page, err = Extract("https://x.test/api", []byte(`{"modele":"boulangerie","prix":200}`))
	if err != nil {
		t.Fatalf("Extract json: %v", err)
	}
	if page.Kind != KindJSON || !strings.Contains(page.Text, "\n  \"modele\": \"boulangerie\"") {
		t.Fatalf("unexpected json page %q", page.Text)
	}
}

func TestExtractXML(t *testing.T) {
	page, err := Extract("https://x.test/sitemap.xml", []byte(`<?xml version="1.0"?><urlset><url><loc>https://x.test/</loc></url></urlset>`))
	if err != nil {
		t.Fatalf("Extract xml: %v", err)
	}
	if page.Kind != KindXML || page.Title != "urlset" {
		t.Fatalf("unexpected xml page %+v", page)
	}
	if !strings.Contains(page.Source, "\n  <url>") {
		t.Fatalf("xml should be indented: %q", page.Source)
	}
}

func TestExtractRejectsBinary(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if _, err := Extract("https://x.test/logo.png", png); !errors.Is(err, ErrUnsupportedContent) {
		t.Fatalf("expected ErrUnsupportedContent, got %v", err)
	}
}

func TestExtractBrokenPDF(t *testing.T) {
	if _, err := Extract("https://x.test/doc.pdf", []byte("%PDF-1.4\nnot really a pdf")); err == nil {
		t.Fatal("expected an error for a truncated pdf")
	}
}

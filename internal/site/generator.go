package site

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// Page is one rendered file of the static site, addressed by its
// repository-relative path.
type Page struct {
	Path    string
	Content []byte
}

// Generator renders the public site from the published article set.
// Rendering is deterministic: the same input set produces byte-identical
// output, so regeneration can be diffed and committed safely.
type Generator struct {
	siteName      string
	baseURL       string
	homepageCount int
	listingCount  int

	homepage *template.Template
	listing  *template.Template
	article  *template.Template
}

// New creates a site generator. Display counts bound how many articles
// appear on the homepage and the full listing page.
func New(siteName, baseURL string, homepageCount, listingCount int) (*Generator, error) {
	g := &Generator{
		siteName:      siteName,
		baseURL:       strings.TrimRight(baseURL, "/"),
		homepageCount: homepageCount,
		listingCount:  listingCount,
	}

	var err error
	if g.homepage, err = template.New("homepage").Parse(homepageTemplate); err != nil {
		return nil, fmt.Errorf("parsing homepage template: %w", err)
	}
	if g.listing, err = template.New("listing").Parse(listingTemplate); err != nil {
		return nil, fmt.Errorf("parsing listing template: %w", err)
	}
	if g.article, err = template.New("article").Parse(articleTemplate); err != nil {
		return nil, fmt.Errorf("parsing article template: %w", err)
	}
	return g, nil
}

type articleView struct {
	Title           string
	MetaDescription string
	URL             string
	Category        string
	Date            string
	Content         template.HTML
	CTA             string
}

type pageData struct {
	SiteName string
	BaseURL  string
	Articles []articleView
	Article  *articleView
}

// Render produces the homepage, the article listing, and one page per
// published article. Articles are ordered newest first by their original
// creation date.
func (g *Generator) Render(published []*model.Article) ([]Page, error) {
	ordered := make([]*model.Article, len(published))
	copy(ordered, published)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].OriginalCreatedAt.Equal(ordered[j].OriginalCreatedAt) {
			return ordered[i].OriginalCreatedAt.After(ordered[j].OriginalCreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	views := make([]articleView, len(ordered))
	for i, a := range ordered {
		views[i] = articleView{
			Title:           a.Title,
			MetaDescription: a.MetaDescription,
			URL:             a.URL,
			Category:        a.Category,
			Date:            a.OriginalCreatedAt.Format("January 2, 2006"),
			Content:         template.HTML(a.Content),
			CTA:             a.CTA,
		}
	}

	pages := make([]Page, 0, len(views)+2)

	home, err := g.render(g.homepage, pageData{
		SiteName: g.siteName,
		BaseURL:  g.baseURL,
		Articles: truncate(views, g.homepageCount),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering homepage: %w", err)
	}
	pages = append(pages, Page{Path: "index.html", Content: home})

	list, err := g.render(g.listing, pageData{
		SiteName: g.siteName,
		BaseURL:  g.baseURL,
		Articles: truncate(views, g.listingCount),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering listing: %w", err)
	}
	pages = append(pages, Page{Path: "articles/index.html", Content: list})

	for i := range views {
		v := views[i]
		body, err := g.render(g.article, pageData{
			SiteName: g.siteName,
			BaseURL:  g.baseURL,
			Article:  &v,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering article %s: %w", v.URL, err)
		}
		pages = append(pages, Page{Path: strings.TrimPrefix(v.URL, "/"), Content: body})
	}

	return pages, nil
}

// RenderArticle renders the standalone page for one article.
func (g *Generator) RenderArticle(a *model.Article) (Page, error) {
	v := articleView{
		Title:           a.Title,
		MetaDescription: a.MetaDescription,
		URL:             a.URL,
		Category:        a.Category,
		Date:            a.OriginalCreatedAt.Format("January 2, 2006"),
		Content:         template.HTML(a.Content),
		CTA:             a.CTA,
	}
	body, err := g.render(g.article, pageData{SiteName: g.siteName, BaseURL: g.baseURL, Article: &v})
	if err != nil {
		return Page{}, fmt.Errorf("rendering article %s: %w", a.URL, err)
	}
	return Page{Path: strings.TrimPrefix(a.URL, "/"), Content: body}, nil
}

func (g *Generator) render(tpl *template.Template, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(views []articleView, n int) []articleView {
	if n > 0 && len(views) > n {
		return views[:n]
	}
	return views
}

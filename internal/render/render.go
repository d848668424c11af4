// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns a site document into public HTML. Each section kind
// has its own template; custom sections run through placeholder
// interpolation before their markup is inserted verbatim.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"quickstor/internal/interpolate"
	"quickstor/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer compiles the section and layout templates once and renders
// complete public pages from a site document.
type Renderer struct {
	tmpl *template.Template

	// liveReload controls whether rendered pages include the websocket
	// reload snippet that refreshes the page when the document changes.
	liveReload bool
}

// New parses the embedded templates. Parse errors are programmer errors
// and surface at startup, never per-request.
func New(liveReload bool) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"icon": iconSVG,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse render templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, liveReload: liveReload}, nil
}

// pageData is the root context for the layout template.
type pageData struct {
	Title      string
	ThemeCSS   template.CSS
	Navbar     models.Navbar
	Footer     models.Footer
	Sections   []template.HTML
	LiveReload bool
}

// RenderPage renders one page of the site as a full HTML document.
// A section that fails to render is replaced by a diagnostic placeholder
// instead of failing the whole page.
func (r *Renderer) RenderPage(site models.Site, page models.Page) ([]byte, error) {
	sections := make([]template.HTML, 0, len(page.Sections))
	for _, s := range page.Sections {
		sections = append(sections, r.renderSection(s, site.Theme))
	}

	data := pageData{
		Title:      page.Title,
		ThemeCSS:   themeCSS(site.Theme),
		Navbar:     site.Navbar,
		Footer:     site.Footer,
		Sections:   sections,
		LiveReload: r.liveReload,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, fmt.Errorf("render page %s: %w", page.ID, err)
	}
	return buf.Bytes(), nil
}

// renderSection dispatches on the section's content kind. Unknown kinds
// render as a visible placeholder carrying the raw type tag, so a document
// written by a newer editor degrades loudly instead of silently.
func (r *Renderer) renderSection(s models.Section, theme models.Theme) template.HTML {
	switch c := s.Content.(type) {
	case models.HeroContent:
		// Gradient values contain parens, which the template CSS filter
		// rejects. The theme is operator-controlled, so pre-type them.
		return r.execute("hero.html", heroData{
			HeroContent:     c,
			ID:              s.ID,
			BackgroundValue: template.CSS(theme.Hero.BackgroundValue),
			GlowColor:       template.CSS(theme.Hero.GlowColor),
			OverlayOpacity:  theme.Hero.OverlayOpacity,
			GlowOpacity:     theme.Hero.GlowOpacity,
		})
	case models.FeatureGridContent:
		return r.execute("features.html", featuresData{
			FeatureGridContent: c,
			ID:                 s.ID,
		})
	case models.ComparisonGraphContent:
		return r.execute("comparison.html", newComparisonData(s.ID, c))
	case models.CustomHTMLContent:
		return renderCustomHTML(c)
	default:
		return r.execute("unknown.html", unknownData{ID: s.ID, Type: string(s.Type)})
	}
}

// execute renders one named template to a fragment. A failure yields a
// visible diagnostic block, same treatment as an unknown section kind,
// rather than propagating up or disappearing from the page.
func (r *Renderer) execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(fmt.Sprintf(
			`<section style="padding: 3rem 1.5rem;"><div class="container" style="border: 1px dashed var(--color-warning); border-radius: 0.5rem; padding: 2rem; text-align: center; color: var(--color-warning); font-weight: 600;">Section failed to render: %s</div></section>`,
			template.HTMLEscapeString(err.Error())))
	}
	return template.HTML(buf.String())
}

type heroData struct {
	models.HeroContent
	ID              string
	BackgroundValue template.CSS
	GlowColor       template.CSS
	OverlayOpacity  float64
	GlowOpacity     float64
}

type featuresData struct {
	models.FeatureGridContent
	ID string
}

type unknownData struct {
	ID   string
	Type string
}

// comparisonBar is one bar group with pre-computed widths as percentages
// of the largest value in the dataset.
type comparisonBar struct {
	models.ComparisonEntry
	IOPSPercent       float64
	ThroughputPercent float64
}

type comparisonData struct {
	ID          string
	Title       string
	Description string
	Bars        []comparisonBar
}

func newComparisonData(id string, c models.ComparisonGraphContent) comparisonData {
	var maxIOPS, maxThroughput float64
	for _, e := range c.Data {
		if e.IOPS > maxIOPS {
			maxIOPS = e.IOPS
		}
		if e.Throughput > maxThroughput {
			maxThroughput = e.Throughput
		}
	}

	bars := make([]comparisonBar, 0, len(c.Data))
	for _, e := range c.Data {
		bars = append(bars, comparisonBar{
			ComparisonEntry:   e,
			IOPSPercent:       percent(e.IOPS, maxIOPS),
			ThroughputPercent: percent(e.Throughput, maxThroughput),
		})
	}

	return comparisonData{
		ID:          id,
		Title:       c.Title,
		Description: c.Description,
		Bars:        bars,
	}
}

func percent(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}

// renderCustomHTML interpolates the section's {{key}} placeholders and
// returns the result unescaped. Custom sections are authored by the site
// operator; their markup is trusted as written.
func renderCustomHTML(c models.CustomHTMLContent) template.HTML {
	html := interpolate.Apply(c.HTML, c.Content, c.Styles)
	if c.CSS != "" {
		html = "<style>" + c.CSS + "</style>" + html
	}
	return template.HTML(html)
}

// themeCSS builds the :root custom-property block from the theme's token
// mapping. Keys are sorted so output is stable across renders.
func themeCSS(t models.Theme) template.CSS {
	vars := t.CSSVariables()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(":")
		b.WriteString(vars[k])
		b.WriteString(";")
	}
	b.WriteString("}")
	return template.CSS(b.String())
}

// iconSVG maps the icon names used in section content to inline SVGs.
// Names outside the known set fall back to a generic marker so a typo in
// the editor never breaks the page.
func iconSVG(name string) template.HTML {
	path, ok := iconPaths[name]
	if !ok {
		path = iconPaths["Circle"]
	}
	return template.HTML(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" width="24" height="24">` +
			path + `</svg>`)
}

var iconPaths = map[string]string{
	"Shield":      `<path d="M20 13c0 5-3.5 7.5-7.66 8.95a1 1 0 0 1-.67-.01C7.5 20.5 4 18 4 13V6a1 1 0 0 1 1-1c2 0 4.5-1.2 6.24-2.72a1.17 1.17 0 0 1 1.52 0C14.51 3.81 17 5 19 5a1 1 0 0 1 1 1z"/>`,
	"ShieldCheck": `<path d="M20 13c0 5-3.5 7.5-7.66 8.95a1 1 0 0 1-.67-.01C7.5 20.5 4 18 4 13V6a1 1 0 0 1 1-1c2 0 4.5-1.2 6.24-2.72a1.17 1.17 0 0 1 1.52 0C14.51 3.81 17 5 19 5a1 1 0 0 1 1 1z"/><path d="m9 12 2 2 4-4"/>`,
	"Activity":    `<path d="M22 12h-2.48a2 2 0 0 0-1.93 1.46l-2.35 8.36a.25.25 0 0 1-.48 0L9.24 2.18a.25.25 0 0 0-.48 0l-2.35 8.36A2 2 0 0 1 4.49 12H2"/>`,
	"Zap":         `<path d="M4 14a1 1 0 0 1-.78-1.63l9.9-10.2a.5.5 0 0 1 .86.46l-1.92 6.02A1 1 0 0 0 13 10h7a1 1 0 0 1 .78 1.63l-9.9 10.2a.5.5 0 0 1-.86-.46l1.92-6.02A1 1 0 0 0 11 14z"/>`,
	"Cpu":         `<rect x="4" y="4" width="16" height="16" rx="2"/><rect x="9" y="9" width="6" height="6"/><path d="M15 2v2M15 20v2M2 15h2M2 9h2M20 15h2M20 9h2M9 2v2M9 20v2"/>`,
	"HardDrive":   `<line x1="22" y1="12" x2="2" y2="12"/><path d="M5.45 5.11 2 12v6a2 2 0 0 0 2 2h16a2 2 0 0 0 2-2v-6l-3.45-6.89A2 2 0 0 0 16.76 4H7.24a2 2 0 0 0-1.79 1.11z"/><line x1="6" y1="16" x2="6.01" y2="16"/><line x1="10" y1="16" x2="10.01" y2="16"/>`,
	"Database":    `<ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M3 5v14a9 3 0 0 0 18 0V5"/><path d="M3 12a9 3 0 0 0 18 0"/>`,
	"Server":      `<rect x="2" y="2" width="20" height="8" rx="2" ry="2"/><rect x="2" y="14" width="20" height="8" rx="2" ry="2"/><line x1="6" y1="6" x2="6.01" y2="6"/><line x1="6" y1="18" x2="6.01" y2="18"/>`,
	"Lock":        `<rect x="3" y="11" width="18" height="11" rx="2" ry="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/>`,
	"Gauge":       `<path d="m12 14 4-4"/><path d="M3.34 19a10 10 0 1 1 17.32 0"/>`,
	"Check":       `<polyline points="20 6 9 17 4 12"/>`,
	"Circle":      `<circle cx="12" cy="12" r="10"/>`,
}

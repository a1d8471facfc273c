package services

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// sectionBody renders the inner nodes of one section type.
type sectionBody func(r *Renderer, s domain.Section) []*html.Node

// Renderer turns builder state into an HTML node tree. Each section type
// has its own body renderer; the tree is serialised only at the edge.
type Renderer struct {
	markdown driven.MarkdownRenderer
	bodies   map[domain.SectionType]sectionBody
}

// NewRenderer creates a renderer. markdown may be nil, in which case
// Markdown fields render as plain paragraphs.
func NewRenderer(markdown driven.MarkdownRenderer) *Renderer {
	return &Renderer{
		markdown: markdown,
		bodies: map[domain.SectionType]sectionBody{
			domain.SectionHero:         heroBody,
			domain.SectionAbout:        aboutBody,
			domain.SectionProjects:     projectsBody,
			domain.SectionSkills:       skillsBody,
			domain.SectionExperience:   experienceBody,
			domain.SectionEducation:    educationBody,
			domain.SectionContact:      contactBody,
			domain.SectionTestimonials: testimonialsBody,
			domain.SectionCustom:       customBody,
		},
	}
}

// RenderSection returns the <section> element for s.
func (r *Renderer) RenderSection(s domain.Section) (*html.Node, error) {
	body, ok := r.bodies[s.Type]
	if !ok {
		return nil, fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, s.Type)
	}

	attrs := []html.Attribute{
		attr("id", s.ID),
		attr("class", "portfolio-section section-"+string(s.Type)),
	}
	if style := sectionStyle(s.Styles); style != "" {
		attrs = append(attrs, attr("style", style))
	}
	if a := s.Animations; a.Enabled {
		attrs = append(attrs,
			attr("data-animation", string(a.Type)),
			attr("data-trigger", string(a.Trigger)),
			attr("data-duration", strconv.Itoa(a.Duration)),
			attr("data-delay", strconv.Itoa(a.Delay)),
			attr("data-easing", a.Easing),
		)
	}

	section := element(atom.Section, attrs...)
	appendAll(section, body(r, s)...)
	return section, nil
}

// RenderSections renders every visible section in order.
func (r *Renderer) RenderSections(sections []domain.Section) ([]*html.Node, error) {
	nodes := make([]*html.Node, 0, len(sections))
	for _, s := range sections {
		if !s.Visible {
			continue
		}
		n, err := r.RenderSection(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// RenderDocument returns the standalone HTML document for state.
func (r *Renderer) RenderDocument(state domain.State) (*html.Node, error) {
	sections, err := r.RenderSections(state.Sections)
	if err != nil {
		return nil, err
	}
	c := state.Customization

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"), attr("data-theme", string(c.Theme)))
	doc.AppendChild(root)

	head := element(atom.Head)
	appendAll(head,
		element(atom.Meta, attr("charset", "UTF-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1.0")),
		withText(element(atom.Title), "My Portfolio"),
		element(atom.Link, attr("rel", "stylesheet"), attr("href", fontsURL(c))),
		withText(element(atom.Style), documentCSS(c)),
	)
	root.AppendChild(head)

	body := element(atom.Body)
	if c.ParticlesEnabled {
		body.Attr = append(body.Attr, attr("data-particles", "true"))
	}
	content := element(atom.Main, attr("id", "portfolio"))
	appendAll(content, sections...)
	body.AppendChild(content)
	root.AppendChild(body)
	return doc, nil
}

// WriteDocument renders state and serialises it to w.
func (r *Renderer) WriteDocument(w io.Writer, state domain.State) error {
	doc, err := r.RenderDocument(state)
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}

// RenderPreviewPage wraps the document in a frame sized for device.
func (r *Renderer) RenderPreviewPage(state domain.State, device domain.Device) (*html.Node, error) {
	var buf bytes.Buffer
	if err := r.WriteDocument(&buf, state); err != nil {
		return nil, err
	}
	vp := device.Viewport()

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	appendAll(head,
		element(atom.Meta, attr("charset", "UTF-8")),
		withText(element(atom.Title), "Preview - "+device.String()),
		withText(element(atom.Style), previewCSS),
	)
	root.AppendChild(head)

	body := element(atom.Body)
	nav := element(atom.Nav, attr("class", "devices"))
	for _, d := range domain.AllDevices() {
		a := element(atom.A, attr("href", "/preview/"+d.String()))
		if d == device {
			a.Attr = append(a.Attr, attr("class", "active"))
		}
		appendAll(nav, withText(a, d.String()))
	}
	frame := element(atom.Iframe,
		attr("title", "portfolio preview"),
		attr("class", "device-frame device-"+device.String()),
		attr("style", fmt.Sprintf("width: %s; height: %s;", vp.Width, vp.Height)),
		attr("srcdoc", buf.String()),
	)
	appendAll(body, nav, frame)
	root.AppendChild(body)
	return doc, nil
}

func heroBody(_ *Renderer, s domain.Section) []*html.Node {
	header := element(atom.Header, attr("class", "hero"))
	appendAll(header, withText(element(atom.H1), domain.ContentString(s.Content, "heading")))
	if sub := domain.ContentString(s.Content, "subheading"); sub != "" {
		appendAll(header, withText(element(atom.P, attr("class", "subheading")), sub))
	}
	if cta := domain.ContentString(s.Content, "ctaText"); cta != "" {
		appendAll(header, link(domain.ContentString(s.Content, "ctaLink"), cta, "cta"))
	}
	return []*html.Node{header}
}

func aboutBody(r *Renderer, s domain.Section) []*html.Node {
	grid := element(atom.Div, attr("class", "about-grid"))
	if src := SanitizeURL(domain.ContentString(s.Content, "image")); src != "" {
		appendAll(grid, element(atom.Img, attr("src", src), attr("alt", s.Heading()), attr("loading", "lazy")))
	}
	text := element(atom.Div, attr("class", "about-text"))
	appendAll(text, r.markdownNodes(domain.ContentString(s.Content, "text"))...)
	appendAll(grid, text)
	return []*html.Node{heading(s), grid}
}

func projectsBody(_ *Renderer, s domain.Section) []*html.Node {
	grid := element(atom.Div, attr("class", "projects-grid"))
	for _, p := range items[domain.Project](s, "projects") {
		card := element(atom.Article, attr("class", "project-card"))
		if src := SanitizeURL(p.Image); src != "" {
			appendAll(card, element(atom.Img, attr("src", src), attr("alt", p.Title), attr("loading", "lazy")))
		}
		appendAll(card,
			withText(element(atom.H3), p.Title),
			withText(element(atom.P), p.Description),
		)
		if len(p.Tags) > 0 {
			tags := element(atom.Ul, attr("class", "tags"))
			for _, tag := range p.Tags {
				appendAll(tags, withText(element(atom.Li), tag))
			}
			appendAll(card, tags)
		}
		links := element(atom.Div, attr("class", "links"))
		if p.DemoURL != "" {
			appendAll(links, link(p.DemoURL, "Live Demo", "demo"))
		}
		if p.GithubURL != "" {
			appendAll(links, link(p.GithubURL, "Source", "source"))
		}
		if links.FirstChild != nil {
			appendAll(card, links)
		}
		appendAll(grid, card)
	}
	return []*html.Node{heading(s), grid}
}

func skillsBody(_ *Renderer, s domain.Section) []*html.Node {
	list := element(atom.Ul, attr("class", "skills"))
	for _, sk := range items[domain.Skill](s, "skills") {
		level := clamp(sk.Level, 0, 100)
		li := element(atom.Li, attr("class", "skill"))
		if sk.Category != "" {
			li.Attr = append(li.Attr, attr("data-category", sk.Category))
		}
		bar := element(atom.Div, attr("class", "skill-bar"))
		appendAll(bar, element(atom.Div,
			attr("class", "skill-fill"),
			attr("style", fmt.Sprintf("width: %d%%", level)),
		))
		appendAll(li,
			withText(element(atom.Span, attr("class", "skill-name")), sk.Name),
			withText(element(atom.Span, attr("class", "skill-level")), strconv.Itoa(level)+"%"),
			bar,
		)
		appendAll(list, li)
	}
	return []*html.Node{heading(s), list}
}

func experienceBody(_ *Renderer, s domain.Section) []*html.Node {
	list := element(atom.Ol, attr("class", "timeline"))
	for _, e := range items[domain.Experience](s, "entries") {
		appendAll(list, timelineEntry(e.Title, e.Company, e.Period, e.Description))
	}
	return []*html.Node{heading(s), list}
}

func educationBody(_ *Renderer, s domain.Section) []*html.Node {
	list := element(atom.Ol, attr("class", "timeline"))
	for _, e := range items[domain.Education](s, "entries") {
		appendAll(list, timelineEntry(e.Degree, e.Institution, e.Period, e.Description))
	}
	return []*html.Node{heading(s), list}
}

func timelineEntry(title, org, period, description string) *html.Node {
	li := element(atom.Li)
	appendAll(li, withText(element(atom.H3), title))
	meta := org
	if period != "" {
		meta = strings.TrimSpace(org + " · " + period)
	}
	appendAll(li, withText(element(atom.P, attr("class", "meta")), meta))
	if description != "" {
		appendAll(li, withText(element(atom.P), description))
	}
	return li
}

func contactBody(_ *Renderer, s domain.Section) []*html.Node {
	nodes := []*html.Node{heading(s)}
	if sub := domain.ContentString(s.Content, "subheading"); sub != "" {
		nodes = append(nodes, withText(element(atom.P, attr("class", "subheading")), sub))
	}
	details := element(atom.Div, attr("class", "contact-details"))
	if email := domain.ContentString(s.Content, "email"); email != "" {
		appendAll(details, link("mailto:"+email, email, "email"))
	}
	if phone := domain.ContentString(s.Content, "phone"); phone != "" {
		appendAll(details, withText(element(atom.Span, attr("class", "phone")), phone))
	}
	nodes = append(nodes, details)

	social := items[domain.SocialLink](s, "social")
	if len(social) > 0 {
		list := element(atom.Ul, attr("class", "social"))
		for _, l := range social {
			li := element(atom.Li)
			appendAll(li, link(l.URL, l.Platform, ""))
			appendAll(list, li)
		}
		nodes = append(nodes, list)
	}
	return nodes
}

func testimonialsBody(_ *Renderer, s domain.Section) []*html.Node {
	wrap := element(atom.Div, attr("class", "testimonials"))
	for _, q := range items[domain.Testimonial](s, "quotes") {
		bq := element(atom.Blockquote)
		appendAll(bq, withText(element(atom.P), q.Quote))
		footer := element(atom.Footer)
		appendAll(footer, withText(element(atom.Cite), q.Author))
		if q.Role != "" {
			appendAll(footer, withText(element(atom.Span, attr("class", "role")), q.Role))
		}
		appendAll(bq, footer)
		appendAll(wrap, bq)
	}
	return []*html.Node{heading(s), wrap}
}

func customBody(r *Renderer, s domain.Section) []*html.Node {
	var nodes []*html.Node
	if h := domain.ContentString(s.Content, "heading"); h != "" {
		nodes = append(nodes, withText(element(atom.H2), h))
	}
	body := element(atom.Div, attr("class", "custom-body"))
	appendAll(body, r.markdownNodes(domain.ContentString(s.Content, "body"))...)
	return append(nodes, body)
}

// markdownNodes renders Markdown through the configured renderer and
// parses the fragment back into nodes.
func (r *Renderer) markdownNodes(src string) []*html.Node {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	if r.markdown == nil {
		return []*html.Node{withText(element(atom.P), src)}
	}
	fragment, err := r.markdown.Render(src)
	if err != nil {
		logger.Warn("markdown render failed, using plain text: %v", err)
		return []*html.Node{withText(element(atom.P), src)}
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), element(atom.Div))
	if err != nil {
		logger.Warn("markdown fragment parse failed, using plain text: %v", err)
		return []*html.Node{withText(element(atom.P), src)}
	}
	return nodes
}

// items decodes a content list, logging and skipping malformed content.
func items[T any](s domain.Section, key string) []T {
	out, err := domain.ContentItems[T](s.Content, key)
	if err != nil {
		logger.Warn("section %s: skipping %s: %v", s.ID, key, err)
		return nil
	}
	return out
}

func heading(s domain.Section) *html.Node {
	return withText(element(atom.H2, attr("class", "section-heading")), s.Heading())
}

// link builds an anchor. Unsafe URLs render as plain text.
func link(href, text, class string) *html.Node {
	safe := SanitizeURL(href)
	if safe == "" {
		return withText(element(atom.Span, attr("class", class)), text)
	}
	a := element(atom.A, attr("href", safe))
	if class != "" {
		a.Attr = append(a.Attr, attr("class", class))
	}
	if strings.HasPrefix(safe, "http") {
		a.Attr = append(a.Attr, attr("rel", "noopener noreferrer"), attr("target", "_blank"))
	}
	return withText(a, text)
}

func sectionStyle(st domain.SectionStyles) string {
	var decls []string
	add := func(prop, value string) {
		if v := SanitizeCSSValue(value); v != "" {
			decls = append(decls, prop+": "+v)
		}
	}
	add("background-color", st.BackgroundColor)
	add("color", st.TextColor)
	add("padding", st.Padding)
	add("margin", st.Margin)
	add("border-radius", st.BorderRadius)
	if custom := SanitizeCSSDeclarations(st.CustomCSS); custom != "" {
		decls = append(decls, strings.TrimSuffix(custom, ";"))
	}
	return strings.Join(decls, "; ")
}

func fontsURL(c domain.Customization) string {
	q := url.Values{"display": {"swap"}}
	for _, f := range []string{c.FontPrimary, c.FontSecondary} {
		if name := SanitizeFontName(f); name != "" {
			q.Add("family", name)
		}
	}
	return "https://fonts.googleapis.com/css2?" + q.Encode()
}

func documentCSS(c domain.Customization) string {
	primary := SanitizeFontName(c.FontPrimary)
	secondary := SanitizeFontName(c.FontSecondary)
	if secondary == "" {
		secondary = primary
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --accent: %s;\n", SanitizeCSSValue(c.PrimaryColor))
	fmt.Fprintf(&b, "  --text-primary: %s;\n", SanitizeCSSValue(c.SecondaryColor))
	fmt.Fprintf(&b, "  --text-secondary: %s;\n", SanitizeCSSValue(c.AccentColor))
	fmt.Fprintf(&b, "  --font-primary: '%s', serif;\n", primary)
	fmt.Fprintf(&b, "  --font-secondary: '%s', serif;\n", secondary)
	fmt.Fprintf(&b, "  --animation-speed: %s;\n", strconv.FormatFloat(c.AnimationSpeed, 'g', -1, 64))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "body { font-family: '%s', serif; color: var(--text-primary); margin: 0; }\n", primary)
	b.WriteString(baseCSS)
	return b.String()
}

const baseCSS = `h1, h2, h3 { font-family: var(--font-secondary); }
.portfolio-section { box-sizing: border-box; }
.section-heading { margin-top: 0; }
.hero { text-align: center; }
.hero .subheading, .meta, .role { color: var(--text-secondary); }
.cta { display: inline-block; padding: 0.75rem 1.5rem; background: var(--accent); color: var(--text-primary); text-decoration: none; border-radius: 4px; }
.about-grid { display: grid; grid-template-columns: minmax(0, 1fr) 2fr; gap: 2rem; align-items: center; }
.about-grid img { max-width: 100%; border-radius: 8px; }
.projects-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); gap: 1.5rem; }
.project-card img { width: 100%; border-radius: 4px; }
.tags { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 0.5rem; }
.tags li { background: var(--accent); padding: 0.1rem 0.6rem; border-radius: 999px; font-size: 0.85rem; }
.skills { list-style: none; padding: 0; }
.skill { margin-bottom: 1rem; }
.skill-level { float: right; }
.skill-bar { height: 6px; background: rgba(0, 0, 0, 0.08); border-radius: 3px; }
.skill-fill { height: 100%; background: var(--accent); border-radius: 3px; }
.timeline { list-style: none; padding-left: 1rem; border-left: 2px solid var(--accent); }
.social { list-style: none; padding: 0; display: flex; gap: 1rem; }
blockquote { margin: 0 0 1.5rem; padding-left: 1rem; border-left: 3px solid var(--accent); }
[data-theme="dark"] body { background: #111111; color: #EEEEEE; }
@media (max-width: 768px) { .about-grid { grid-template-columns: 1fr; } }
`

const previewCSS = `body { margin: 0; background: #f3f3f3; font-family: sans-serif; }
.devices { display: flex; gap: 1rem; justify-content: center; padding: 1rem; }
.devices a { color: #1A1A1A; text-decoration: none; text-transform: capitalize; }
.devices a.active { font-weight: bold; text-decoration: underline; }
.device-frame { display: block; margin: 0 auto; border: 1px solid #ccc; background: #fff; }
`

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func appendAll(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		parent.AppendChild(c)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

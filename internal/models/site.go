// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// NavLink is one entry of the navbar link list. Href references a page
// slug or an in-page anchor.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Navbar is the global navigation record shared across pages.
type Navbar struct {
	Logo    string    `json:"logo"`
	Links   []NavLink `json:"links"`
	CtaText string    `json:"ctaText"`
}

// FooterColumn groups a titled list of footer links.
type FooterColumn struct {
	Title string   `json:"title"`
	Links []string `json:"links"`
}

// Footer is the global footer record shared across pages.
type Footer struct {
	BrandName        string         `json:"brandName"`
	BrandDescription string         `json:"brandDescription"`
	Tagline          string         `json:"tagline,omitempty"`
	Columns          []FooterColumn `json:"columns"`
	Copyright        string         `json:"copyright"`
	LegalLinks       []string       `json:"legalLinks"`
}

// CustomSection is a reusable CUSTOM_HTML section template in the library.
type CustomSection struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	HTML           string            `json:"html"`
	Schema         []SchemaField     `json:"schema,omitempty"`
	DefaultContent map[string]string `json:"defaultContent,omitempty"`
	Prompt         string            `json:"prompt,omitempty"` // provenance: the instruction that generated it
	CreatedAt      time.Time         `json:"createdAt"`
}

// Site is the full aggregate a single document represents: every page plus
// the global navbar, footer, theme state, and the custom-section library.
type Site struct {
	Pages          []Page          `json:"pages"`
	Navbar         Navbar          `json:"navbar"`
	Footer         Footer          `json:"footer"`
	Theme          Theme           `json:"theme"`
	SavedThemes    []Theme         `json:"savedThemes"`
	CustomSections []CustomSection `json:"customSections"`
}

// SiteDocument is the wire form of a site stored in the remote document
// store. Staging documents carry LastUpdated; live documents additionally
// carry LastPublished, set by the publish operation.
type SiteDocument struct {
	Navbar         Navbar          `json:"navbar"`
	Footer         Footer          `json:"footer"`
	Pages          []Page          `json:"pages"`
	Theme          Theme           `json:"theme"`
	SavedThemes    []Theme         `json:"savedThemes"`
	CustomSections []CustomSection `json:"customSections"`
	LastUpdated    time.Time       `json:"lastUpdated"`
	LastPublished  *time.Time      `json:"lastPublished,omitempty"`
}

// Site converts the document back into a working aggregate.
func (d *SiteDocument) Site() Site {
	return Site{
		Pages:          d.Pages,
		Navbar:         d.Navbar,
		Footer:         d.Footer,
		Theme:          d.Theme,
		SavedThemes:    d.SavedThemes,
		CustomSections: d.CustomSections,
	}
}

// FindPage returns the page with the given ID, or nil.
func (s *Site) FindPage(id string) *Page {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return &s.Pages[i]
		}
	}
	return nil
}

// PageForPath resolves a request path to a page. Unmatched paths fall back
// to the home page; nil is returned only when no home page exists either.
func (s *Site) PageForPath(path string) *Page {
	for i := range s.Pages {
		if s.Pages[i].MatchesPath(path) {
			return &s.Pages[i]
		}
	}
	if home := s.FindPage(HomePageID); home != nil {
		return home
	}
	if len(s.Pages) > 0 {
		return &s.Pages[0]
	}
	return nil
}

// DefaultSite returns the built-in QuickStor marketing site used to seed a
// fresh install and as the per-field fallback when the draft cache is empty.
func DefaultSite() Site {
	return Site{
		Navbar:         DefaultNavbar(),
		Footer:         DefaultFooter(),
		Pages:          []Page{DefaultHomePage()},
		Theme:          DefaultTheme(),
		SavedThemes:    []Theme{DefaultTheme()},
		CustomSections: []CustomSection{},
	}
}

// DefaultNavbar returns the built-in navbar record.
func DefaultNavbar() Navbar {
	return Navbar{
		Logo: "QUICKSTOR",
		Links: []NavLink{
			{Label: "PERFORMANCE", Href: "#performance"},
			{Label: "ZFS TECHNOLOGY", Href: "#zfs"},
			{Label: "SOLUTIONS", Href: "#solutions"},
			{Label: "SUPPORT", Href: "#support"},
		},
		CtaText: "BUILD SERVER",
	}
}

// DefaultFooter returns the built-in footer record.
func DefaultFooter() Footer {
	return Footer{
		BrandName:        "QUICKSTOR",
		BrandDescription: "High-performance ZFS storage appliances for enterprise, media production, and big data.",
		Tagline:          "Engineered in Giza. Deployed Globally.",
		Columns: []FooterColumn{
			{Title: "Hardware", Links: []string{"Z-Series (Performance)", "C-Series (Capacity)", "All-Flash NVMe", "JBOD Expansion"}},
			{Title: "Resources", Links: []string{"ZFS Whitepaper", "Benchmark Results", "Documentation", "Support Portal"}},
			{Title: "Contact", Links: []string{"Sales Online", "sales@quickstor.net", "+20 100 000 0000"}},
		},
		Copyright:  "© 2024 QuickStor Systems. All rights reserved.",
		LegalLinks: []string{"Privacy", "Terms", "SLA"},
	}
}

// DefaultHomePage returns the home page with the stock hero, benchmark
// graph, and feature grid.
func DefaultHomePage() Page {
	return Page{
		ID:    HomePageID,
		Slug:  "/",
		Title: "Home",
		Sections: []Section{
			{
				ID:   "hero-main",
				Type: SectionHero,
				Content: HeroContent{
					Badge:        "V 2.0 // ENTERPRISE READY",
					Title:        HeroTitle{Line1: "DATA AT THE", Highlight: "SPEED OF LIGHT."},
					Subtitle:     "Stop waiting for legacy NAS. QuickStor deploys enterprise-grade ZFS mirroring and RAID-Z3 on bare-metal hardware.",
					PrimaryCta:   "VIEW CONFIGURATIONS",
					SecondaryCta: "WHY ZFS?",
					TrustIndicators: []TrustIndicator{
						{Icon: "ShieldCheck", Text: "99.999% UPTIME"},
						{Icon: "Lock", Text: "AES-256 ENCRYPTED"},
					},
					ServerStatus: &ServerStatus{Status: "ONLINE", Scrub: "SCRUB_COMPLETED", Dedup: "1.45x"},
				},
			},
			{
				ID:   "comparison-graph-1",
				Type: SectionComparisonGraph,
				Content: ComparisonGraphContent{
					Title:       "DOMINATE THE BENCHMARKS",
					Description: "We don't just sell storage; we sell IOPS. By optimizing the ZFS Adaptive Replacement Cache (ARC) and leveraging NVMe L2ARC, QuickStor servers saturate 100GbE links while competitors struggle to fill 10GbE.",
					Data: []ComparisonEntry{
						{Name: "Competitor Q", IOPS: 45000, Throughput: 2200},
						{Name: "Competitor S", IOPS: 42000, Throughput: 2100},
						{Name: "QuickStor Z-Series", IOPS: 125000, Throughput: 6500},
					},
				},
			},
			{
				ID:   "features-main",
				Type: SectionFeatureGrid,
				Content: FeatureGridContent{
					Features: []Feature{
						{
							Icon:        "ShieldCheck",
							Title:       "Self-Healing Data",
							Description: `Every block is checksummed. If ZFS detects silent data corruption ("bit rot"), it automatically repairs the damaged data from parity before you even know it happened.`,
						},
						{
							Icon:        "Cpu",
							Title:       "Open Hardware",
							Description: "No proprietary RAID cards. No vendor lock-in. If a controller fails, plug your drives into any standard HBA and your data is accessible instantly.",
						},
						{
							Icon:        "Activity",
							Title:       "Intelligent Tiering",
							Description: "Hybrid Storage Pools automatically route hot data to NVMe/SSD and cold data to high-capacity HDDs, giving you flash speed at spinning-disk prices.",
						},
					},
				},
			},
		},
	}
}

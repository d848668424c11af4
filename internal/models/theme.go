// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DefaultThemeID identifies the built-in theme. Exactly one theme with this
// ID exists in every saved-themes library and it can never be deleted.
const DefaultThemeID = "default"

// Hero background types.
const (
	HeroBackgroundSolid    = "solid"
	HeroBackgroundGradient = "gradient"
	HeroBackgroundImage    = "image"
)

// ThemeColors is the fixed set of named color tokens, each an RGB hex string.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	SurfaceAlt string `json:"surfaceAlt"`
	Text       string `json:"text"`
	TextMuted  string `json:"textMuted"`
	Border     string `json:"border"`
	Success    string `json:"success"`
	Warning    string `json:"warning"`
	Error      string `json:"error"`
}

// ThemeFonts holds the font-stack strings for the two typographic roles.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// HeroBackground describes how the hero banner background is painted.
type HeroBackground struct {
	BackgroundType  string  `json:"backgroundType"` // solid | gradient | image
	BackgroundValue string  `json:"backgroundValue"`
	OverlayOpacity  float64 `json:"overlayOpacity"`
	GlowColor       string  `json:"glowColor"`
	GlowOpacity     float64 `json:"glowOpacity"`
}

// Theme is a named set of color/font/hero tokens applied across the site.
type Theme struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Colors ThemeColors    `json:"colors"`
	Fonts  ThemeFonts     `json:"fonts"`
	Hero   HeroBackground `json:"hero"`
}

// DefaultTheme returns the built-in "QuickStor Dark" theme. Used whenever
// no theme has been saved and as the revert target when the active theme
// is deleted from the library.
func DefaultTheme() Theme {
	return Theme{
		ID:   DefaultThemeID,
		Name: "QuickStor Dark",
		Colors: ThemeColors{
			Primary:    "#2563eb",
			Secondary:  "#3b82f6",
			Background: "#050505",
			Surface:    "#0a0a0a",
			SurfaceAlt: "#151515",
			Text:       "#ffffff",
			TextMuted:  "#9ca3af",
			Border:     "#1f2937",
			Success:    "#22c55e",
			Warning:    "#eab308",
			Error:      "#ef4444",
		},
		Fonts: ThemeFonts{
			Heading: "Inter, system-ui, sans-serif",
			Body:    "system-ui, -apple-system, sans-serif",
		},
		Hero: HeroBackground{
			BackgroundType:  HeroBackgroundGradient,
			BackgroundValue: "linear-gradient(135deg, #050505 0%, #0a1628 100%)",
			OverlayOpacity:  0.5,
			GlowColor:       "#2563eb",
			GlowOpacity:     0.2,
		},
	}
}

// CSSVariables derives the style-variable mapping injected into rendered
// pages. Keys follow the frontend's custom-property naming.
func (t Theme) CSSVariables() map[string]string {
	return map[string]string{
		"--color-primary":     t.Colors.Primary,
		"--color-secondary":   t.Colors.Secondary,
		"--color-background":  t.Colors.Background,
		"--color-surface":     t.Colors.Surface,
		"--color-surface-alt": t.Colors.SurfaceAlt,
		"--color-text":        t.Colors.Text,
		"--color-text-muted":  t.Colors.TextMuted,
		"--color-border":      t.Colors.Border,
		"--color-success":     t.Colors.Success,
		"--color-warning":     t.Colors.Warning,
		"--color-error":       t.Colors.Error,
		"--font-heading":      t.Fonts.Heading,
		"--font-body":         t.Fonts.Body,
		"--hero-bg":           t.Hero.BackgroundValue,
		"--hero-glow-color":   t.Hero.GlowColor,
	}
}

// ThemeColorsPatch is a partial color update. Nil fields keep their value.
type ThemeColorsPatch struct {
	Primary    *string `json:"primary,omitempty"`
	Secondary  *string `json:"secondary,omitempty"`
	Background *string `json:"background,omitempty"`
	Surface    *string `json:"surface,omitempty"`
	SurfaceAlt *string `json:"surfaceAlt,omitempty"`
	Text       *string `json:"text,omitempty"`
	TextMuted  *string `json:"textMuted,omitempty"`
	Border     *string `json:"border,omitempty"`
	Success    *string `json:"success,omitempty"`
	Warning    *string `json:"warning,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// ThemeFontsPatch is a partial font update.
type ThemeFontsPatch struct {
	Heading *string `json:"heading,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// HeroBackgroundPatch is a partial hero-background update.
type HeroBackgroundPatch struct {
	BackgroundType  *string  `json:"backgroundType,omitempty"`
	BackgroundValue *string  `json:"backgroundValue,omitempty"`
	OverlayOpacity  *float64 `json:"overlayOpacity,omitempty"`
	GlowColor       *string  `json:"glowColor,omitempty"`
	GlowOpacity     *float64 `json:"glowOpacity,omitempty"`
}

// ThemePatch is a partial theme update. Each top-level group merges
// shallowly and independently; keys absent from the patch are preserved.
type ThemePatch struct {
	Name   *string              `json:"name,omitempty"`
	Colors *ThemeColorsPatch    `json:"colors,omitempty"`
	Fonts  *ThemeFontsPatch     `json:"fonts,omitempty"`
	Hero   *HeroBackgroundPatch `json:"hero,omitempty"`
}

// Apply merges the patch into the theme in place.
func (t *Theme) Apply(p ThemePatch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if c := p.Colors; c != nil {
		setString(&t.Colors.Primary, c.Primary)
		setString(&t.Colors.Secondary, c.Secondary)
		setString(&t.Colors.Background, c.Background)
		setString(&t.Colors.Surface, c.Surface)
		setString(&t.Colors.SurfaceAlt, c.SurfaceAlt)
		setString(&t.Colors.Text, c.Text)
		setString(&t.Colors.TextMuted, c.TextMuted)
		setString(&t.Colors.Border, c.Border)
		setString(&t.Colors.Success, c.Success)
		setString(&t.Colors.Warning, c.Warning)
		setString(&t.Colors.Error, c.Error)
	}
	if f := p.Fonts; f != nil {
		setString(&t.Fonts.Heading, f.Heading)
		setString(&t.Fonts.Body, f.Body)
	}
	if h := p.Hero; h != nil {
		setString(&t.Hero.BackgroundType, h.BackgroundType)
		setString(&t.Hero.BackgroundValue, h.BackgroundValue)
		setFloat(&t.Hero.OverlayOpacity, h.OverlayOpacity)
		setString(&t.Hero.GlowColor, h.GlowColor)
		setFloat(&t.Hero.GlowOpacity, h.GlowOpacity)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

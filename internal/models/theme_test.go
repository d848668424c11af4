// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestThemeApplyPartialPatch(t *testing.T) {
	theme := DefaultTheme()
	theme.Apply(ThemePatch{
		Colors: &ThemeColorsPatch{Primary: strPtr("#ff0000")},
	})

	if theme.Colors.Primary != "#ff0000" {
		t.Errorf("primary = %q", theme.Colors.Primary)
	}
	// Everything not named in the patch keeps its value.
	def := DefaultTheme()
	if theme.Colors.Secondary != def.Colors.Secondary {
		t.Errorf("secondary changed: %q", theme.Colors.Secondary)
	}
	if theme.Fonts != def.Fonts {
		t.Errorf("fonts changed: %+v", theme.Fonts)
	}
	if theme.Hero != def.Hero {
		t.Errorf("hero changed: %+v", theme.Hero)
	}
}

func TestThemeApplyHeroPatch(t *testing.T) {
	theme := DefaultTheme()
	theme.Apply(ThemePatch{
		Hero: &HeroBackgroundPatch{
			BackgroundType:  strPtr(HeroBackgroundSolid),
			BackgroundValue: strPtr("#101010"),
			OverlayOpacity:  floatPtr(0.8),
		},
	})

	if theme.Hero.BackgroundType != HeroBackgroundSolid {
		t.Errorf("backgroundType = %q", theme.Hero.BackgroundType)
	}
	if theme.Hero.OverlayOpacity != 0.8 {
		t.Errorf("overlayOpacity = %v", theme.Hero.OverlayOpacity)
	}
	// Glow settings were not in the patch.
	if theme.Hero.GlowColor != DefaultTheme().Hero.GlowColor {
		t.Errorf("glowColor changed: %q", theme.Hero.GlowColor)
	}
}

func TestThemeApplyZeroValues(t *testing.T) {
	// An explicit zero in the patch is applied; it is not "absent".
	theme := DefaultTheme()
	theme.Apply(ThemePatch{
		Hero: &HeroBackgroundPatch{GlowOpacity: floatPtr(0)},
	})
	if theme.Hero.GlowOpacity != 0 {
		t.Errorf("glowOpacity = %v, want 0", theme.Hero.GlowOpacity)
	}
}

func TestThemeCSSVariables(t *testing.T) {
	vars := DefaultTheme().CSSVariables()

	want := map[string]string{
		"--color-primary": "#2563eb",
		"--font-body":     "system-ui, -apple-system, sans-serif",
		"--hero-bg":       "linear-gradient(135deg, #050505 0%, #0a1628 100%)",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("%s = %q, want %q", k, vars[k], v)
		}
	}
}

func TestDefaultThemeID(t *testing.T) {
	if DefaultTheme().ID != DefaultThemeID {
		t.Errorf("id = %q", DefaultTheme().ID)
	}
}

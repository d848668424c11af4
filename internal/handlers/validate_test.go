// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		slug   string
		wantOK bool
	}{
		{"valid", "About", "about", true},
		{"empty slug is fine", "Home", "", true},
		{"blank title", "   ", "x", false},
		{"title too long", strings.Repeat("a", 301), "x", false},
		{"slug too long", "ok", strings.Repeat("a", 301), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePage(tt.title, tt.slug)
			if (msg == "") != tt.wantOK {
				t.Errorf("validatePage(%q, %q) = %q, wantOK %v", tt.title, tt.slug, msg, tt.wantOK)
			}
		})
	}
}

func TestValidateCustomSection(t *testing.T) {
	tests := []struct {
		name    string
		secName string
		html    string
		wantOK  bool
	}{
		{"valid", "Promo", "<section></section>", true},
		{"blank name", "", "<section></section>", false},
		{"blank html", "Promo", "  ", false},
		{"name too long", strings.Repeat("n", 201), "<section></section>", false},
		{"html too long", "Promo", strings.Repeat("x", 500_001), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCustomSection(tt.secName, tt.html)
			if (msg == "") != tt.wantOK {
				t.Errorf("validateCustomSection = %q, wantOK %v", msg, tt.wantOK)
			}
		})
	}
}

func TestValidatePrompt(t *testing.T) {
	if msg := validatePrompt("make a pricing table"); msg != "" {
		t.Errorf("valid prompt rejected: %q", msg)
	}
	if msg := validatePrompt("   "); msg == "" {
		t.Error("blank prompt accepted")
	}
	if msg := validatePrompt(strings.Repeat("p", 4_001)); msg == "" {
		t.Error("overlong prompt accepted")
	}
}

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for editor inputs.
const (
	maxTitleLen      = 300
	maxSlugLen       = 300
	maxNameLen       = 200
	maxPromptLen     = 4_000
	maxCustomHTMLLen = 500_000
)

// validatePage checks page create/update inputs and returns the first
// error found, or "".
func validatePage(title, slug string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateCustomSection checks a custom-section library entry.
func validateCustomSection(name, html string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(html) == "" {
		return "HTML content is required."
	}
	if utf8.RuneCountInString(html) > maxCustomHTMLLen {
		return "HTML content is too long (max 500,000 characters)."
	}
	return ""
}

// validatePrompt checks an AI instruction.
func validatePrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return "Prompt is required."
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 4,000 characters)."
	}
	return ""
}

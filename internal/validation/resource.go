package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NormalizeTitle trims a bucketlist title and checks it is non-empty and within bounds.
func NormalizeTitle(title string) (string, error) {
	return normalizeText("title", title, maxTitleLength)
}

// NormalizeItemName trims an item name and checks it is non-empty and within bounds.
func NormalizeItemName(name string) (string, error) {
	return normalizeText("name", name, maxItemNameLength)
}

func normalizeText(field, value string, limit int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) > limit {
		return "", fmt.Errorf("%s must not exceed %d characters", field, limit)
	}
	return trimmed, nil
}

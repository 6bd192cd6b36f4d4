package service

import (
	"reservo/pkg/sanitizer"
	"strings"
)

func sanitizeID(id string) string {
	return strings.TrimSpace(id)
}

func sanitizeNote(note string) string {
	return sanitizer.NormalizeFreeText(note)
}

package models

import (
	"path/filepath"
	"strings"
)

// ResumeDocument is an uploaded resume held in memory for a single analysis.
type ResumeDocument struct {
	Filename  string
	Extension string
	Content   []byte
}

// NewResumeDocument derives the declared extension from the uploaded filename.
func NewResumeDocument(filename string, content []byte) ResumeDocument {
	return ResumeDocument{
		Filename:  filename,
		Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Content:   content,
	}
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

type DocParserService interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// docParserService shells out to an external converter for legacy .doc files,
// antiword by default. The command receives the temp file path as its last argument.
type docParserService struct {
	storage StorageService
	command string
	args    []string
}

func NewDocParserService(storage StorageService, command string) DocParserService {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"antiword"}
	}

	return &docParserService{
		storage: storage,
		command: fields[0],
		args:    fields[1:],
	}
}

func (d *docParserService) ExtractText(ctx context.Context, data []byte) (string, error) {
	var out []byte

	err := d.storage.WithTempFile(data, ".doc", func(path string) error {
		args := append(append([]string{}, d.args...), path)
		cmd := exec.CommandContext(ctx, d.command, args...)

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		stdout, err := cmd.Output()
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("%s: %w: %s", d.command, err, msg)
			}
			return fmt.Errorf("%s: %w", d.command, err)
		}
		out = stdout
		return nil
	})
	if err != nil {
		return "", newExtractionError("failed to convert DOC file", err)
	}

	text := string(bytes.ToValidUTF8(out, []byte(string(utf8.RuneError))))
	if strings.TrimSpace(text) == "" {
		return "", newExtractionError("no text found in DOC file", nil)
	}

	return text, nil
}

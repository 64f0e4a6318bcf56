package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/duynguyendang/doc2kg/pkg/config"
)

// Subprocess implements Extractor by invoking the python helper
// scripts and decoding their single-line JSON stdout.
type Subprocess struct {
	pythonBin string
	scriptDir string
}

// NewSubprocess creates a subprocess-backed extractor from the runtime
// configuration.
func NewSubprocess(cfg config.Config) *Subprocess {
	return &Subprocess{pythonBin: cfg.PythonBin, scriptDir: cfg.ScriptDir}
}

type textOutput struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Pages   int64  `json:"pages"`
	Error   string `json:"error"`
}

type imagesOutput struct {
	Success bool     `json:"success"`
	Images  []string `json:"images"`
	Error   string   `json:"error"`
}

func (s *Subprocess) ExtractText(ctx context.Context, pdfPath string, ranges RangeSet) (TextResult, error) {
	rangesJSON, err := json.Marshal(ranges)
	if err != nil {
		return TextResult{}, fmt.Errorf("marshal ranges: %w", err)
	}

	script := filepath.Join(s.scriptDir, "extract_text_regions.py")
	out, err := exec.CommandContext(ctx, s.pythonBin, script, pdfPath, string(rangesJSON)).Output()
	if err != nil {
		return TextResult{}, fmt.Errorf("run %s: %w", script, err)
	}
	return decodeTextOutput(out)
}

func (s *Subprocess) ExtractImages(ctx context.Context, pdfPath, outDir, docID string) ([]string, error) {
	script := filepath.Join(s.scriptDir, "extract_images.py")
	out, err := exec.CommandContext(ctx, s.pythonBin, script, pdfPath, outDir, docID).Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", script, err)
	}
	return decodeImagesOutput(out)
}

func decodeTextOutput(out []byte) (TextResult, error) {
	var parsed textOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return TextResult{}, fmt.Errorf("decode extractor output: %w", err)
	}
	if !parsed.Success {
		if parsed.Error == "" {
			parsed.Error = "text extraction failed"
		}
		return TextResult{}, fmt.Errorf("extractor reported: %s", parsed.Error)
	}
	return TextResult{Text: parsed.Text, Pages: parsed.Pages}, nil
}

func decodeImagesOutput(out []byte) ([]string, error) {
	var parsed imagesOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("decode extractor output: %w", err)
	}
	if !parsed.Success {
		if parsed.Error == "" {
			parsed.Error = "image extraction failed"
		}
		return nil, fmt.Errorf("extractor reported: %s", parsed.Error)
	}
	return parsed.Images, nil
}

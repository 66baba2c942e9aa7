// Package stream parses a unified diff line-by-line and drives the
// painter: it classifies each input line, buffers minus/plus runs,
// flushes on run boundaries, and seeds line-number counters from hunk
// headers.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/odvcencio/tint/pkg/config"
	"github.com/odvcencio/tint/pkg/paint"
)

var hunkHeaderRegexp = regexp.MustCompile(`^@@+ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@(.*)$`)

const maxLineBytes = 4 * 1024 * 1024

// Processor walks one diff stream, holding the parse state between
// lines.
type Processor struct {
	painter *paint.Painter
	cfg     *config.Config

	state     paint.State
	minusFile string
	plusFile  string
}

// New builds a Processor driving the given painter.
func New(p *paint.Painter, cfg *config.Config) *Processor {
	return &Processor{painter: p, cfg: cfg, state: paint.Unknown}
}

// Process reads a unified diff from r and writes the rendered output
// through the painter's sink. Input that already carries ANSI styling is
// stripped before classification, so piping colorized git output works.
func Process(r io.Reader, p *paint.Painter, cfg *config.Config) error {
	proc := New(p, cfg)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := proc.Line(scanner.Text()); err != nil {
			return err
		}
		if err := p.Emit(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read diff: %w", err)
	}
	if err := proc.Flush(); err != nil {
		return err
	}
	return p.Emit()
}

// Line consumes one raw input line, without its newline.
func (s *Processor) Line(raw string) error {
	line := ansi.Strip(raw)

	switch {
	case strings.HasPrefix(line, "commit "):
		if err := s.Flush(); err != nil {
			return err
		}
		s.state = paint.CommitMeta
		s.painter.PaintHeaderLine(line, s.cfg.CommitStyle)
		return nil

	case strings.HasPrefix(line, "diff --git "):
		if err := s.Flush(); err != nil {
			return err
		}
		s.state = paint.FileMeta
		s.minusFile, s.plusFile = "", ""
		return nil

	case s.state == paint.FileMeta && strings.HasPrefix(line, "--- "):
		s.minusFile = parseFileHeaderPath(line[len("--- "):])
		return nil

	case s.state == paint.FileMeta && strings.HasPrefix(line, "+++ "):
		s.plusFile = parseFileHeaderPath(line[len("+++ "):])
		s.paintFileHeader()
		return nil

	case strings.HasPrefix(line, "@@"):
		if m := hunkHeaderRegexp.FindStringSubmatch(line); m != nil {
			if err := s.Flush(); err != nil {
				return err
			}
			s.state = paint.HunkHeader
			minusStart, _ := strconv.Atoi(m[1])
			plusStart, _ := strconv.Atoi(m[2])
			s.painter.MinusLineNumber = minusStart
			s.painter.PlusLineNumber = plusStart
			return s.paintHunkHeader(line, m[3])
		}
	}

	if s.inHunk() {
		return s.hunkLine(line)
	}

	// File metadata the renderer has no styling for (index, mode and
	// rename lines, binary notices) and anything unclassified passes
	// through untouched.
	s.painter.PaintRawLine(raw)
	return nil
}

// Flush paints any buffered minus/plus run.
func (s *Processor) Flush() error {
	return s.painter.PaintBufferedLines()
}

func (s *Processor) inHunk() bool {
	switch s.state {
	case paint.HunkHeader, paint.HunkMinus, paint.HunkZero, paint.HunkPlus:
		return true
	}
	return false
}

func (s *Processor) hunkLine(line string) error {
	switch {
	case strings.HasPrefix(line, "-"):
		s.state = paint.HunkMinus
		s.painter.MinusLines = append(s.painter.MinusLines, s.bufferize(line))
	case strings.HasPrefix(line, "+"):
		s.state = paint.HunkPlus
		s.painter.PlusLines = append(s.painter.PlusLines, s.bufferize(line))
	case line == "" || strings.HasPrefix(line, " "):
		if err := s.Flush(); err != nil {
			return err
		}
		s.state = paint.HunkZero
		if line == "" {
			line = " "
		}
		return s.painter.PaintZeroLine(s.bufferize(line))
	case strings.HasPrefix(line, `\`):
		// "\ No newline at end of file"
		if err := s.Flush(); err != nil {
			return err
		}
		s.painter.PaintRawLine(line)
		return nil
	default:
		if err := s.Flush(); err != nil {
			return err
		}
		s.state = paint.Unknown
		s.painter.PaintRawLine(line)
		return nil
	}
	if len(s.painter.MinusLines) > s.cfg.MaxBufferedLines ||
		len(s.painter.PlusLines) > s.cfg.MaxBufferedLines {
		return s.Flush()
	}
	return nil
}

// bufferize prepares a classified hunk line for the paint buffers: tabs
// expanded, marker retained, newline re-appended.
func (s *Processor) bufferize(line string) string {
	return s.expandTabs(line) + "\n"
}

func (s *Processor) expandTabs(line string) string {
	if s.cfg.TabWidth <= 0 || !strings.Contains(line, "\t") {
		return line
	}
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", s.cfg.TabWidth))
}

func (s *Processor) paintFileHeader() {
	s.painter.SetSyntaxFile(syntaxPath(s.minusFile, s.plusFile))
	s.painter.PaintHeaderLine(fileChangeDescription(
		s.minusFile, s.plusFile,
		s.cfg.FileAddedLabel, s.cfg.FileRemovedLabel,
		s.cfg.FileRenamedLabel, s.cfg.FileModifiedLabel,
	), s.cfg.FileStyle)
}

func (s *Processor) paintHunkHeader(line, trailing string) error {
	if s.cfg.HunkHeaderStyle.IsRaw {
		s.painter.PaintRawLine(line)
		return nil
	}
	// The code snippet after the closing @@ is what gets displayed;
	// a bare header falls back to the header text itself.
	code := strings.TrimSpace(trailing)
	if code == "" {
		code = line
	}
	return s.painter.PaintHunkHeaderLine(s.expandTabs(code) + "\n")
}

// parseFileHeaderPath extracts the path from the body of a "--- " or
// "+++ " header line, dropping the git prefix and any timestamp.
func parseFileHeaderPath(body string) string {
	if i := strings.IndexByte(body, '\t'); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSuffix(body, " ")
	if body == "/dev/null" {
		return body
	}
	for _, prefix := range []string{"a/", "b/", "i/", "w/", "c/", "o/"} {
		if strings.HasPrefix(body, prefix) {
			return body[len(prefix):]
		}
	}
	return body
}

// syntaxPath picks the file path used for lexer selection: the new side
// of the diff when it exists, otherwise the old side.
func syntaxPath(minusFile, plusFile string) string {
	if plusFile != "" && plusFile != "/dev/null" {
		return plusFile
	}
	if minusFile != "/dev/null" {
		return minusFile
	}
	return ""
}

// fileChangeDescription formats the single header line shown for a file:
// label plus path, with renames showing both sides.
func fileChangeDescription(minusFile, plusFile, added, removed, renamed, modified string) string {
	label, path := "", ""
	switch {
	case minusFile == "/dev/null":
		label, path = added, plusFile
	case plusFile == "/dev/null":
		label, path = removed, minusFile
	case minusFile != plusFile:
		label, path = renamed, minusFile+" ⟶ "+plusFile
	default:
		label, path = modified, plusFile
	}
	if label == "" {
		return path
	}
	return label + " " + path
}

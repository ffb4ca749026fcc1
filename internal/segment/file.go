package segment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the segments file looked up when no explicit path
// is configured.
const DefaultFileName = "segments.txt"

// Load reads a segment list from a comma-separated file. Blank lines
// and lines starting with "#" are ignored. A header row is recognized
// case-insensitively when it contains a "duration" column and one of
// "name", "segment" or "title". Malformed rows are skipped rather than
// failing the whole load. A missing file yields an empty list and no
// error; callers fall back to Default().
func Load(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read segments file: %w", err)
	}
	return parseList(string(data))
}

func parseList(content string) ([]Segment, error) {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse segments file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	nameCol, durCol, hasHeader := detectHeader(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	var segments []Segment
	for _, row := range rows[start:] {
		if len(row) == 0 {
			continue
		}
		name, durText, ok := pickColumns(row, nameCol, durCol)
		if !ok {
			continue
		}
		duration, err := ParseDuration(durText)
		if err != nil {
			// Skip malformed rows individually.
			continue
		}
		segments = append(segments, Segment{Name: name, Duration: duration})
	}
	return segments, nil
}

// detectHeader returns the name and duration column indexes when the
// first row is a header, or the positional defaults (0, 1) otherwise.
func detectHeader(first []string) (nameCol, durCol int, hasHeader bool) {
	nameCol, durCol = 0, 1
	foundDur := -1
	foundName := -1
	for i, cell := range first {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "duration":
			foundDur = i
		case "name", "segment", "title":
			if foundName == -1 {
				foundName = i
			}
		}
	}
	if foundDur >= 0 && foundName >= 0 {
		return foundName, foundDur, true
	}
	return nameCol, durCol, false
}

func pickColumns(row []string, nameCol, durCol int) (name, durText string, ok bool) {
	if nameCol >= len(row) || durCol >= len(row) {
		return "", "", false
	}
	return strings.TrimSpace(row[nameCol]), strings.TrimSpace(row[durCol]), true
}

// Save writes the segment list as "name,MM:SS" rows under a fixed
// header line.
func Save(path string, segments []Segment) error {
	var b strings.Builder
	b.WriteString("name,duration\n")
	for _, s := range segments {
		seconds := int(s.Duration.Seconds())
		fmt.Fprintf(&b, "%s,%02d:%02d\n", s.Name, seconds/60, seconds%60)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write segments file: %w", err)
	}
	return nil
}

// FindFile resolves the segments file path: the explicit path when
// given, otherwise segments.txt in the working directory, otherwise
// next to the executable. The last candidate is returned even when no
// file exists so saves have a destination.
func FindFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultFileName))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), DefaultFileName))
	}
	if len(candidates) == 0 {
		return DefaultFileName
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return candidates[len(candidates)-1]
}

// LoadOrDefault loads segments from path and substitutes the built-in
// list when the file is missing, unreadable or contains no valid rows.
func LoadOrDefault(path string) []Segment {
	segments, err := Load(path)
	if err != nil || len(segments) == 0 {
		return Default()
	}
	return segments
}

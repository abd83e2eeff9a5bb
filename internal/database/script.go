package database

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SplitStatements reads a script and returns its statements. Lines are
// trimmed and blank lines dropped; with skipComments, lines starting with
// "--" are dropped too. A statement ends at a line whose last character is
// ';' and its lines are joined with single spaces. The terminating ';' is
// removed. Trailing text with no terminator is ignored.
func SplitStatements(r io.Reader, skipComments bool) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var statements []string
	var current []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (skipComments && strings.HasPrefix(line, "--")) {
			continue
		}
		current = append(current, line)
		if strings.HasSuffix(line, ";") {
			stmt := strings.TrimSuffix(strings.Join(current, " "), ";")
			if stmt = strings.TrimSpace(stmt); stmt != "" {
				statements = append(statements, stmt)
			}
			current = current[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return statements, nil
}

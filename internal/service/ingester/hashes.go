package ingester

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadHashes reads one transaction hash per line. Blank lines and lines starting with '#' are skipped.
func ReadHashes(r io.Reader) ([]string, error) {
	var hashes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hashes = append(hashes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hashes: %w", err)
	}
	return hashes, nil
}

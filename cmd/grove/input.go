package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gordian-engine/grove"
	"github.com/gordian-engine/grove/ghash"
)

// leafSource reads leaves, one per line, from files or from stdin.
type leafSource struct {
	log   *slog.Logger
	stdin io.Reader

	// Interpret each line as a hex digest instead of raw data.
	prehashed bool
}

func (s leafSource) readLeaves(paths []string) ([]grove.Leaf, error) {
	if len(paths) == 0 {
		return s.scanLeaves(s.stdin, "stdin", nil)
	}

	var leaves []grove.Leaf
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("failed to open leaf file: %w", err)
		}
		leaves, err = s.scanLeaves(f, p, leaves)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
	}
	return leaves, nil
}

func (s leafSource) scanLeaves(r io.Reader, name string, dst []grove.Leaf) ([]grove.Leaf, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++

		if !s.prehashed {
			// The scanner reuses its buffer, so the line must be copied.
			dst = append(dst, grove.RawLeaf([]byte(sc.Text())))
			continue
		}

		d, err := ghash.ParseDigest(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		if d.IsEmpty() {
			s.log.Warn(
				"All-zero leaf digest is indistinguishable from padding",
				"file", name, "line", lineNo,
			)
		}
		dst = append(dst, grove.DigestLeaf(d))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return dst, nil
}

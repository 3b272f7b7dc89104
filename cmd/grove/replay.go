package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gordian-engine/grove"
	"github.com/gordian-engine/grove/ghash"
)

// replay applies each operation line from r to t,
// calling report after every successful operation.
//
// Blank lines and lines beginning with '#' are skipped.
func replay(t *grove.Tree, r io.Reader, report func(lineNo int) error) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := applyOp(t, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := report(lineNo); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

func applyOp(t *grove.Tree, line string) error {
	op, rest, _ := strings.Cut(line, " ")
	switch op {
	case "add":
		t.AddLeaf([]byte(rest))
		return nil

	case "add-digest":
		d, err := ghash.ParseDigest(rest)
		if err != nil {
			return err
		}
		t.AddDigest(d)
		return nil

	case "update":
		idxStr, value, ok := strings.Cut(rest, " ")
		if !ok {
			return fmt.Errorf("update requires an index and a value")
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", idxStr, err)
		}
		return t.UpdateLeaf(idx, []byte(value))

	case "remove":
		idx, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", rest, err)
		}
		return t.RemoveLeaf(idx)

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

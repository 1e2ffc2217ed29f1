package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiter selects the token separator used by ReadText.
type Delimiter int

const (
	// DelimiterSpace splits on runs of whitespace (the DL8.5 benchmark
	// corpus format: label first, then one 0/1 token per attribute).
	DelimiterSpace Delimiter = iota
	// DelimiterComma splits on literal commas (CSV).
	DelimiterComma
)

// ReaderOptions configures ReadText: a delimiter, an optional comment
// prefix, an optional header line to skip, and the column holding the
// label.
type ReaderOptions struct {
	Delimiter   Delimiter
	HasHeader   bool
	CommentChar rune // 0 disables comment skipping
	LabelColumn int  // defaults to 0
}

// DefaultReaderOptions matches the common benchmark-corpus layout:
// whitespace delimited, '#' comments, label in column 0, no header.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Delimiter:   DelimiterSpace,
		HasHeader:   false,
		CommentChar: '#',
		LabelColumn: 0,
	}
}

// ReadText parses r line-by-line into a StaticDataset per opts. Blank
// lines and comment lines (when CommentChar != 0) are skipped. Returns
// ErrRaggedRows if attribute column counts disagree across rows.
func ReadText(r io.Reader, opts ReaderOptions) (*StaticDataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var featureRows [][]int
	var labels []int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if opts.CommentChar != 0 && rune(line[0]) == opts.CommentChar {
			continue
		}
		if opts.HasHeader && lineNo == 1 {
			continue
		}

		tokens := splitTokens(line, opts.Delimiter)
		row := make([]int, 0, len(tokens)-1)
		label := -1
		for col, tok := range tokens {
			v, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("dataset: line %d column %d: %w", lineNo, col+1, err)
			}
			if col == opts.LabelColumn {
				label = v
				continue
			}
			row = append(row, v)
		}
		if label < 0 {
			return nil, fmt.Errorf("dataset: line %d: missing label column %d", lineNo, opts.LabelColumn)
		}
		featureRows = append(featureRows, row)
		labels = append(labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return FromArrays(featureRows, labels)
}

// ReadCSV is ReadText with comma delimiting and no comment skipping,
// the common case for exported training matrices.
func ReadCSV(r io.Reader) (*StaticDataset, error) {
	opts := DefaultReaderOptions()
	opts.Delimiter = DelimiterComma
	opts.CommentChar = 0

	return ReadText(r, opts)
}

func splitTokens(line string, d Delimiter) []string {
	switch d {
	case DelimiterComma:
		return strings.Split(line, ",")
	default:
		return strings.Fields(line)
	}
}

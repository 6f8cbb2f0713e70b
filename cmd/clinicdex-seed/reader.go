package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode"

	clinicdex "github.com/kailas-cloud/clinicdex/pkg/sdk"
)

// recordCallback is called for every decoded record. seq is the zero-based
// position in the input. Returning false stops reading.
type recordCallback func(rec *clinicdex.Record, seq int) bool

// readRecords streams clinic records from r. The input is either a JSON
// array of objects or newline-delimited JSON objects.
func readRecords(r io.Reader, fn recordCallback) error {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("read array start: %w", err)
		}
		for seq := 0; dec.More(); seq++ {
			var rec clinicdex.Record
			if err := dec.Decode(&rec); err != nil {
				return fmt.Errorf("decode record %d: %w", seq, err)
			}
			if !fn(&rec, seq) {
				return nil
			}
		}
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("read array end: %w", err)
		}
		return nil
	}

	for seq := 0; ; seq++ {
		var rec clinicdex.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode record %d: %w", seq, err)
		}
		if !fn(&rec, seq) {
			return nil
		}
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

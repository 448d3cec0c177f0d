package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt asks for every parameter on out and reads one answer per line from
// in. An empty or malformed answer silently keeps the current value, which is
// the default unless a file or env var set it. The returned Config is a copy
// of cfg.
func Prompt(in io.Reader, out io.Writer, cfg *Config) (*Config, error) {
	next := *cfg
	scanner := bufio.NewScanner(in)

	for _, f := range fields {
		if f.prompt == "" {
			continue
		}

		fmt.Fprintf(out, "%s [%s]: ", f.prompt, f.get(&next))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPrompt, err)
			}
			// EOF keeps the remaining values
			fmt.Fprintln(out)
			break
		}

		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}

		// set leaves the value untouched on error
		_ = f.set(&next, answer)
	}

	return &next, nil
}

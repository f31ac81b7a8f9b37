package main

import (
	"fmt"
	"io"
	"os"
)

// eachInput calls f with a reader for each file, or for stdin if there are
// no files. A file named "-" is stdin.
func eachInput(files []string, stdin io.Reader, f func(name string, r io.Reader) error) error {
	if len(files) == 0 {
		return f("-", stdin)
	}
	for _, file := range files {
		if err := eachFile(file, stdin, f); err != nil {
			return err
		}
	}
	return nil
}

func eachFile(file string, stdin io.Reader, f func(name string, r io.Reader) error) error {
	if file == "-" {
		return f(file, stdin)
	}
	fd, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", file, err)
	}
	defer fd.Close()
	return f(file, fd)
}

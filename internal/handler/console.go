package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console reads operator input line by line. When echo is set (stdin is not
// a terminal) each line read is written back so transcripts stay readable.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	echo   bool
}

// NewConsole creates a new Console.
func NewConsole(in io.Reader, out io.Writer, echo bool) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
		echo:   echo,
	}
}

// Prompt prints label and returns the next trimmed line. A final line without
// a trailing newline is still returned; io.EOF comes on the following call.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	line, err := c.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		fmt.Fprintln(c.out)
		return "", err
	}

	line = strings.TrimSpace(line)
	if c.echo {
		fmt.Fprintln(c.out, line)
	}
	return line, nil
}

package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const invalidNumberNotice = "Please enter a whole number."

// prompter reads one line of operator input per question.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// line writes the question and returns the trimmed answer, or io.EOF when the input is exhausted.
func (p *prompter) line(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return strings.TrimSpace(p.scanner.Text()), nil
}

// number asks until the answer parses as an integer.
func (p *prompter) number(question string) (int, error) {
	for {
		answer, err := p.line(question)
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(answer)
		if convErr == nil {
			return n, nil
		}

		if _, err = fmt.Fprintln(p.out, invalidNumberNotice); err != nil {
			return 0, err
		}
	}
}

// id asks for a record id.
func (p *prompter) id(question string) (int64, error) {
	n, err := p.number(question)
	return int64(n), err
}

// confirm reports whether the answer is y or Y. Any other answer declines.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.line(question + " (y/n): ")
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "y"), nil
}

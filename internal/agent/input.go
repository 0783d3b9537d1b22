package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// UserInput is the blocking user-input collaborator. ReadLine returns the
// raw line with no empty-input sentinel: empty text is a normal user message.
// io.EOF means the input source is gone and the conversation should end.
type UserInput interface {
	ReadLine(ctx context.Context) (string, error)
}

// ScannerInput reads user lines from r, printing a prompt to w before each
// read. It is the production stdin collaborator.
type ScannerInput struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewScannerInput creates a ScannerInput. prompt may be nil to suppress the
// "You: " prompt.
func NewScannerInput(r io.Reader, prompt io.Writer) *ScannerInput {
	return &ScannerInput{scanner: bufio.NewScanner(r), prompt: prompt}
}

func (s *ScannerInput) ReadLine(ctx context.Context) (string, error) {
	if s.prompt != nil {
		fmt.Fprint(s.prompt, "You: ")
	}

	type scanResult struct {
		ok bool
	}
	done := make(chan scanResult, 1)
	go func() {
		done <- scanResult{ok: s.scanner.Scan()}
	}()

	select {
	case res := <-done:
		if !res.ok {
			if err := s.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return s.scanner.Text(), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

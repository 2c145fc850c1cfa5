package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// ExecSynthesizer shells out to a local text-to-speech command such as
// espeak-ng or say, passing the utterance as the final argument.
type ExecSynthesizer struct {
	command string
	args    []string

	mu      sync.Mutex
	current *exec.Cmd
}

func NewExecSynthesizer(command string, args []string) *ExecSynthesizer {
	return &ExecSynthesizer{command: command, args: args}
}

func (s *ExecSynthesizer) Speak(ctx context.Context, lang, text string) error {
	args := make([]string, 0, len(s.args)+1)
	args = append(args, s.args...)
	args = append(args, text)

	cmd := exec.CommandContext(ctx, s.command, args...)

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	err := cmd.Run()

	s.mu.Lock()
	if s.current == cmd {
		s.current = nil
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("run %s: %w", s.command, err)
	}
	return nil
}

func (s *ExecSynthesizer) Cancel() {
	s.mu.Lock()
	cmd := s.current
	s.current = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

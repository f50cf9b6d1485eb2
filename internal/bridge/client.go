package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// Supervisor is the Go-side counterpart used only by the compiler itself
// (never by generated code, which links the Rust runtime_crate.go source
// instead). Probe uses it to check that a worker path answers a ping;
// cmd/tnk does not call Probe, so a path given with `tnk --worker <path>`
// is not checked before the program is emitted. It drives the worker
// through exec.Command with piped stdin/stdout rather than a
// process-management library.
type Supervisor struct {
	cmd       *exec.Cmd
	stdin     *bufio.Writer
	stdout    *bufio.Reader
	sessionID string
	nextReqID int64
}

// Probe spawns workerPath, sends the worker's ping op, and reports whether
// it answered within timeout.
func Probe(workerPath string, timeout time.Duration) error {
	s, err := newSupervisor(workerPath)
	if err != nil {
		return fmt.Errorf("bridge: starting worker %s: %w", workerPath, err)
	}
	defer s.cmd.Process.Kill()

	done := make(chan error, 1)
	go func() { done <- s.ping() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("bridge: worker %s did not respond to ping within %s", workerPath, timeout)
	}
}

func newSupervisor(workerPath string) (*Supervisor, error) {
	cmd := exec.Command("python3", "-u", workerPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &Supervisor{
		cmd:       cmd,
		stdin:     bufio.NewWriter(stdin),
		stdout:    bufio.NewReader(stdout),
		sessionID: uuid.NewString(),
		nextReqID: 1,
	}, nil
}

func (s *Supervisor) ping() error {
	req := Request{Cmd: CmdPing, SessionID: s.sessionID, ReqID: s.nextReqID}
	s.nextReqID++
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if _, err := s.stdin.Write(append(data, '\n')); err != nil {
		return err
	}
	if err := s.stdin.Flush(); err != nil {
		return err
	}
	line, err := s.stdout.ReadString('\n')
	if err != nil {
		return fmt.Errorf("bridge: reading ping response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return fmt.Errorf("bridge: malformed ping response: %w", err)
	}
	if resp.Kind != "ok" {
		return fmt.Errorf("bridge: ping failed: %+v", resp.Error)
	}
	return nil
}

//go:build unix

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"

	"smashtest/internal/config"
)

// Interactive simulates an operator typing at a terminal: scripted lines
// are written to the controller end of a PTY with a pause after each, then
// SIGINT is delivered to the shell's process group, then a final quit
// command lets the shell exit on its own terms.
type Interactive struct {
	Bin string
	Env []string
	// Timing paces the session. See config.Timing for what each delay
	// protects.
	Timing config.Timing
	// Interrupt is delivered to the whole process group after the script,
	// so children forked by the shell observe it too.
	Interrupt syscall.Signal
	// Terminator is the command sent last so the shell exits cleanly.
	Terminator string
}

// NewInteractive returns an Interactive runner with the reference
// interrupt (SIGINT) and terminator ("quit").
func NewInteractive(bin string, env []string, timing config.Timing) *Interactive {
	return &Interactive{
		Bin:        bin,
		Env:        env,
		Timing:     timing,
		Interrupt:  syscall.SIGINT,
		Terminator: "quit",
	}
}

// session owns the PTY pair and the child process for one run. Every exit
// path must release both: release() closes the controller end, and the
// child is reaped either by await or by kill.
type session struct {
	ptm    *os.File
	cmd    *exec.Cmd
	pgid   int
	waitCh chan error
}

// Run drives one interactive session and writes the captured output, with
// carriage returns stripped, to outPath.
func (r *Interactive) Run(ctx context.Context, scriptPath, outPath string) error {
	lines, err := readScript(scriptPath)
	if err != nil {
		return harnessErr("read script", err)
	}

	s, err := r.start()
	if err != nil {
		return err
	}
	defer s.release()

	// Drain the controller end concurrently so the kernel PTY buffer can
	// never fill up and stall the child. The buffer is only read from the
	// main goroutine after readDone closes.
	var out bytes.Buffer
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		// Read ends with EIO once the child exits and no subordinate-end
		// descriptors remain open; that is the normal EOF here.
		_, _ = io.Copy(&out, s.ptm)
	}()

	runErr := r.script(ctx, s, lines)
	if runErr == nil {
		runErr = s.await(ctx, r.Timing.ExitWait)
	}
	if runErr != nil {
		s.kill()
		<-readDone
		return runErr
	}
	<-readDone

	text := strings.ReplaceAll(out.String(), "\r", "")
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return harnessErr("write output", err)
	}
	return nil
}

// start allocates the PTY pair and spawns the shell as the leader of a new
// session (and therefore of a new process group) with stdin, stdout and
// stderr on the subordinate end.
func (r *Interactive) start() (*session, error) {
	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, harnessErr("allocate pty", err)
	}

	// Echo would copy every scripted line back into the captured output
	// and diverge from the pipe-captured golden transcripts.
	if err := disableEcho(pts); err != nil {
		ptm.Close()
		pts.Close()
		return nil, harnessErr("configure pty", err)
	}

	cmd := exec.Command(r.Bin)
	cmd.Stdin = pts
	cmd.Stdout = pts
	cmd.Stderr = pts
	cmd.Env = r.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		ptm.Close()
		pts.Close()
		return nil, harnessErr("start "+r.Bin, err)
	}
	// The child holds its own subordinate descriptors now. Ours must go,
	// or reads on the controller end would never return after the child
	// exits.
	pts.Close()

	s := &session{ptm: ptm, cmd: cmd, waitCh: make(chan error, 1)}
	go func() { s.waitCh <- cmd.Wait() }()

	// The signal is sent to the group, so confirm the child actually
	// leads one before anything else happens.
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		s.pgid = cmd.Process.Pid
		s.kill()
		ptm.Close()
		return nil, harnessErr("resolve process group", err)
	}
	if pgid != cmd.Process.Pid {
		s.pgid = cmd.Process.Pid
		s.kill()
		ptm.Close()
		return nil, harnessErr("process group", fmt.Errorf("child %d is in group %d, not its leader", cmd.Process.Pid, pgid))
	}
	s.pgid = pgid
	return s, nil
}

// script plays the scripted timeline: paced input lines, the interrupt to
// the process group, then the terminator.
func (r *Interactive) script(ctx context.Context, s *session, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(s.ptm, line+"\n"); err != nil {
			return harnessErr("send input", err)
		}
		if err := sleep(ctx, r.Timing.PerLine); err != nil {
			return harnessErr("session canceled", err)
		}
	}

	if err := sleep(ctx, r.Timing.BeforeInterrupt); err != nil {
		return harnessErr("session canceled", err)
	}
	if err := s.signal(r.Interrupt); err != nil {
		return harnessErr("interrupt process group", err)
	}

	if err := sleep(ctx, r.Timing.BeforeQuit); err != nil {
		return harnessErr("session canceled", err)
	}
	if _, err := io.WriteString(s.ptm, r.Terminator+"\n"); err != nil {
		return harnessErr("send terminator", err)
	}
	return nil
}

// signal delivers sig to the whole process group.
func (s *session) signal(sig syscall.Signal) error {
	return syscall.Kill(-s.pgid, sig)
}

// await blocks until the child exits, bounding the wait. A shell that
// ignores the terminator is a harness fault, not a FAIL verdict.
func (s *session) await(ctx context.Context, limit time.Duration) error {
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case <-s.waitCh:
		// Exit status is irrelevant: whatever the shell printed before
		// dying is what gets compared.
		return nil
	case <-timer.C:
		return harnessErr("await exit", fmt.Errorf("%s did not exit within %s of the terminator", s.cmd.Path, limit))
	case <-ctx.Done():
		return harnessErr("await exit", ctx.Err())
	}
}

// kill forcibly terminates the process group and reaps the child.
func (s *session) kill() {
	_ = syscall.Kill(-s.pgid, syscall.SIGKILL)
	<-s.waitCh
}

// release closes the controller end. Idempotent via os.File semantics.
func (s *session) release() {
	_ = s.ptm.Close()
}

// sleep pauses for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

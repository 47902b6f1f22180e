package command

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

type CommandExecutor interface {
	RunCommandWithTimeout(executable string, timeout time.Duration, args ...string) (chan *string, chan error)
}

type DefaultCommandExecutor struct{}

func (command *DefaultCommandExecutor) RunCommandWithTimeout(
	executable string,
	timeout time.Duration,
	args ...string,
) (chan *string, chan error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	cmd := exec.CommandContext(ctx, executable, args...)

	resultChannel := make(chan *string, 1)
	errorChannel := make(chan error, 1)

	go func() {
		defer cancel()

		stdout, err := cmd.Output()

		if ctx.Err() == context.DeadlineExceeded {
			errorChannel <- fmt.Errorf("operation timed out after %d seconds", int(timeout.Seconds()))
			close(resultChannel)
			return
		}

		if err != nil && !strings.Contains(err.Error(), "exit status 101") {
			errorChannel <- err
		} else {
			stdoutString := string(stdout)
			resultChannel <- &stdoutString
		}

		close(resultChannel)
	}()

	return resultChannel, errorChannel
}

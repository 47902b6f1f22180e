package testutils

import (
	"errors"
	"fmt"
	"time"
)

// MockCommandExecutor satisfies command.CommandExecutor. It records the
// invocation so tests can assert on the executable and arguments passed.
type MockCommandExecutor struct {
	MockStdoutResult string
	MockExitCode     int

	CapturedExecutable string
	CapturedArgs       []string
}

func (command *MockCommandExecutor) RunCommandWithTimeout(
	executable string,
	timeout time.Duration,
	args ...string,
) (chan *string, chan error) {
	command.CapturedExecutable = executable
	command.CapturedArgs = args

	resultChannel := make(chan *string, 1)
	errorChannel := make(chan error, 1)

	go func() {
		if command.MockExitCode != 0 {
			errorChannel <- errors.New(fmt.Sprintf("exit status %d", command.MockExitCode))
		} else {
			resultChannel <- &command.MockStdoutResult
		}
	}()

	return resultChannel, errorChannel
}

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tunedeck/command"
	playerinterface "tunedeck/player/interfaces"
)

var (
	ErrorNoStreamFound       = errors.New("no stream found")
	ErrorInvalidResolverData = errors.New("invalid resolver data")
)

// resolverTrack is the metadata JSON the resolver tool prints after the
// stream URL line.
type resolverTrack struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Ext            string `json:"ext"`
	Duration       int    `json:"duration"`
	FileSize       int64  `json:"filesize"`
	FileSizeApprox int64  `json:"filesize_approx"`
}

// Client resolves catalog track ids to streamable URLs through an external
// resolver tool and reports scrobbles to the catalog endpoint. Both are
// best-effort collaborators; neither may block playback.
type Client struct {
	executor         command.CommandExecutor
	tool             string
	streamUrlTimeout time.Duration
	logger           *log.Logger

	scrobbleURL string
	httpClient  *http.Client

	streamUrlExpireRegex *regexp.Regexp
}

func NewClient(tool string, resolveTimeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		executor:             &command.DefaultCommandExecutor{},
		tool:                 tool,
		streamUrlTimeout:     resolveTimeout,
		logger:               logger.With("component", "catalog"),
		streamUrlExpireRegex: regexp.MustCompile("(expire)(\\/|=)(\\d+)(\\/|=|&|$)"),
	}
}

func (client *Client) SetCmdExecutor(executor command.CommandExecutor) {
	client.executor = executor
}

// ResolveStreamURL asks the resolver tool for a streaming URL and container
// metadata for the given catalog id.
func (client *Client) ResolveStreamURL(id string) (*playerinterface.StreamSource, error) {
	toolPath := client.resolverPath()

	replacer := strings.NewReplacer(
		"\"", "",
		"'", "",
	)

	args := []string{
		replacer.Replace(id),
		"--quiet",
		"--no-color",
		"--get-url",
		"--print-json",
	}

	resultChannel, errorChannel := client.executor.RunCommandWithTimeout(toolPath, client.streamUrlTimeout, args...)

	var stdout string

	select {
	case result := <-resultChannel:
		stdout = *result
	case err := <-errorChannel:
		return nil, err
	}

	if len(stdout) == 0 {
		return nil, ErrorNoStreamFound
	}

	urlAndJson := strings.Split(stdout, "\n")

	if len(urlAndJson) < 2 {
		return nil, ErrorInvalidResolverData
	}

	streamURL := urlAndJson[0]
	trackJson := urlAndJson[1]

	var track resolverTrack
	if err := json.Unmarshal([]byte(trackJson), &track); err != nil {
		return nil, err
	}

	source := &playerinterface.StreamSource{
		URL:          streamURL,
		Ext:          track.Ext,
		ExpectedSize: track.FileSize,
	}

	if source.Ext == "" {
		source.Ext = "mp3"
	}

	if source.ExpectedSize == 0 {
		source.ExpectedSize = track.FileSizeApprox
	}

	streamExpireUnixSecondsMatch := client.streamUrlExpireRegex.FindStringSubmatch(streamURL)

	if len(streamExpireUnixSecondsMatch) >= 4 {
		unixSeconds, err := strconv.ParseInt(streamExpireUnixSecondsMatch[3], 10, 64)

		if err == nil && unixSeconds > 0 {
			expirationTime := time.Unix(unixSeconds, 0)
			source.ExpiresAt = &expirationTime
		}
	}

	return source, nil
}

// resolverPath resolves the tool on PATH when possible. A bare name falls
// through so the executor reports the real launch error.
func (client *Client) resolverPath() string {
	path, err := exec.LookPath(client.tool)

	if err != nil {
		return client.tool
	}

	return path
}

// Verify implements playerinterface.StreamResolver
var _ playerinterface.StreamResolver = (*Client)(nil)

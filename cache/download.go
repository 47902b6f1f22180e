package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"tunedeck/entities"
)

const (
	// defaultReadyBytes is how much leading data must be on disk before the
	// download is reported playable.
	defaultReadyBytes int64 = 64 * 1024

	copyChunkSize = 32 * 1024
)

// Download is one progressive track download. Bytes stream into a part file
// that playback may read while the transfer is still running; the file is
// renamed to its final cache name only on completion.
type Download struct {
	url       string
	partPath  string
	finalPath string

	ready  chan struct{}
	done   chan struct{}
	failed chan error

	cancel context.CancelFunc

	mutex      sync.RWMutex
	downloaded int64
	expected   int64
	completed  bool
}

func (download *Download) URL() string {
	return download.url
}

// PartPath is the playable on-disk path while the download is running.
func (download *Download) PartPath() string {
	return download.partPath
}

func (download *Download) FinalPath() string {
	return download.finalPath
}

// Ready is closed once enough leading bytes exist to start decoding.
func (download *Download) Ready() <-chan struct{} {
	return download.ready
}

// Done is closed once the complete file is persisted under its final name.
func (download *Download) Done() <-chan struct{} {
	return download.done
}

func (download *Download) Failed() <-chan error {
	return download.failed
}

func (download *Download) Progress() (downloaded int64, expected int64) {
	download.mutex.RLock()
	defer download.mutex.RUnlock()
	return download.downloaded, download.expected
}

func (download *Download) Completed() bool {
	download.mutex.RLock()
	defer download.mutex.RUnlock()
	return download.completed
}

// Cancel stops the transfer. The part file is removed; it is never promoted
// to a complete entry.
func (download *Download) Cancel() {
	download.cancel()
}

// Downloader starts progressive downloads into a Storage. Concurrent
// requests for the same URL are de-duplicated through the active set.
type Downloader struct {
	storage    *Storage
	client     *http.Client
	logger     *log.Logger
	readyBytes int64

	mutex  sync.Mutex
	active map[string]*Download
}

func NewDownloader(storage *Storage, logger *log.Logger) *Downloader {
	return &Downloader{
		storage:    storage,
		client:     &http.Client{},
		logger:     logger.With("component", "downloader"),
		readyBytes: defaultReadyBytes,
		active:     make(map[string]*Download),
	}
}

func (dl *Downloader) SetHTTPClient(client *http.Client) {
	dl.client = client
}

func (dl *Downloader) SetReadyBytes(readyBytes int64) {
	dl.readyBytes = readyBytes
}

// Start begins downloading url into the cache entry for (id, ext). If a
// download for the same URL is already running, the existing one is
// returned. The progress callback receives (downloaded, expected) pairs and
// is throttled, except for the final call.
func (dl *Downloader) Start(
	url string,
	id string,
	ext string,
	expectedSize int64,
	progress func(downloaded int64, expected int64),
) *Download {
	dl.mutex.Lock()
	defer dl.mutex.Unlock()

	if existing, ok := dl.active[url]; ok {
		return existing
	}

	ctx, cancel := context.WithCancel(context.Background())

	download := &Download{
		url:       url,
		partPath:  dl.storage.PartPath(id, ext),
		finalPath: dl.storage.EntryPath(id, ext),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		failed:    make(chan error, 1),
		cancel:    cancel,
		expected:  expectedSize,
	}

	dl.active[url] = download

	go dl.run(ctx, download, progress)

	return download
}

func (dl *Downloader) run(ctx context.Context, download *Download, progress func(int64, int64)) {
	defer func() {
		dl.mutex.Lock()
		delete(dl.active, download.url)
		dl.mutex.Unlock()
	}()

	err := dl.transfer(ctx, download, progress)

	if err == nil {
		return
	}

	// A failed or cancelled transfer must not leave bytes that a later run
	// could mistake for a complete entry.
	_ = os.Remove(download.partPath)

	dl.logger.Warn("download failed", "url", download.url, "err", err)
	download.failed <- fmt.Errorf("%w: %s", entities.ErrorDownloadFailed, err.Error())
}

func (dl *Downloader) transfer(ctx context.Context, download *Download, progress func(int64, int64)) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, download.url, nil)

	if err != nil {
		return err
	}

	response, err := dl.client.Do(request)

	if err != nil {
		return err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	download.mutex.Lock()
	if download.expected <= 0 && response.ContentLength > 0 {
		download.expected = response.ContentLength
	}
	expected := download.expected
	download.mutex.Unlock()

	file, err := os.Create(download.partPath)

	if err != nil {
		return err
	}

	readyAt := dl.readyBytes
	if expected > 0 && expected < readyAt {
		readyAt = expected
	}

	throttle := rate.Sometimes{Interval: 200 * time.Millisecond}
	readySignalled := false
	buffer := make([]byte, copyChunkSize)

	var written int64

	for {
		n, readErr := response.Body.Read(buffer)

		if n > 0 {
			if _, writeErr := file.Write(buffer[:n]); writeErr != nil {
				file.Close()
				return writeErr
			}

			written += int64(n)

			download.mutex.Lock()
			download.downloaded = written
			download.mutex.Unlock()

			if !readySignalled && written >= readyAt {
				readySignalled = true
				close(download.ready)
			}

			if progress != nil {
				throttle.Do(func() {
					progress(written, expected)
				})
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			file.Close()
			return readErr
		}
	}

	if err := file.Close(); err != nil {
		return err
	}

	if expected > 0 && written < expected {
		return fmt.Errorf("short download: %d of %d bytes", written, expected)
	}

	if err := os.Rename(download.partPath, download.finalPath); err != nil {
		return err
	}

	download.mutex.Lock()
	download.completed = true
	download.mutex.Unlock()

	if !readySignalled {
		close(download.ready)
	}

	if progress != nil {
		progress(written, expected)
	}

	dl.logger.Debug("download complete", "url", download.url, "bytes", written)
	close(download.done)

	return nil
}

package cache_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tunedeck/cache"
	"tunedeck/entities"
)

func newStorage() *cache.Storage {
	storage, err := cache.NewStorage(GinkgoT().TempDir(), log.New(io.Discard))
	Expect(err).NotTo(HaveOccurred())
	return storage
}

var _ = Describe("Cache storage", func() {
	It("Reports only complete non-empty entries", func() {
		storage := newStorage()

		_, found := storage.Lookup("track-1", "mp3")
		Expect(found).To(BeFalse())

		Expect(os.WriteFile(storage.EntryPath("track-1", "mp3"), []byte("audio"), 0644)).To(Succeed())

		path, found := storage.Lookup("track-1", "mp3")
		Expect(found).To(BeTrue())
		Expect(path).To(Equal(storage.EntryPath("track-1", "mp3")))
	})

	It("Ignores zero-byte entries", func() {
		storage := newStorage()

		Expect(os.WriteFile(storage.EntryPath("track-1", "mp3"), nil, 0644)).To(Succeed())

		_, found := storage.Lookup("track-1", "mp3")
		Expect(found).To(BeFalse())
	})

	It("Sweeps stale part files and empty entries", func() {
		storage := newStorage()

		Expect(os.WriteFile(storage.PartPath("track-1", "mp3"), []byte("part"), 0644)).To(Succeed())
		Expect(os.WriteFile(storage.EntryPath("track-2", "mp3"), nil, 0644)).To(Succeed())
		Expect(os.WriteFile(storage.EntryPath("track-3", "mp3"), []byte("audio"), 0644)).To(Succeed())

		Expect(storage.Sweep()).To(Succeed())

		Expect(storage.PartPath("track-1", "mp3")).NotTo(BeAnExistingFile())
		Expect(storage.EntryPath("track-2", "mp3")).NotTo(BeAnExistingFile())
		Expect(storage.EntryPath("track-3", "mp3")).To(BeAnExistingFile())
	})
})

var _ = Describe("Caching downloader", func() {
	It("Streams a download to the part file and promotes it on completion", func() {
		body := bytes.Repeat([]byte("a"), 8192)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", fmt.Sprint(len(body)))
			_, _ = w.Write(body)
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))
		downloader.SetReadyBytes(1024)

		download := downloader.Start(server.URL, "track-1", "mp3", 0, nil)

		Eventually(download.Ready()).WithTimeout(2 * time.Second).Should(BeClosed())
		Eventually(download.Done()).WithTimeout(2 * time.Second).Should(BeClosed())

		Expect(download.Completed()).To(BeTrue())
		Expect(download.PartPath()).NotTo(BeAnExistingFile())

		written, err := os.ReadFile(download.FinalPath())
		Expect(err).NotTo(HaveOccurred())
		Expect(written).To(Equal(body))

		_, found := storage.Lookup("track-1", "mp3")
		Expect(found).To(BeTrue())
	})

	It("Invokes the progress callback with a final full-size report", func() {
		body := bytes.Repeat([]byte("b"), 4096)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))

		progressDone := make(chan struct{})

		var lastDownloaded, lastExpected int64

		download := downloader.Start(server.URL, "track-1", "mp3", int64(len(body)), func(downloaded int64, expected int64) {
			lastDownloaded = downloaded
			lastExpected = expected

			if downloaded == expected {
				close(progressDone)
			}
		})

		Eventually(download.Done()).WithTimeout(2 * time.Second).Should(BeClosed())
		Eventually(progressDone).WithTimeout(time.Second).Should(BeClosed())

		Expect(lastDownloaded).To(Equal(int64(len(body))))
		Expect(lastExpected).To(Equal(int64(len(body))))
	})

	It("Leaves no playable file when the transfer dies halfway", func() {
		body := bytes.Repeat([]byte("c"), 64*1024)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Claim the full size but deliver only half, then drop the
			// connection.
			w.Header().Set("Content-Length", fmt.Sprint(len(body)))
			_, _ = w.Write(body[:len(body)/2])

			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))
		downloader.SetReadyBytes(1024)

		download := downloader.Start(server.URL, "track-1", "mp3", int64(len(body)), nil)

		var failure error
		Eventually(download.Failed()).WithTimeout(2 * time.Second).Should(Receive(&failure))
		Expect(failure).To(MatchError(entities.ErrorDownloadFailed))

		Expect(download.Completed()).To(BeFalse())
		Expect(download.PartPath()).NotTo(BeAnExistingFile())
		Expect(download.FinalPath()).NotTo(BeAnExistingFile())

		_, found := storage.Lookup("track-1", "mp3")
		Expect(found).To(BeFalse())
	})

	It("Fails a download shorter than the expected size", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("tiny"))
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))

		download := downloader.Start(server.URL, "track-1", "mp3", 1024*1024, nil)

		var failure error
		Eventually(download.Failed()).WithTimeout(2 * time.Second).Should(Receive(&failure))
		Expect(failure).To(MatchError(entities.ErrorDownloadFailed))
		Expect(download.PartPath()).NotTo(BeAnExistingFile())
	})

	It("Deduplicates concurrent downloads of the same URL", func() {
		release := make(chan struct{})

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			_, _ = w.Write([]byte("audio-bytes"))
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))

		first := downloader.Start(server.URL, "track-1", "mp3", 0, nil)
		second := downloader.Start(server.URL, "track-1", "mp3", 0, nil)

		Expect(second).To(BeIdenticalTo(first))

		close(release)
		Eventually(first.Done()).WithTimeout(2 * time.Second).Should(BeClosed())

		// A finished download leaves the active set; the next request for
		// the same URL starts fresh.
		Expect(os.Remove(first.FinalPath())).To(Succeed())

		var third *cache.Download

		Eventually(func() bool {
			third = downloader.Start(server.URL, "track-1", "mp3", 0, nil)
			return third != first
		}).WithTimeout(2 * time.Second).Should(BeTrue())

		Eventually(third.Done()).WithTimeout(2 * time.Second).Should(BeClosed())
	})

	It("Removes the part file when a download is cancelled", func() {
		release := make(chan struct{})
		body := bytes.Repeat([]byte("d"), 16*1024)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", fmt.Sprint(len(body)*2))
			_, _ = w.Write(body)

			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

			<-release
		}))
		defer server.Close()

		storage := newStorage()
		downloader := cache.NewDownloader(storage, log.New(io.Discard))
		downloader.SetReadyBytes(1024)

		download := downloader.Start(server.URL, "track-1", "mp3", 0, nil)
		Eventually(download.Ready()).WithTimeout(2 * time.Second).Should(BeClosed())

		download.Cancel()
		close(release)

		Eventually(download.Failed()).WithTimeout(2 * time.Second).Should(Receive())
		Eventually(func() bool {
			_, err := os.Stat(download.PartPath())
			return os.IsNotExist(err)
		}).WithTimeout(2 * time.Second).Should(BeTrue())
	})
})

var _ = Describe("Storage construction", func() {
	It("Creates the cache directory", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "nested", "cache")

		_, err := cache.NewStorage(dir, log.New(io.Discard))
		Expect(err).NotTo(HaveOccurred())

		info, statErr := os.Stat(dir)
		Expect(statErr).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})
})

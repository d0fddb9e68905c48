package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qwenvoice/qwenvoice/internal/audio"
	"github.com/qwenvoice/qwenvoice/internal/transcriber"
)

type Status string

const (
	Idle         Status = "idle"
	Watching     Status = "watching"
	Transcribing Status = "transcribing"
)

// Pipeline watches a directory for WAV files and writes a .txt sidecar
// with the transcription next to each one.
type Pipeline interface {
	Run(ctx context.Context) error
	Stop()
	Status() Status
}

type pipeline struct {
	dir     string
	adapter transcriber.Adapter

	mu     sync.Mutex
	status Status

	fileCh chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(dir string, adapter transcriber.Adapter) Pipeline {
	return &pipeline{
		dir:     dir,
		adapter: adapter,
		status:  Idle,
		fileCh:  make(chan string, 64),
	}
}

func (p *pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *pipeline) setStatus(s Status) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
}

func (p *pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *pipeline) Run(ctx context.Context) error {
	info, err := os.Stat(p.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", p.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(p.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", p.dir, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	// Pick up files already present before the watch started. The
	// backlog can exceed the queue buffer, so it is enqueued after the
	// worker is running, not from Run itself.
	backlog, err := p.scanExisting()
	if err != nil {
		watcher.Close()
		cancel()
		return err
	}

	p.setStatus(Watching)
	log.Printf("Pipeline: watching %s for WAV files", p.dir)

	p.wg.Add(3)
	go p.watchLoop(runCtx, watcher)
	go p.workLoop(runCtx)
	go p.enqueue(runCtx, backlog)
	return nil
}

func (p *pipeline) scanExisting() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.dir, err)
	}
	var pending []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(p.dir, e.Name())
		if isPending(path) {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

func (p *pipeline) enqueue(ctx context.Context, paths []string) {
	defer p.wg.Done()
	for _, path := range paths {
		select {
		case p.fileCh <- path:
		case <-ctx.Done():
			return
		}
	}
}

func (p *pipeline) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Write == 0 {
				continue
			}
			if !isPending(event.Name) {
				continue
			}
			select {
			case p.fileCh <- event.Name:
			default:
				log.Printf("Pipeline: queue full, dropping %s", event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Pipeline: watcher error: %v", err)

		case <-ctx.Done():
			return
		}
	}
}

func (p *pipeline) workLoop(ctx context.Context) {
	defer p.wg.Done()
	defer p.setStatus(Idle)

	seen := make(map[string]bool)

	for {
		select {
		case path := <-p.fileCh:
			if seen[path] {
				continue
			}
			if err := waitForStableFile(ctx, path); err != nil {
				continue
			}
			seen[path] = true

			p.setStatus(Transcribing)
			if err := p.handleFile(ctx, path); err != nil {
				log.Printf("Pipeline: %s: %v", path, err)
				if transcriber.IsFatalTranscriptionError(err) {
					return
				}
			}
			p.setStatus(Watching)

		case <-ctx.Done():
			return
		}
	}
}

func (p *pipeline) handleFile(ctx context.Context, path string) error {
	samples, err := audio.LoadWAV(path)
	if err != nil {
		return fmt.Errorf("load audio: %w", err)
	}

	start := time.Now()
	text, err := p.adapter.Transcribe(ctx, samples)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	out := sidecarPath(path)
	if err := os.WriteFile(out, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	log.Printf("Pipeline: %s -> %s (%.1fs audio in %v)",
		filepath.Base(path), filepath.Base(out), audio.Duration(len(samples)), time.Since(start))
	return nil
}

// isPending reports whether path is a WAV file without a transcript yet
func isPending(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return false
	}
	_, err := os.Stat(sidecarPath(path))
	return os.IsNotExist(err)
}

func sidecarPath(wavPath string) string {
	return strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".txt"
}

// stablePollInterval is how long a file's size must hold still before
// it is read. Tests shorten it.
var stablePollInterval = 100 * time.Millisecond

// waitForStableFile polls until the file size stops changing, so we
// don't read a WAV that is still being copied in.
func waitForStableFile(ctx context.Context, path string) error {
	var lastSize int64 = -1
	for {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == lastSize {
			return nil
		}
		lastSize = info.Size()

		select {
		case <-time.After(stablePollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

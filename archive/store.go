package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justindarc/ultraspin/logging"
)

// DefaultGraceWindow is how long an extracted file survives.
const DefaultGraceWindow = 5 * time.Second

// Scheduler runs f once after d. The default is time.AfterFunc.
type Scheduler func(d time.Duration, f func())

// Option configures a Store.
type Option func(*Store)

// WithTempDir sets the directory extracted files are written to.
func WithTempDir(dir string) Option {
	return func(s *Store) { s.tempDir = dir }
}

// WithGraceWindow sets the lifetime of extracted files.
func WithGraceWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithLogger sets the logger used for cleanup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logging.NewComponentLogger(logger, "archive") }
}

// WithScheduler replaces the timer used for delayed deletion.
func WithScheduler(schedule Scheduler) Option {
	return func(s *Store) {
		if schedule != nil {
			s.schedule = schedule
		}
	}
}

// Asset is an extracted archive member. The file at Path belongs to the Store.
type Asset struct {
	// Path is the temporary file holding the member's bytes.
	Path string
	// Member is the member's name inside the archive.
	Member string
	// Archive is the archive the member came from.
	Archive string

	once     sync.Once
	released chan struct{}
}

// Released is closed once the temporary file has been deleted.
func (a *Asset) Released() <-chan struct{} { return a.released }

// Store extracts archive members and deletes them after a grace window.
// It is safe for concurrent use. Concurrent requests for the same member
// produce independent copies.
type Store struct {
	tempDir  string
	grace    time.Duration
	logger   *slog.Logger
	schedule Scheduler

	mu      sync.Mutex
	pending map[*Asset]struct{}
	closed  bool
}

// NewStore creates a Store. Without WithTempDir files go to os.TempDir().
func NewStore(opts ...Option) *Store {
	s := &Store{
		tempDir: os.TempDir(),
		grace:   DefaultGraceWindow,
		logger:  logging.NewNop(),
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		pending: make(map[*Asset]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GraceWindow reports the configured lifetime of extracted files.
func (s *Store) GraceWindow() time.Duration { return s.grace }

// Extract copies the first member of archivePath whose base name starts with
// prefix (case-insensitively, in archive order) to a temporary file and
// schedules its deletion.
func (s *Store) Extract(ctx context.Context, archivePath, prefix string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &IOError{Op: "open", Path: archivePath, Err: err}
	}
	defer r.Close()

	member := FindMember(r.File, prefix)
	if member == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, prefix, archivePath)
	}

	tmp, err := s.write(ctx, member)
	if err != nil {
		return nil, err
	}

	asset := &Asset{
		Path:     tmp,
		Member:   member.Name,
		Archive:  archivePath,
		released: make(chan struct{}),
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.release(asset)
		return nil, ErrClosed
	}
	s.pending[asset] = struct{}{}
	s.mu.Unlock()

	s.schedule(s.grace, func() { s.release(asset) })
	s.logger.Debug("extracted archive member",
		logging.String(logging.FieldPath, archivePath),
		logging.String("member", member.Name),
		logging.String("temp", tmp),
	)
	return asset, nil
}

// FindMember returns the first non-directory entry whose base name starts
// with prefix, ignoring case.
func FindMember(files []*zip.File, prefix string) *zip.File {
	prefix = strings.ToLower(prefix)
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
		if strings.HasPrefix(strings.ToLower(base), prefix) {
			return f
		}
	}
	return nil
}

func (s *Store) write(ctx context.Context, member *zip.File) (string, error) {
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return "", &IOError{Op: "mkdir", Path: s.tempDir, Err: err}
	}
	name := filepath.Join(s.tempDir, "theme-"+uuid.NewString()+path.Ext(member.Name))

	src, err := member.Open()
	if err != nil {
		return "", &IOError{Op: "read", Path: member.Name, Err: err}
	}
	defer src.Close()

	dst, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", &IOError{Op: "create", Path: name, Err: err}
	}
	_, copyErr := io.Copy(dst, &contextReader{ctx: ctx, r: src})
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(name)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &IOError{Op: "extract", Path: member.Name, Err: err}
	}
	return name, nil
}

// release deletes the asset's file. Only the first call has any effect.
func (s *Store) release(a *Asset) {
	a.once.Do(func() {
		if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to delete extracted member",
				logging.String(logging.FieldPath, a.Path),
				logging.Error(err),
			)
		}
		s.mu.Lock()
		delete(s.pending, a)
		s.mu.Unlock()
		close(a.released)
	})
}

// Pending reports how many extracted files have not been deleted yet.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close deletes every pending file now. Timers that fire later do nothing.
// Further Extract calls fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	assets := make([]*Asset, 0, len(s.pending))
	for a := range s.pending {
		assets = append(assets, a)
	}
	s.mu.Unlock()

	for _, a := range assets {
		s.release(a)
	}
	return nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

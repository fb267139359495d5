package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/cache"
	pkgerrors "github.com/glorpus-work/fetchy/pkg/errors"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "fetchy/1.0"

// ManagerImpl is an HTTP download manager with retries, bounded parallelism,
// de-duplication by URL and optional checksum verification.
type ManagerImpl struct {
	client    *retryablehttp.Client
	userAgent string
}

var _ Manager = (*ManagerImpl)(nil)

// NewManager creates a download manager. Failed requests (connection errors,
// 5xx and 429 responses) are retried up to retries times with backoff.
func NewManager(timeout time.Duration, retries int, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if retries < 0 {
		retries = 0
	}
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = timeout
	client.RetryMax = retries
	client.Logger = retryLogger{}
	// hand the last response back so the status code reaches the caller
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &ManagerImpl{client: client, userAgent: userAgent}
}

// SetRetryWait bounds the backoff between attempts.
func (m *ManagerImpl) SetRetryWait(minWait, maxWait time.Duration) {
	m.client.RetryWaitMin = minWait
	m.client.RetryWaitMax = maxWait
}

// FetchAll downloads multiple items concurrently and returns a map of item IDs to file paths.
func (m *ManagerImpl) FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = max(2, runtime.NumCPU()/2)
	}
	if err := prepareDir(opts.Dir); err != nil {
		return nil, err
	}

	byURL, err := buildURLIndex(items)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(items))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, key := range sortedKeys(byURL) {
		indices := byURL[key]
		g.Go(func() error {
			path, err := m.fetchOne(gctx, items[indices[0]], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", items[indices[0]].ID, err)
			}
			mu.Lock()
			for _, i := range indices {
				results[i] = path
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(items))
	for i, it := range items {
		out[it.ID] = results[i]
	}
	return out, nil
}

// Fetch downloads a single item and returns the path to the downloaded file.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if err := prepareDir(opts.Dir); err != nil {
		return "", err
	}
	return m.fetchOne(ctx, item, opts)
}

// Open streams the body of u. The caller closes the reader.
func (m *ManagerImpl) Open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	if u == nil {
		return nil, fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	resp, err := m.doRequest(ctx, u)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func prepareDir(dir string) error {
	if dir == "" || !filepath.IsAbs(dir) {
		return fmt.Errorf("download dir must be absolute: %w: %s", pkgerrors.ErrInvalidPath, dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not create download dir")
	}
	return nil
}

func buildURLIndex(items []Item) (map[string][]int, error) {
	byURL := make(map[string][]int)
	for i, it := range items {
		if it.URL == nil {
			return nil, fmt.Errorf("item %d has nil URL: %w", i, pkgerrors.ErrDownloadFailed)
		}
		key := it.URL.String()
		byURL[key] = append(byURL[key], i)
	}
	return byURL, nil
}

func (m *ManagerImpl) fetchOne(ctx context.Context, item Item, opts Options) (string, error) {
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	absPath := filepath.Join(opts.Dir, selectFilename(item))
	if reuse, ok := tryReuseExisting(absPath, item.Checksum); ok {
		logger.Debug("Reusing cached download", logger.Fields{"id": item.ID, "path": reuse})
		return reuse, nil
	}

	logger.Debug("Downloading", logger.Fields{"id": item.ID, "url": item.URL.String()})
	resp, err := m.doRequest(ctx, item.URL)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, err := writeBodyToTemp(resp.Body, absPath)
	if err != nil {
		return "", err
	}
	if item.Checksum != "" {
		ok, err := verifySHA256(tmpPath, item.Checksum)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", err
		}
		if !ok {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %s: %w", item.URL, pkgerrors.ErrFileHashMismatch)
		}
	}
	if err := finalizeFile(tmpPath, absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// selectFilename prefers the explicit name, then the cache key of the URL,
// so downloads into the cache package bucket line up with cache.Store paths.
func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	return cache.Key(item.URL.String())
}

func tryReuseExisting(absPath, checksum string) (string, bool) {
	st, err := os.Stat(absPath)
	if err != nil || st.Size() == 0 {
		return "", false
	}
	if checksum == "" {
		return absPath, true
	}
	if ok, err := verifySHA256(absPath, checksum); err == nil && ok {
		return absPath, true
	}
	return "", false
}

func (m *ManagerImpl) doRequest(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: %s: %w", pkgerrors.ErrDownloadFailed, u, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %s: %w", resp.StatusCode, u, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

func writeBodyToTemp(body io.Reader, absPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeSecure); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

func verifySHA256(path string, wantHex string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, pkgerrors.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)) == strings.ToLower(strings.TrimSpace(wantHex)), nil
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

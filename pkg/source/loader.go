package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/cache"
	"github.com/glorpus-work/fetchy/pkg/repository"
	"golang.org/x/sync/errgroup"
)

// Opener streams remote files. download.Manager implements it.
type Opener interface {
	Open(ctx context.Context, u *url.URL) (io.ReadCloser, error)
}

// Loader fetches sources into repositories, going through the index cache.
type Loader struct {
	opener      Opener
	store       *cache.Store
	concurrency int
}

// NewLoader creates a Loader. store may be nil to disable caching.
func NewLoader(opener Opener, store *cache.Store, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Loader{opener: opener, store: store, concurrency: concurrency}
}

// LoadAll loads every source and merges them in order into one repository.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) (*repository.Repository, error) {
	merged := repository.New()
	for _, src := range sources {
		repo, err := l.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		merged.Merge(repo)
	}
	return merged, nil
}

// Load returns the repository of a single source.
func (l *Loader) Load(ctx context.Context, src Source) (*repository.Repository, error) {
	key, err := src.CacheKey()
	if err != nil {
		return nil, err
	}

	var text []byte
	if l.store != nil {
		data, ok, err := l.store.Get(cache.Indexes, key)
		if err != nil {
			return nil, err
		}
		if ok {
			text = data
		}
	}

	if text == nil {
		if text, err = l.fetch(ctx, src); err != nil {
			return nil, err
		}
		if l.store != nil {
			if err := l.store.Put(cache.Indexes, key, text); err != nil {
				logger.Warn("Failed to cache package index", logger.Fields{"source": src.Mirror.Name, "error": err})
			}
		}
	}

	repo, err := repository.ParseIndex(bytes.NewReader(text), src.Mirror.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIndexFetch, src.Mirror.Name, err)
	}
	logger.Debug("Loaded source", logger.Fields{"source": src.Mirror.Name, "packages": repo.Len()})
	return repo, nil
}

// fetch downloads all index files of src in parallel and concatenates their
// decompressed text in IndexURLs order.
func (l *Loader) fetch(ctx context.Context, src Source) ([]byte, error) {
	urls, err := src.IndexURLs()
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, raw := range urls {
		g.Go(func() error {
			data, err := l.fetchIndex(gctx, raw)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrIndexFetch, raw, err)
			}
			parts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
		// keep stanzas of adjacent files apart
		if len(p) > 0 && !bytes.HasSuffix(p, []byte("\n\n")) {
			if !bytes.HasSuffix(p, []byte("\n")) {
				buf.WriteByte('\n')
			}
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (l *Loader) fetchIndex(ctx context.Context, raw string) ([]byte, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetching package index", logger.Fields{"url": raw})
	body, err := l.opener.Open(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	r, err := Decompress(u.Path, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

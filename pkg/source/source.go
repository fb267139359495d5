// Package source turns mirrors into package repositories: it builds the
// Packages index URLs for a suite, downloads and decompresses them, and
// caches the decompressed text keyed by the URL list.
package source

import (
	"fmt"

	"github.com/glorpus-work/fetchy/pkg/cache"
)

// Source is one mirror read for a codename and architecture.
type Source struct {
	Mirror       Mirror
	Codename     string
	Architecture string
	// Compression selects Packages.gz (default), Packages.xz or plain Packages.
	Compression string
}

// IndexURLs lists the index files of the source: for every component the
// bare suite first, then each update suite.
func (s Source) IndexURLs() ([]string, error) {
	file, err := IndexFile(s.Compression)
	if err != nil {
		return nil, err
	}
	suites := make([]string, 0, len(s.Mirror.Updates)+1)
	suites = append(suites, s.Codename)
	for _, u := range s.Mirror.Updates {
		suites = append(suites, s.Codename+"-"+u)
	}

	urls := make([]string, 0, len(suites)*len(s.Mirror.Components))
	for _, component := range s.Mirror.Components {
		for _, suite := range suites {
			urls = append(urls, fmt.Sprintf("%sdists/%s/%s/binary-%s/%s", s.Mirror.URL, suite, component, s.Architecture, file))
		}
	}
	return urls, nil
}

// CacheKey identifies the source's decompressed index text in the cache.
func (s Source) CacheKey() (string, error) {
	urls, err := s.IndexURLs()
	if err != nil {
		return "", err
	}
	return cache.Key(urls...), nil
}

// Config is the subset of the blueprint needed to build the sources.
type Config struct {
	Distribution string
	Codename     string
	Architecture string
	Locale       string
	Mirror       string
	Components   []string
	Updates      []string
	PPAs         []string
	Compression  string
}

// Build returns the distribution source followed by one source per PPA, in
// the order their repositories are merged.
func Build(cfg Config) ([]Source, error) {
	dist, err := DistributionMirror(cfg.Distribution, cfg.Locale, cfg.Mirror)
	if err != nil {
		return nil, err
	}
	if len(cfg.Components) > 0 {
		dist.Components = cfg.Components
	}
	if cfg.Updates != nil {
		dist.Updates = cfg.Updates
	}

	sources := []Source{{Mirror: dist, Codename: cfg.Codename, Architecture: cfg.Architecture, Compression: cfg.Compression}}
	for _, ref := range cfg.PPAs {
		ppa, err := PPAMirror(ref)
		if err != nil {
			return nil, err
		}
		// launchpad only publishes Packages.gz and Packages.xz
		compression := cfg.Compression
		if compression == CompressionNone {
			compression = CompressionGzip
		}
		sources = append(sources, Source{Mirror: ppa, Codename: cfg.Codename, Architecture: cfg.Architecture, Compression: compression})
	}
	return sources, nil
}

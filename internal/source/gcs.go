// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// objectAttrs is the subset of Cloud Storage metadata used for change detection.
type objectAttrs struct {
	ETag    string
	Size    int64
	Updated time.Time
}

// objectStore reads objects; storageObjects implements it on cloud.google.com/go/storage.
type objectStore interface {
	Attrs(ctx context.Context, bucket, object string) (objectAttrs, error)
	NewReader(ctx context.Context, bucket, object string) (io.ReadCloser, error)
	Close() error
}

type storageObjects struct {
	client *storage.Client
}

func (s *storageObjects) Attrs(ctx context.Context, bucket, object string) (objectAttrs, error) {
	attrs, err := s.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err != nil {
		return objectAttrs{}, err
	}
	return objectAttrs{ETag: attrs.Etag, Size: attrs.Size, Updated: attrs.Updated}, nil
}

func (s *storageObjects) NewReader(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	return s.client.Bucket(bucket).Object(object).NewReader(ctx)
}

func (s *storageObjects) Close() error { return s.client.Close() }

// GCSFetcher downloads gs://bucket/object sources.
type GCSFetcher struct {
	objects objectStore
}

// NewGCSFetcher creates a Cloud Storage client. An empty credentialsFile
// uses application default credentials.
func NewGCSFetcher(ctx context.Context, credentialsFile string) (*GCSFetcher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account key not found at path: %s", credentialsFile)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCSFetcher{objects: &storageObjects{client: client}}, nil
}

// Close closes the storage client.
func (g *GCSFetcher) Close() error {
	return g.objects.Close()
}

// ParseGSURI splits gs://bucket/path/to/object.
func ParseGSURI(uri string) (bucket, object string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", uri, err)
	}
	if u.Scheme != "gs" || u.Host == "" {
		return "", "", fmt.Errorf("%s is not a gs://bucket/object URI", uri)
	}
	object = strings.TrimPrefix(u.Path, "/")
	if object == "" {
		return "", "", fmt.Errorf("%s has no object name", uri)
	}
	return u.Host, object, nil
}

// Fetch downloads the object into dest unless its ETag matches prev and the
// cached copy is still on disk.
func (g *GCSFetcher) Fetch(ctx context.Context, uri, dest string, prev *State) (fetchResult, error) {
	bucket, object, err := ParseGSURI(uri)
	if err != nil {
		return fetchResult{}, err
	}

	attrs, err := g.objects.Attrs(ctx, bucket, object)
	if err != nil {
		return fetchResult{}, fmt.Errorf("stat gs://%s/%s: %w", bucket, object, err)
	}

	now := time.Now().UTC()
	if prev != nil && prev.ETag != "" && prev.ETag == attrs.ETag && fileExists(prev.LocalPath) {
		st := *prev
		st.FetchedAt = now
		return fetchResult{state: &st}, nil
	}

	r, err := g.objects.NewReader(ctx, bucket, object)
	if err != nil {
		return fetchResult{}, fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	defer func() { _ = r.Close() }()

	sum, size, err := writeAtomic(dest, r)
	if err != nil {
		return fetchResult{}, err
	}

	st := &State{
		URI:          uri,
		LocalPath:    dest,
		ETag:         attrs.ETag,
		LastModified: attrs.Updated.UTC().Format(time.RFC1123),
		SHA256:       sum,
		Size:         size,
		ModTime:      attrs.Updated.UTC(),
		FetchedAt:    now,
	}
	changed := prev == nil || prev.SHA256 != sum || prev.LocalPath != dest
	return fetchResult{state: st, changed: changed, downloaded: true}, nil
}

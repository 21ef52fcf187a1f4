package gtmatrix

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenTable opens a local file or a gs://bucket/object path and transparently
// decompresses it. A storage client is only needed for gs:// paths.
func OpenTable(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser
	var err error

	if strings.HasPrefix(path, "gs://") {
		raw, err = openGoogleStorage(ctx, path, client)
	} else {
		var expanded string
		if expanded, err = ExpandHome(path); err == nil {
			raw, err = os.Open(expanded)
		}
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &decompressedReadCloser{Reader: r, closer: raw}, nil
}

// decompressedReadCloser reads decompressed content and closes the underlying
// source.
type decompressedReadCloser struct {
	io.Reader
	closer io.Closer
}

func (c *decompressedReadCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		rc.Close()
	}

	return c.closer.Close()
}

func openGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: a storage client is required for gs:// paths", path)
	}

	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}
	bucketName := pathParts[0]
	pathName := pathParts[1]

	rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rdr, nil
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", err
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// CreateOutput creates (or truncates) a local output file, expanding ~.
func CreateOutput(path string) (*os.File, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	f, err := os.OpenFile(expanded, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

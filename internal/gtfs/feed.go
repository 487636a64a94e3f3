package gtfs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// tableSource is a named, openable byte stream for one table.
type tableSource struct {
	name string
	open func() (io.ReadCloser, error)
}

func fileSource(p string) tableSource {
	return tableSource{
		name: p,
		open: func() (io.ReadCloser, error) { return os.Open(p) },
	}
}

// feed holds the resolved sources for a load and the archive backing them, if any.
type feed struct {
	trips     tableSource
	stopTimes tableSource
	archive   *zip.ReadCloser
}

func (f *feed) Close() error {
	if f.archive == nil {
		return nil
	}
	return f.archive.Close()
}

func isZipPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".zip")
}

func openFeed(cfg Config) (*feed, error) {
	f := &feed{}
	needArchive := cfg.FeedPath != "" && isZipPath(cfg.FeedPath) &&
		(cfg.TripsPath == "" || cfg.StopTimesPath == "")
	if needArchive {
		archive, err := zip.OpenReader(cfg.FeedPath)
		if err != nil {
			return nil, &LoadError{Source: cfg.FeedPath, Err: err}
		}
		f.archive = archive
	}

	var err error
	if f.trips, err = f.locate(cfg, cfg.TripsPath, tripsTable.name); err != nil {
		_ = f.Close()
		return nil, err
	}
	if f.stopTimes, err = f.locate(cfg, cfg.StopTimesPath, stopTimesTable.name); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func (f *feed) locate(cfg Config, explicit, name string) (tableSource, error) {
	switch {
	case explicit != "":
		return fileSource(explicit), nil
	case f.archive != nil:
		return zipSource(f.archive, cfg.FeedPath, name)
	case cfg.FeedPath != "":
		return fileSource(filepath.Join(cfg.FeedPath, name)), nil
	default:
		return tableSource{}, &LoadError{Source: name, Err: fmt.Errorf("%w: no path configured", ErrSourceNotFound)}
	}
}

// zipSource finds name in the archive, also accepting it inside a single top-level folder.
func zipSource(archive *zip.ReadCloser, archivePath, name string) (tableSource, error) {
	for _, entry := range archive.File {
		if strings.EqualFold(path.Base(entry.Name), name) {
			return tableSource{
				name: archivePath + "!" + entry.Name,
				open: entry.Open,
			}, nil
		}
	}
	return tableSource{}, &LoadError{Source: archivePath, Err: fmt.Errorf("%w: %s not in archive", ErrSourceNotFound, name)}
}

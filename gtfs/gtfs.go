// Package gtfs loads a static GTFS feed (stops, stop_times, transfers,
// trips, routes) and derives the validated transit network the
// optimization pipeline runs on.
//
// The core engine never parses feed formats itself; this package is the
// ingestion collaborator that hands it an already-validated
// *network.Network. Ride-edge weights are representative, not live:
// for every pair of consecutive stops served by a trip, the observed
// arrival-time deltas across all trips are averaged into a single
// static travel time.
package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// Sentinel errors for feed loading.
var (
	// ErrMissingFile indicates a required GTFS file was absent.
	ErrMissingFile = errors.New("gtfs: required file missing")

	// ErrBadClockTime indicates an arrival/departure value that is not
	// of the form HH:MM:SS (HH may exceed 23 for overnight service).
	ErrBadClockTime = errors.New("gtfs: malformed clock time")
)

// Feed holds the parsed rows of one static GTFS dataset.
type Feed struct {
	Stops     []Stop
	Transfers []Transfer
	StopTimes []StopTime
	Trips     []Trip
	Routes    []Route
}

// feedFiles maps GTFS file names to their destination slices.
// stops.txt and stop_times.txt are required; the rest are optional.
func (f *Feed) feedFiles() map[string]any {
	return map[string]any{
		"stops.txt":      &f.Stops,
		"stop_times.txt": &f.StopTimes,
		"transfers.txt":  &f.Transfers,
		"trips.txt":      &f.Trips,
		"routes.txt":     &f.Routes,
	}
}

var requiredFiles = []string{"stops.txt", "stop_times.txt"}

func init() {
	// Tolerate rows with missing trailing columns; real-world feeds are
	// rarely strict about this.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1

		return r
	})
}

// Load reads a GTFS dataset from a directory of .txt files, from a
// .zip archive if path points at a regular file, or from a zip archive
// fetched over HTTP if path is an http(s) URL.
func Load(path string) (*Feed, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return LoadURL(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("gtfs: stat feed: %w", err)
	}
	if !info.IsDir() {
		return LoadZip(path)
	}

	feed := &Feed{}
	for name, dest := range feed.feedFiles() {
		file, err := os.Open(filepath.Join(path, name))
		if err != nil {
			if os.IsNotExist(err) {
				if isRequired(name) {
					return nil, fmt.Errorf("%w: %s", ErrMissingFile, name)
				}

				continue
			}

			return nil, fmt.Errorf("gtfs: open %s: %w", name, err)
		}
		err = gocsv.Unmarshal(file, dest)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("gtfs: parse %s: %w", name, err)
		}
		log.Debug().Str("file", name).Msg("gtfs file loaded")
	}

	return feed, nil
}

// LoadZip reads a GTFS dataset from a zip archive on disk.
func LoadZip(path string) (*Feed, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("gtfs: open archive: %w", err)
	}
	defer archive.Close()

	return parseArchive(archive.File)
}

// LoadURL fetches a zipped GTFS dataset over HTTP. Agencies publish
// static feeds as single zip downloads, so the whole body is read into
// memory and parsed in place.
func LoadURL(url string) (*Feed, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("gtfs: fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfs: fetch feed: %s returned %s", url, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gtfs: fetch feed: %w", err)
	}
	log.Debug().Str("url", url).Int("bytes", len(raw)).Msg("gtfs feed downloaded")

	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("gtfs: open archive: %w", err)
	}

	return parseArchive(archive.File)
}

// parseArchive parses the known GTFS files out of a zip file list.
func parseArchive(archiveFiles []*zip.File) (*Feed, error) {
	feed := &Feed{}
	files := feed.feedFiles()
	seen := map[string]bool{}
	for _, zipFile := range archiveFiles {
		dest, ok := files[zipFile.Name]
		if !ok {
			continue
		}
		reader, err := zipFile.Open()
		if err != nil {
			return nil, fmt.Errorf("gtfs: open %s: %w", zipFile.Name, err)
		}
		err = gocsv.Unmarshal(reader, dest)
		reader.Close()
		if err != nil {
			return nil, fmt.Errorf("gtfs: parse %s: %w", zipFile.Name, err)
		}
		seen[zipFile.Name] = true
		log.Debug().Str("file", zipFile.Name).Msg("gtfs file loaded")
	}
	for _, name := range requiredFiles {
		if !seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, name)
		}
	}

	return feed, nil
}

func isRequired(name string) bool {
	for _, r := range requiredFiles {
		if r == name {
			return true
		}
	}

	return false
}

// parseClockTime converts a GTFS "HH:MM:SS" value to seconds after
// service start. Hours beyond 23 are valid (overnight trips).
func parseClockTime(s string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadClockTime, s)
	}
	var total int64
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadClockTime, s)
		}
		total = total*60 + v
	}

	return total, nil
}

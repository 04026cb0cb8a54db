// Command seed fills the movies table from the MovieLens dataset so a
// fresh install of the agency has something to page through.
package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/danrneal/fs-casting-agency/pkg/config"
	"github.com/danrneal/fs-casting-agency/postgres"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

const defaultPoster = "https://via.placeholder.com/300x450?text=No+Poster"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	count, err := importMovies(context.Background(), db, csvPath, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxTitle, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	// Re-running the seed must not duplicate titles.
	stmt := `
INSERT INTO movies (title, release_date, poster)
SELECT ?, ?, ?
WHERE NOT EXISTS (SELECT 1 FROM movies WHERE title = ?)
`

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = tx.Rollback()
			return count, err
		}
		title, releaseDate, ok := parseMovieRecord(record, idxTitle)
		if !ok {
			continue
		}

		if err := tx.Exec(stmt, title, releaseDate, defaultPoster, title).Error; err != nil {
			_ = tx.Rollback()
			return count, err
		}

		count++
	}

	if err := tx.Commit().Error; err != nil {
		return count, err
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}

	for i, name := range header {
		if strings.TrimSpace(name) == "title" {
			return i, nil
		}
	}

	return 0, errors.New("missing title column in csv header")
}

var titleYearPattern = regexp.MustCompile(`^(.*)\s+\((\d{4})\)$`)

// parseMovieRecord splits a MovieLens title like "Heat (1995)" into a
// bare title and a release date on the first of that year. Rows without
// a year are skipped.
func parseMovieRecord(record []string, idxTitle int) (string, time.Time, bool) {
	if idxTitle >= len(record) {
		return "", time.Time{}, false
	}

	raw := strings.TrimSpace(record[idxTitle])
	match := titleYearPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", time.Time{}, false
	}

	title := strings.TrimSpace(match[1])
	year, err := strconv.Atoi(match[2])
	if err != nil || title == "" {
		return "", time.Time{}, false
	}

	return title, time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), true
}

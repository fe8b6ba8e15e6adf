package cache

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"routeview/internal/geo"
)

// DefaultBaseURL serves the Natural Earth 1:50m downloads
const DefaultBaseURL = "https://naciscdn.org/naturalearth/50m"

// Manager handles downloading and caching Natural Earth data
type Manager struct {
	cacheDir string
	baseURL  string
	client   *http.Client
	log      *slog.Logger
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name     string // Friendly name
	Category string // "cultural" or "physical"
	Base     string // Base filename (without extension)
}

// DataFiles lists the downloads backing geo.BaseLayers
var DataFiles = []DataFile{
	{Name: "Borders", Category: "cultural", Base: "ne_50m_admin_0_boundary_lines_land"},
	{Name: "Rivers", Category: "physical", Base: "ne_50m_rivers_lake_centerlines"},
	{Name: "Coastlines", Category: "physical", Base: "ne_50m_coastline"},
	{Name: "Populated Places", Category: "cultural", Base: "ne_50m_populated_places"},
}

// Option configures a Manager
type Option func(*Manager)

// WithBaseURL replaces the download server
func WithBaseURL(url string) Option {
	return func(m *Manager) { m.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient replaces the download client
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithLogger sets the logger for download progress
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.routeview/data
func NewManager(cacheDir string, opts ...Option) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".routeview", "data")
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	m := &Manager{
		cacheDir: cacheDir,
		baseURL:  DefaultBaseURL,
		client:   http.DefaultClient,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// EnsureData downloads missing base layers. Every layer is optional: a failed
// download is logged and skipped. Only cancellation is reported.
func (m *Manager) EnsureData(ctx context.Context) error {
	for _, file := range DataFiles {
		if err := m.ensureFile(ctx, file); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.log.WarnContext(ctx, "skipping base layer download", "layer", file.Name, "error", err)
		}
	}
	return nil
}

// Missing returns the base layers not present in the cache
func (m *Manager) Missing() []geo.Layer {
	var missing []geo.Layer
	for _, layer := range geo.BaseLayers {
		if _, err := os.Stat(m.GetDataPath(layer.Base)); errors.Is(err, os.ErrNotExist) {
			missing = append(missing, layer)
		}
	}
	return missing
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(ctx context.Context, file DataFile) error {
	if _, err := os.Stat(m.GetDataPath(file.Base)); err == nil {
		return nil
	}

	url := fmt.Sprintf("%s/%s/%s.zip", m.baseURL, file.Category, file.Base)
	m.log.InfoContext(ctx, "downloading base layer", "layer", file.Name, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; routeview/1.0)")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, url)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}
	tmpFile.Close()

	if err := extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	m.log.InfoContext(ctx, "base layer cached", "layer", file.Name)
	return nil
}

// extractZip flattens the archive into destDir, skipping directories and
// dotfiles.
func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}
		if err := extractFile(f, filepath.Join(destDir, filepath.Base(f.Name))); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}

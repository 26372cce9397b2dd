package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const userAgent = "showroom/1 (+asset fetch)"

// DefaultClient is used when Fetch and Download get a nil client.
var DefaultClient = &http.Client{Timeout: 2 * time.Minute}

var safeName = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// Download saves rawURL under destDir and returns the saved path. The file name comes from
// Content-Disposition, then the URL path. destDir is created if needed.
func Download(ctx context.Context, client *http.Client, rawURL, destDir string) (string, error) {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	name := fileName(resp.Header.Get("Content-Disposition"), rawURL)
	if !strings.Contains(name, ".") && strings.Contains(resp.Header.Get("Content-Type"), "zip") {
		name += ".zip"
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(destDir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

func fileName(disposition, rawURL string) string {
	name := ""
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		name = params["filename"]
	}
	if name == "" {
		if u, err := url.Parse(rawURL); err == nil {
			name = path.Base(u.Path)
		}
	}
	name = safeName.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == "_" {
		name = "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}

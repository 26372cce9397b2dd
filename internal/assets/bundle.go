package assets

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Unzip extracts zipPath into destDir and returns the extracted files. Entries that would
// land outside destDir are skipped.
func Unzip(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}

	var extracted []string
	for _, f := range r.File {
		dest := filepath.Join(root, f.Name)
		if !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if err := extract(f, dest); err != nil {
			return nil, fmt.Errorf("unzip %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Fetch downloads a bundle into destDir. Zip archives are extracted and then removed; a
// single model file is kept as is. It returns the model files now in place.
func Fetch(ctx context.Context, client *http.Client, rawURL, destDir string) ([]string, error) {
	saved, err := Download(ctx, client, rawURL, destDir)
	if err != nil {
		return nil, err
	}

	files := []string{saved}
	if strings.EqualFold(filepath.Ext(saved), ".zip") {
		files, err = Unzip(saved, destDir)
		_ = os.Remove(saved)
		if err != nil {
			return nil, err
		}
	}

	var models []string
	for _, f := range files {
		if slices.Contains(ModelExts, strings.ToLower(filepath.Ext(f))) {
			models = append(models, f)
		}
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrNoModels)
	}
	return models, nil
}

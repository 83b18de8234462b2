// Package renderer writes rendered pages to disk.
package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// IndexName is the file written for a single locale.
const IndexName = "index.html"

// OutputPath returns where the page for tag goes in dir. With multi set the
// locale is part of the name, e.g. index.pt-BR.html.
func OutputPath(dir, tag string, multi bool) (path string) {
	name := IndexName
	if multi {
		name = "index." + tag + ".html"
	}
	path = filepath.Join(dir, name)
	return path
}

// WriteHTML writes content to outputPath, creating parent directories. The
// file is replaced atomically so a failed write leaves the previous page.
func WriteHTML(content []byte, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	var tmp *os.File
	tmp, err = os.CreateTemp(outputDir, ".render-*.html")
	if err != nil {
		err = errors.Wrapf(err, "failed to create temp file in %s", outputDir)
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to write html file: %s", outputPath)
		return err
	}

	err = os.Chmod(tmpName, 0644)
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to set permissions on %s", outputPath)
		return err
	}

	err = os.Rename(tmpName, outputPath)
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to move html file into place: %s", outputPath)
		return err
	}

	return err
}

// ValidateFiles checks that local input files exist.
func ValidateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

package folio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover lists the files under root whose slash-separated relative path
// matches pattern and whose extension is in exts. An empty exts accepts any
// extension. A missing root is a configuration error; no matches is not.
func Discover(root, pattern string, exts []string) ([]RawFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, configErrorf("content root %q does not exist", root)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrDiscovery, root, err)
	}
	if !info.IsDir() {
		return nil, configErrorf("content root %q is not a directory", root)
	}

	match, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		allowed[normalizeExt(e)] = struct{}{}
	}

	var files []RawFile
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !match(rel) {
			return nil
		}
		ext := normalizeExt(filepath.Ext(rel))
		if len(allowed) > 0 {
			if _, ok := allowed[ext]; !ok {
				return nil
			}
		}
		files = append(files, RawFile{Path: rel, Extension: ext})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: walk %s: %v", ErrDiscovery, root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// compilePattern compiles a doublestar glob. "**/" also matches zero
// directories, so "blog/**/*.mdx" matches "blog/post.mdx".
func compilePattern(pattern string) (func(string) bool, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(pattern)), "./")
	if pattern == "" {
		pattern = "**"
	}
	variants := []string{pattern}
	if strings.Contains(pattern, "**/") {
		variants = append(variants, strings.ReplaceAll(pattern, "**/", ""))
	}
	globs := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, configErrorf("invalid pattern %q: %v", pattern, err)
		}
		globs = append(globs, g)
	}
	return func(path string) bool {
		for _, g := range globs {
			if g.Match(path) {
				return true
			}
		}
		return false
	}, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

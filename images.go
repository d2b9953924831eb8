package folio

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	placeholderSize    = 16
	placeholderQuality = 70
)

// ImagePath joins the assets folder and an image reference by plain
// concatenation, the way the reference is written in front matter.
func ImagePath(assetsDir, ref string) string {
	return strings.TrimSuffix(assetsDir, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// StaticPrefix is the URL path the assets folder is served under.
const StaticPrefix = "/public"

// AssetURL maps a local image reference to its public URL under
// StaticPrefix. Empty and remote references are returned unchanged.
func AssetURL(ref string) string {
	if ref == "" || IsRemoteImage(ref) || strings.HasPrefix(ref, StaticPrefix+"/") {
		return ref
	}
	return StaticPrefix + "/" + strings.TrimPrefix(ref, "/")
}

// Placeholder decodes an image and returns a tiny JPEG rendition, base64
// encoded for inline data URLs.
func Placeholder(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return "", errors.New("decode image: empty bounds")
	}

	// Fit the long edge to placeholderSize.
	dw, dh := placeholderSize, placeholderSize
	if w >= h {
		dh = max(1, h*placeholderSize/w)
	} else {
		dw = max(1, w*placeholderSize/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: placeholderQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// PlaceholderCache stores computed placeholders by content hash.
type PlaceholderCache interface {
	GetPlaceholder(hash string) (string, error)
	SavePlaceholder(hash, data string) error
}

// imageBlur resolves ref against assetsDir and returns its placeholder.
// Absent and remote references yield "".
func imageBlur(assetsDir, ref string, cache PlaceholderCache) (string, error) {
	if strings.TrimSpace(ref) == "" || IsRemoteImage(ref) {
		return "", nil
	}
	path := ImagePath(assetsDir, ref)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}

	var hash string
	if cache != nil {
		sum := sha256.Sum256(data)
		hash = hex.EncodeToString(sum[:])
		if blur, err := cache.GetPlaceholder(hash); err == nil {
			return blur, nil
		} else if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}

	blur, err := Placeholder(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if cache != nil {
		if err := cache.SavePlaceholder(hash, blur); err != nil {
			return "", err
		}
	}
	return blur, nil
}

package gallery

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileLoader checks images in the local asset tree. Refs are URL paths;
// Prefix is stripped before the remainder is resolved under Root, and the
// file must sniff as an image.
type FileLoader struct {
	Root   string
	Prefix string
}

func (l FileLoader) Load(ctx context.Context, ref ImageRef) error {
	s := string(ref)
	if strings.HasPrefix(s, "data:") {
		if strings.HasPrefix(s, "data:image/") {
			return nil
		}
		return fmt.Errorf("data uri is not an image")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("parse image ref %q: %w", s, err)
	}
	// Remote images are fetched by the browser, not checked here.
	if u.Host != "" {
		return nil
	}

	rel := strings.TrimPrefix(u.Path, l.Prefix)
	clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
	full := filepath.Join(l.Root, filepath.FromSlash(clean))

	mt, err := mimetype.DetectFile(full)
	if err != nil {
		return fmt.Errorf("open image %q: %w", s, err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%q is %s, not an image", s, mt.String())
	}
	return nil
}

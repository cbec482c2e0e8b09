// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package images resolves puzzle image dimensions from a file system.
package images

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/webp"

	"github.com/danielhkuo/egghunt/jigsaw"
)

// FS reads image headers from an fs.FS. Only the header is decoded.
type FS struct {
	fsys fs.FS
}

func New(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Dimensions implements jigsaw.ImageSource
func (s *FS) Dimensions(ctx context.Context, name string) (jigsaw.Size, error) {
	if err := ctx.Err(); err != nil {
		return jigsaw.Size{}, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return jigsaw.Size{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return jigsaw.Size{}, fmt.Errorf("decode %s header: %w", name, err)
	}

	return jigsaw.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

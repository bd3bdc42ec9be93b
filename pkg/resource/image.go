// Package resource provides the exclusively owned asset a session carries with it.
//
// An Image is a handle over one bitmap allocation. Exactly one handle owns an
// allocation at any time: Clone makes a new allocation, Take moves the existing
// allocation to a new handle and invalidates the old one, and Release frees the
// allocation once. Every method is safe on a nil or invalidated handle.
package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

var live atomic.Int64

// Live returns the number of bitmap allocations that have not been released.
func Live() int64 { return live.Load() }

// Bitmap is the decoded asset behind an Image handle.
type Bitmap struct {
	Name   string
	Format string
	Width  int
	Height int
	Data   []byte
}

// Image is a single-owner handle to a Bitmap.
type Image struct {
	bmp *Bitmap
}

// New allocates an image from an in-memory bitmap. The data is copied.
func New(b Bitmap) *Image {
	b.Data = bytes.Clone(b.Data)
	return adopt(&b)
}

func adopt(b *Bitmap) *Image {
	live.Add(1)
	return &Image{bmp: b}
}

// Decode reads an encoded image (PNG, JPEG or GIF) and allocates it.
func Decode(name string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	return adopt(&Bitmap{
		Name:   name,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}), nil
}

// Load decodes the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// Valid reports whether the handle currently owns an allocation.
func (i *Image) Valid() bool {
	return i != nil && i.bmp != nil
}

// Bitmap returns the owned bitmap, or nil for an invalid handle.
// The bitmap is borrowed and must not be retained past Release or Take.
func (i *Image) Bitmap() *Bitmap {
	if !i.Valid() {
		return nil
	}
	return i.bmp
}

// Name returns the bitmap name, or "" for an invalid handle.
func (i *Image) Name() string {
	if !i.Valid() {
		return ""
	}
	return i.bmp.Name
}

// Clone returns a handle to a new allocation with equal content.
// Cloning an invalid handle yields nil.
func (i *Image) Clone() *Image {
	if !i.Valid() {
		return nil
	}
	return New(*i.bmp)
}

// Take moves the allocation to a new handle and invalidates i.
// Taking from an invalid handle yields nil.
func (i *Image) Take() *Image {
	if !i.Valid() {
		return nil
	}
	moved := &Image{bmp: i.bmp}
	i.bmp = nil
	return moved
}

// Release frees the allocation. It is a no-op on an invalid handle,
// so releasing twice or releasing a moved-from handle is safe.
func (i *Image) Release() {
	if !i.Valid() {
		return
	}
	i.bmp.Data = nil
	i.bmp = nil
	live.Add(-1)
}

package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/poddl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Lifecycle(t *testing.T) {
	fs := NewFileSystem()
	root := model.Path(t.TempDir())
	scratch := root.Join("tmp")

	require.NoError(t, fs.EnsureDir(scratch))
	require.NoError(t, fs.EnsureDir(scratch), "EnsureDir must be idempotent")
	assert.True(t, fs.IsEmpty(scratch))

	src := scratch.Join("001.mp3")
	w, err := fs.Create(src)
	require.NoError(t, err)
	_, err = w.Write([]byte("audio"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.True(t, fs.Exists(src))
	assert.False(t, fs.IsEmpty(scratch))

	dst := root.Join("001.mp3")
	require.NoError(t, fs.Move(src, dst))
	assert.False(t, fs.Exists(src))
	assert.True(t, fs.Exists(dst))

	data, err := os.ReadFile(dst.String())
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))

	assert.True(t, fs.IsEmpty(scratch))
	require.NoError(t, fs.DeleteDir(scratch))
	assert.False(t, fs.Exists(scratch))
}

func TestFileSystem_DeleteDirRefusesNonEmpty(t *testing.T) {
	fs := NewFileSystem()
	dir := model.Path(t.TempDir()).Join("tmp")
	require.NoError(t, fs.EnsureDir(dir))
	require.NoError(t, fs.WriteFile(dir.Join("partial.mp3"), []byte("x")))

	assert.Error(t, fs.DeleteDir(dir))
	assert.True(t, fs.Exists(dir))
}

func TestFileSystem_EnsureDirOverFile(t *testing.T) {
	fs := NewFileSystem()
	file := model.Path(filepath.Join(t.TempDir(), "file"))
	require.NoError(t, fs.WriteFile(file, []byte("x")))

	assert.Error(t, fs.EnsureDir(file))
}

func TestFileSystem_IsEmptyMissingDir(t *testing.T) {
	fs := NewFileSystem()
	assert.False(t, fs.IsEmpty(model.Path(t.TempDir()).Join("missing")))
}

func TestFileSystem_RemoveMissing(t *testing.T) {
	fs := NewFileSystem()
	assert.NoError(t, fs.Remove(model.Path(t.TempDir()).Join("missing.mp3")))
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_PrepareCover(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, maxSize int
		wantWidth, wantHeight  int
	}{
		{"landscape scaled", 300, 150, 100, 100, 50},
		{"portrait scaled", 150, 300, 100, 50, 100},
		{"small kept", 80, 60, 100, 80, 60},
		{"no limit", 300, 150, 0, 300, 150},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.PrepareCover(context.Background(), pngBytes(t, tt.width, tt.height), tt.maxSize)
			require.NoError(t, err)

			img, err := jpeg.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, img.Bounds().Dx())
			assert.Equal(t, tt.wantHeight, img.Bounds().Dy())
		})
	}
}

func TestImageService_PrepareCoverInvalid(t *testing.T) {
	_, err := NewImageService().PrepareCover(context.Background(), []byte("not an image"), 100)
	assert.Error(t, err)
}

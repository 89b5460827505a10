package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-catalog-api/internal/apierror"
)

func uploadHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func TestStoreImages(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, zap.NewNop())

	names, err := svc.StoreImages(uploadHeaders(t, map[string][]byte{"maca.png": []byte("img")}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/product-images/maca.png"}, names)

	content, err := os.ReadFile(filepath.Join(dir, "product-images", "maca.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), content)
}

func TestStoreImagesSkipsEmptyUploads(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, zap.NewNop())

	names, err := svc.StoreImages(uploadHeaders(t, map[string][]byte{"vazio.png": {}}))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestImagePathRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, zap.NewNop())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "product-images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "segredo.txt"), []byte("x"), 0o644))

	_, err := svc.ImagePath("../segredo.txt")
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestListImagesEmptyDirectory(t *testing.T) {
	svc := NewImageService(t.TempDir(), zap.NewNop())

	files, err := svc.ListImages()
	require.NoError(t, err)
	assert.Empty(t, files)
}

package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("paymentProof", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["paymentProof"][0]
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	assert.NoError(t, err)

	file := multipartFile(t, "proof.png", []byte("fake image bytes"))

	ref, err := store.Save(file)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.Equal(t, ".png", filepath.Ext(ref))

	// Stored content matches the upload
	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), data)
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	file := multipartFile(t, "proof.png", []byte("a"))

	ref1, err := store.Save(file)
	assert.NoError(t, err)
	ref2, err := store.Save(file)
	assert.NoError(t, err)
	assert.NotEqual(t, ref1, ref2)
}

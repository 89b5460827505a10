package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"go-catalog-api/internal/apierror"
)

const imagesSubdir = "product-images"

// ImageService stores uploaded product images on disk and serves them
// back by filename.
type ImageService interface {
	StoreImages(files []*multipart.FileHeader) ([]string, error)
	ListImages() ([]string, error)
	ImagePath(filename string) (string, error)
}

type imageService struct {
	uploadDir string
	log       *zap.Logger
}

func NewImageService(uploadDir string, log *zap.Logger) ImageService {
	return &imageService{uploadDir: uploadDir, log: log}
}

// StoreImages writes every non-empty upload under the images directory,
// replacing files of the same name, and returns the stored references.
func (s *imageService) StoreImages(files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(s.uploadDir, imagesSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, s.storeFailure(err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.Size == 0 {
			continue
		}
		name := filepath.Base(file.Filename)
		if err := s.store(file, filepath.Join(dir, name)); err != nil {
			return nil, s.storeFailure(err)
		}
		names = append(names, "/"+imagesSubdir+"/"+name)
	}
	return names, nil
}

func (s *imageService) store(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func (s *imageService) storeFailure(err error) error {
	s.log.Error("storing product images", zap.Error(err))
	return apierror.Internal("Falha ao armazenar imagens")
}

func (s *imageService) ListImages() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.uploadDir, imagesSubdir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		s.log.Error("listing product images", zap.Error(err))
		return nil, apierror.Internal("Erro ao listar imagens")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ImagePath resolves filename inside the images directory. The base of
// the name is taken first, so path traversal never escapes it.
func (s *imageService) ImagePath(filename string) (string, error) {
	name := filepath.Base(filename)
	path := filepath.Join(s.uploadDir, imagesSubdir, name)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apierror.NotFound("Imagem não encontrada: " + name)
		}
		s.log.Error("probing product image", zap.Error(err))
		return "", apierror.Internal("Erro ao carregar imagem: " + name)
	}
	return path, nil
}

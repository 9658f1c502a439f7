package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/pdfqa/internal/document"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ImageExtractor writes every embedded image of a PDF into a directory as
// page<p>_img<i>.<ext>, pages and images numbered from one.
type ImageExtractor struct {
	Log *slog.Logger
}

// Extract returns the written images in page order. A PDF without images
// yields an empty slice and no error.
func (e *ImageExtractor) Extract(ctx context.Context, path, outDir string) ([]document.Image, error) {
	log := e.Log
	if log == nil {
		log = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.EXTRACTIMAGES
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf for images: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	var images []document.Image
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageImages, err := pdfcpu.ExtractPageImages(pctx, pageNr, false)
		if err != nil {
			log.Warn("skipping page images", "page", pageNr, "error", err)
			continue
		}

		// Map keys are object numbers; sort for a stable index.
		objNrs := make([]int, 0, len(pageImages))
		for nr := range pageImages {
			objNrs = append(objNrs, nr)
		}
		sort.Ints(objNrs)

		idx := 1
		for _, nr := range objNrs {
			img := pageImages[nr]
			if img.Reader == nil {
				continue
			}
			written, err := writeImage(outDir, pageNr, idx, img)
			if err != nil {
				log.Warn("skipping image", "page", pageNr, "obj", nr, "error", err)
				continue
			}
			images = append(images, written)
			idx++
		}
	}

	log.Info("images extracted", "path", path, "count", len(images))
	return images, nil
}

func writeImage(outDir string, page, idx int, img model.Image) (document.Image, error) {
	ext := strings.TrimPrefix(strings.ToLower(img.FileType), ".")
	if ext == "" {
		ext = "png"
	}
	name := fmt.Sprintf("page%d_img%d.%s", page, idx, ext)
	out := filepath.Join(outDir, name)

	data, err := io.ReadAll(img.Reader)
	if err != nil {
		return document.Image{}, fmt.Errorf("read image: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return document.Image{}, fmt.Errorf("write image: %w", err)
	}
	return document.Image{Page: page, Index: idx, Path: out, Ext: ext}, nil
}

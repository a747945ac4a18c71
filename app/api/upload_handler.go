package api

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"pdfrag/extract"
	"pdfrag/service"
	"pdfrag/types"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	ingestor *service.Ingestor
}

func NewUploadHandler(ingestor *service.Ingestor) *UploadHandler {
	return &UploadHandler{
		ingestor: ingestor,
	}
}

// HandleUpload ingests a multipart PDF into the collection from the URL.
// The whole document either lands in the store or the request fails;
// chunk_count in the response is the number of chunks actually written.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	collection := c.Params("collection")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	fmt.Printf("[UPLOAD] Received %s (%d bytes) for collection %q\n", fileHeader.Filename, len(data), collection)

	pages, err := extract.PageTexts(data)
	if err != nil {
		return NewError(fiber.StatusBadRequest, err.Error())
	}

	count, err := h.ingestor.Ingest(c.Context(), collection, fileHeader.Filename, pages)
	if err != nil {
		if errors.Is(err, service.ErrNoChunks) {
			return NewError(fiber.StatusBadRequest, "no text found in PDF")
		}
		return err
	}

	return c.JSON(types.UploadResponse{
		Filename:   fileHeader.Filename,
		ChunkCount: count,
		Collection: collection,
	})
}

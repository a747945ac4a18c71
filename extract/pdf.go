package extract

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageTexts validates the PDF bytes and returns the plain text of every
// page, in page order. Pages with no extractable text come back as empty
// strings so page numbering stays intact for the caller.
func PageTexts(data []byte) ([]string, error) {
	if err := api.Validate(bytes.NewReader(data), api.LoadConfiguration()); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[EXTRACT] Page %d/%d has no extractable text: %v", i, numPages, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText)
	}

	log.Printf("[EXTRACT] Extracted text from %d pages", numPages)
	return pages, nil
}

package segment

import (
	"sync"

	"pdfrag/types"
)

// Assemble segments every page of a document and flattens the results into
// one ordered chunk list. Pages are independent, so they are segmented
// concurrently; ordering and index assignment happen in a final pass once
// all pages are done, because the document total is unknown until then.
func Assemble(filename string, pages []string) []types.Chunk {
	perPage := make([][]string, len(pages))

	var wg sync.WaitGroup
	for i, text := range pages {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			perPage[i] = SplitPage(text)
		}(i, text)
	}
	wg.Wait()

	var chunks []types.Chunk
	for i, texts := range perPage {
		for _, t := range texts {
			chunks = append(chunks, types.Chunk{
				Filename:   filename,
				PageNumber: i + 1,
				Text:       t,
			})
		}
	}

	// Финальный проход: общее количество чанков известно только теперь
	total := len(chunks)
	for i := range chunks {
		chunks[i].SequenceIndex = i + 1
		chunks[i].ChunkTotal = total
	}

	return chunks
}

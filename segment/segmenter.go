package segment

import (
	"strings"
)

// The page scanner is a two-state machine. A line ending with '?' opens a
// question; everything after it up to the next question (or end of page)
// is the answer. Lines seen while no question is open are standalone chunks.
type scanState int

const (
	stateScanning scanState = iota
	stateInAnswer
)

// SplitPage converts one page of raw text into an ordered list of chunk
// texts. Empty lines are dropped entirely, they never terminate a block.
// A Q&A chunk is the question line plus its answer lines joined by newline;
// a question with no answer is still emitted on its own.
func SplitPage(pageText string) []string {
	var chunks []string

	state := stateScanning
	var question string
	var answer []string

	flush := func() {
		block := question
		if len(answer) > 0 {
			block += "\n" + strings.Join(answer, "\n")
		}
		chunks = append(chunks, block)
		answer = answer[:0]
	}

	for _, raw := range strings.Split(pageText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasSuffix(line, "?"):
			// Next question closes the open block first
			if state == stateInAnswer {
				flush()
			}
			question = line
			state = stateInAnswer
		case state == stateInAnswer:
			answer = append(answer, line)
		default:
			// No open question: the line stands on its own
			chunks = append(chunks, line)
		}
	}

	if state == stateInAnswer {
		flush()
	}

	// Page had text but the scan produced nothing: keep the whole page as
	// a single chunk rather than dropping it.
	if len(chunks) == 0 {
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}

	return chunks
}

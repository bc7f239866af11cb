package converter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"meeting-minutes/internal/app/model"
)

// AssembleTranscript orders parts by segment index and joins their text with
// newlines. parts must hold exactly the indices 0..expected-1; anything else
// means the scheduler broke its contract and AssembleTranscript panics.
func AssembleTranscript(parts []model.PartialTranscript, expected int) string {
	if len(parts) != expected {
		panic(fmt.Sprintf("converter: assembled %d partial transcripts, expected %d", len(parts), expected))
	}

	ordered := make([]model.PartialTranscript, len(parts))
	copy(ordered, parts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	for i, part := range ordered {
		if part.Index != i {
			panic(fmt.Sprintf("converter: partial transcript indices are not 0..%d (found %d at position %d)", expected-1, part.Index, i))
		}
	}

	texts := lo.Map(ordered, func(part model.PartialTranscript, _ int) string {
		return part.Text
	})
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

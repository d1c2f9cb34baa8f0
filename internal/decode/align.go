package decode

import (
	"bytes"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Align tries all 256 candidate cipher offsets against src, keeping
// those whose inversion contains the primary-key sentinel. Results are
// sorted by ascending PKIndex. An empty result means the structure
// could not be recovered under any offset.
//
// The 256 trial inversions are independent, so with workers > 1 they
// fan out across a bounded worker pool; results are written into a
// fixed-size slot per offset so the final ordering is unaffected by
// goroutine completion order.
func Align(src []byte, workers int, logger *zap.Logger) []Section {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}

	slots := make([]*Section, 256)

	if workers == 1 {
		for offset := 0; offset < 256; offset++ {
			slots[offset] = tryOffset(src, byte(offset))
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for offset := 0; offset < 256; offset++ {
			offset := offset
			g.Go(func() error {
				slots[offset] = tryOffset(src, byte(offset))
				return nil
			})
		}
		_ = g.Wait() // tryOffset never errors
	}

	sections := make([]Section, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			sections = append(sections, *s)
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].PKIndex < sections[j].PKIndex
	})

	logger.Debug("structure alignment complete",
		zap.Int("candidates_tried", 256),
		zap.Int("sections_found", len(sections)),
	)

	return sections
}

func tryOffset(src []byte, offset byte) *Section {
	buf := Invert(src, offset)
	idx := bytes.Index(buf, pkSentinel)
	if idx == -1 {
		return nil
	}
	return &Section{Offset: offset, Bytes: buf, PKIndex: idx}
}

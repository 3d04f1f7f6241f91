package renderer

import (
	"github.com/samber/lo"
)

// tasksPerWorker splits the frame finer than one block per worker so progress arrives steadily
const tasksPerWorker = 4

// PartitionRows splits [0, height) into at most parts contiguous, ordered row ranges
func PartitionRows(height, parts int) []RowTask {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}

	rowsPerTask := (height + parts - 1) / parts
	chunks := lo.Chunk(lo.Range(height), rowsPerTask)

	return lo.Map(chunks, func(rows []int, index int) RowTask {
		return RowTask{
			TaskID:   index,
			StartRow: rows[0],
			EndRow:   rows[len(rows)-1] + 1,
		}
	})
}

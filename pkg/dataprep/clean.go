package dataprep

import (
	"encoding/binary"
	"math"

	"outlierprep/pkg/core"
)

// DuplicateMask marks every row that repeats an earlier row exactly.
// The first occurrence is kept. -0 and 0 compare equal.
func DuplicateMask(X *core.Matrix) []bool {
	seen := make(map[string]struct{}, X.R)
	mask := make([]bool, X.R)
	key := make([]byte, 0, 8*X.C)
	for i := 0; i < X.R; i++ {
		key = rowKey(key[:0], X.Row(i))
		if _, ok := seen[string(key)]; ok {
			mask[i] = true
			continue
		}
		seen[string(key)] = struct{}{}
	}
	return mask
}

func rowKey(buf []byte, row []float64) []byte {
	for _, v := range row {
		if v == 0 {
			v = 0
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

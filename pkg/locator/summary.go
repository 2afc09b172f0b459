package locator

// previewOffsets caps how many offsets a Summary lists.
const previewOffsets = 10

// Summary describes how blocks are laid out inside a capture.
type Summary struct {
	Count        int   `json:"count"`
	FirstOffsets []int `json:"first_offsets"`
	Smallest     int   `json:"smallest"`
	Largest      int   `json:"largest"`
	Average      int   `json:"average"`
	Covered      int   `json:"covered"`
}

// Summarize reports count, leading offsets and size statistics for ranges.
func Summarize(ranges []Range) Summary {
	s := Summary{Count: len(ranges)}
	if len(ranges) == 0 {
		return s
	}

	s.Smallest = ranges[0].Len()
	for i, r := range ranges {
		if i < previewOffsets {
			s.FirstOffsets = append(s.FirstOffsets, r.Start)
		}
		n := r.Len()
		s.Covered += n
		if n < s.Smallest {
			s.Smallest = n
		}
		if n > s.Largest {
			s.Largest = n
		}
	}
	s.Average = s.Covered / len(ranges)
	return s
}

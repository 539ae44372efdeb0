package stm32boot

// PagesFromRange returns the 0-based page indices covering [start, end),
// using the session's current flash page size. Both endpoints must be
// page-size aligned (spec testable property 6); misaligned endpoints yield
// a PageIndex error.
func (s *Session) PagesFromRange(start, end uint32) ([]int, error) {
	if start%s.flashPageSize != 0 {
		return nil, newError(KindPageIndex, "erase start address is not page-size aligned", nil)
	}
	if end%s.flashPageSize != 0 {
		return nil, newError(KindPageIndex, "erase end address is not page-size aligned", nil)
	}
	first := start / s.flashPageSize
	last := end / s.flashPageSize
	pages := make([]int, 0, last-first)
	for p := first; p < last; p++ {
		pages = append(pages, int(p))
	}
	return pages, nil
}

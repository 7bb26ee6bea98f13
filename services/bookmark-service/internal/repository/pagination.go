package repository

// Pagination defines the window for list queries. A zero Limit falls back to
// the repository default.
type Pagination struct {
	Limit  int64
	Offset int64
}

const defaultLimit int64 = 20

func (p Pagination) limit() int64 {
	if p.Limit <= 0 {
		return defaultLimit
	}
	return p.Limit
}

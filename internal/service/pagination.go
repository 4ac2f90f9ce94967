package service

import "strconv"

// Page describes offset pagination metadata for a list response. Next and
// Previous are offsets rendered as strings on the wire, nil when there is no
// adjacent page in that direction.
type Page struct {
	Next     *string
	Limit    int
	Offset   int
	Previous *string
}

// NewPage derives the metadata for a page that returned `returned` items.
// A further page is assumed to exist exactly when the current page came back
// full. The previous offset never goes below zero.
func NewPage(limit, offset, returned int) Page {
	page := Page{
		Limit:  limit,
		Offset: offset,
	}

	if returned == limit {
		next := strconv.Itoa(offset + limit)
		page.Next = &next
	}

	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		s := strconv.Itoa(prev)
		page.Previous = &s
	}

	return page
}

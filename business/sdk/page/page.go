// Package page provides support for query paging.
package page

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	defaultRows = 10
	maxRows     = 100
)

// Page represents the requested page and rows per page.
type Page struct {
	number int
	rows   int
}

// Parse parses the strings and validates the values are in reason.
func Parse(page string, rowsPerPage string) (Page, error) {
	number := 1
	if page != "" {
		var err error
		number, err = strconv.Atoi(page)
		if err != nil {
			return Page{}, fmt.Errorf("page conversion: %w", err)
		}
	}

	rows := defaultRows
	if rowsPerPage != "" {
		var err error
		rows, err = strconv.Atoi(rowsPerPage)
		if err != nil {
			return Page{}, fmt.Errorf("rows conversion: %w", err)
		}
	}

	if number <= 0 {
		return Page{}, errors.New("page value too small, must be larger than 0")
	}

	if rows <= 0 {
		return Page{}, errors.New("rows value too small, must be larger than 0")
	}

	if rows > maxRows {
		return Page{}, fmt.Errorf("rows value too large, must be less than %d", maxRows)
	}

	return Page{number: number, rows: rows}, nil
}

// MustParse creates a paging value for testing.
func MustParse(page string, rowsPerPage string) Page {
	pg, err := Parse(page, rowsPerPage)
	if err != nil {
		panic(err)
	}

	return pg
}

// String implements the stringer interface.
func (p Page) String() string {
	return fmt.Sprintf("page: %d rows: %d", p.number, p.rows)
}

// Number returns the page number.
func (p Page) Number() int {
	return p.number
}

// RowsPerPage returns the rows per page.
func (p Page) RowsPerPage() int {
	return p.rows
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.number - 1) * p.rows
}

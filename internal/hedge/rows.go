package hedge

import "github.com/amtfdev/hedgecalculator/internal/models"

// OptionRows is one revision of the option row list. Every edit returns a
// new list and leaves the receiver untouched.
type OptionRows []models.RawOption

// Add returns a new list with row appended.
func (r OptionRows) Add(row models.RawOption) OptionRows {
	out := make(OptionRows, len(r), len(r)+1)
	copy(out, r)
	return append(out, row)
}

// AddBlank returns a new list with an empty row appended.
func (r OptionRows) AddBlank() OptionRows {
	return r.Add(models.RawOption{})
}

// Remove returns a new list without the row at index i.
// An out-of-range index returns an unchanged copy.
func (r OptionRows) Remove(i int) OptionRows {
	if i < 0 || i >= len(r) {
		return r.clone()
	}
	out := make(OptionRows, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...)
}

// Set returns a new list with the row at index i replaced.
// An out-of-range index returns an unchanged copy.
func (r OptionRows) Set(i int, row models.RawOption) OptionRows {
	out := r.clone()
	if i >= 0 && i < len(out) {
		out[i] = row
	}
	return out
}

func (r OptionRows) clone() OptionRows {
	out := make(OptionRows, len(r))
	copy(out, r)
	return out
}

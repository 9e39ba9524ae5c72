// Package query filters and buckets the view collections. All functions
// are pure and keep the input order; none of them re-rank results.
package query

// Params is the immutable filter state of a listing page. A page builds a
// new value whenever the user edits the search box or picks a course.
type Params struct {
	Text           string
	SelectedCourse *string
}

// WithText returns a copy of p searching for text.
func (p Params) WithText(text string) Params {
	p.Text = text
	return p
}

// WithCourse returns a copy of p restricted to course.
func (p Params) WithCourse(course string) Params {
	p.SelectedCourse = &course
	return p
}

// WithoutCourse returns a copy of p with the course filter cleared.
func (p Params) WithoutCourse() Params {
	p.SelectedCourse = nil
	return p
}

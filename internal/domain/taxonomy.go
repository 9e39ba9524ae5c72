package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RawCourse is one senior-high course as returned by the taxonomy backend.
// The course title is the key of the enclosing /courses document; the
// single-course endpoint also sends it as Name.
type RawCourse struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description"`
	Subjects    []string `json:"subjects"`
	Fields      Fields   `json:"fields"`

	// Legacy holds per-track mappings (science_fields, arts_fields, ...)
	// shipped by older backends instead of Fields.
	Legacy map[string]Fields `json:"-"`
}

// Field groups the university programs reachable from one elective subject.
type Field struct {
	Programs []Program `json:"programs"`
}

// Program is a university program of study.
type Program struct {
	ProgramName  string   `json:"program_name"`
	Universities []string `json:"universities"`
	Careers      []Career `json:"careers"`
}

// Career is an occupation reachable from a program.
type Career struct {
	CareerName              string   `json:"career_name"`
	Description             string   `json:"description"`
	KeyResponsibilities     []string `json:"key_responsibilities"`
	RequiredSkills          []string `json:"required_skills"`
	EducationQualifications []string `json:"education_qualifications"`
	Salary                  string   `json:"salary"`
	JobOutlook              string   `json:"job_outlook"`
}

// NamedField is one entry of a Fields mapping.
type NamedField struct {
	Name  string
	Field Field
}

// Fields is the subject -> Field mapping of a course, kept in document order.
type Fields []NamedField

// Get returns the field mapped to name. A repeated name resolves to its
// last value.
func (f Fields) Get(name string) (Field, bool) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i].Name == name {
			return f[i].Field, true
		}
	}
	return Field{}, false
}

// Unique collapses repeated names the way a JSON object does: the entry
// stays at the position of its first occurrence and takes the last value.
func (f Fields) Unique() Fields {
	out := make(Fields, 0, len(f))
	pos := make(map[string]int, len(f))
	for _, nf := range f {
		if i, ok := pos[nf.Name]; ok {
			out[i].Field = nf.Field
			continue
		}
		pos[nf.Name] = len(out)
		out = append(out, nf)
	}
	return out
}

// Names returns the field names in document order.
func (f Fields) Names() []string {
	out := make([]string, 0, len(f))
	for _, nf := range f {
		out = append(out, nf.Name)
	}
	return out
}

// UnmarshalJSON accepts an object (order preserved) or null. Any other
// shape decodes to an empty mapping instead of failing the whole document.
func (f *Fields) UnmarshalJSON(b []byte) error {
	*f = nil
	if !isObject(b) {
		return nil
	}
	var out Fields
	err := walkObject(b, func(key string, raw json.RawMessage) error {
		var field Field
		lenient(raw, &field)
		out = append(out, NamedField{Name: key, Field: field})
		return nil
	})
	if err != nil {
		return err
	}
	*f = out.Unique()
	return nil
}

// MarshalJSON writes the mapping back as an object in document order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nf := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(nf.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(nf.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

const legacyFieldsSuffix = "_fields"

// UnmarshalJSON decodes a course leniently: a member of the wrong shape
// decodes to its zero value instead of failing the whole document.
func (c *RawCourse) UnmarshalJSON(b []byte) error {
	*c = RawCourse{}
	m, ok := members(b)
	if !ok {
		return nil
	}
	c.Name = text(m["name"])
	c.Description = text(m["description"])
	lenient(m["subjects"], &c.Subjects)
	lenient(m["fields"], &c.Fields)

	for key, raw := range m {
		if key == "fields" || !strings.HasSuffix(key, legacyFieldsSuffix) {
			continue
		}
		var fs Fields
		lenient(raw, &fs)
		if c.Legacy == nil {
			c.Legacy = make(map[string]Fields)
		}
		c.Legacy[key] = fs
	}
	return nil
}

func (f *Field) UnmarshalJSON(b []byte) error {
	*f = Field{}
	m, ok := members(b)
	if !ok {
		return nil
	}
	lenient(m["programs"], &f.Programs)
	return nil
}

func (p *Program) UnmarshalJSON(b []byte) error {
	*p = Program{}
	m, ok := members(b)
	if !ok {
		return nil
	}
	p.ProgramName = text(m["program_name"])
	lenient(m["universities"], &p.Universities)
	lenient(m["careers"], &p.Careers)
	return nil
}

func (c *Career) UnmarshalJSON(b []byte) error {
	*c = Career{}
	m, ok := members(b)
	if !ok {
		return nil
	}
	c.CareerName = text(m["career_name"])
	c.Description = text(m["description"])
	lenient(m["key_responsibilities"], &c.KeyResponsibilities)
	lenient(m["required_skills"], &c.RequiredSkills)
	lenient(m["education_qualifications"], &c.EducationQualifications)
	c.Salary = text(m["salary"])
	c.JobOutlook = text(m["job_outlook"])
	return nil
}

// members splits a JSON object into its raw members. A repeated key keeps
// its last value.
func members(b []byte) (map[string]json.RawMessage, bool) {
	if !isObject(b) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

// lenient decodes raw into v and leaves v untouched when raw is absent or
// has the wrong shape.
func lenient[T any](raw json.RawMessage, v *T) {
	if len(raw) == 0 {
		return
	}
	var tmp T
	if err := json.Unmarshal(raw, &tmp); err != nil {
		return
	}
	*v = tmp
}

// text reads a string member. Numbers keep their literal text; any other
// shape is empty.
func text(raw json.RawMessage) string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(raw) == 0 || dec.Decode(&v) != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// TitledCourse is one entry of the /courses document.
type TitledCourse struct {
	Title  string
	Course RawCourse
}

// CourseDocument is the /courses response: course title -> RawCourse,
// kept in document order.
type CourseDocument []TitledCourse

func (d *CourseDocument) UnmarshalJSON(b []byte) error {
	*d = nil
	if !isObject(b) {
		return nil
	}
	var out CourseDocument
	pos := map[string]int{}
	err := walkObject(b, func(key string, raw json.RawMessage) error {
		var rc RawCourse
		if err := json.Unmarshal(raw, &rc); err != nil {
			return fmt.Errorf("course %q: %w", key, err)
		}
		// A repeated title keeps its first position and its last value.
		if i, ok := pos[key]; ok {
			out[i].Course = rc
			return nil
		}
		pos[key] = len(out)
		out = append(out, TitledCourse{Title: key, Course: rc})
		return nil
	})
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// isObject reports whether b holds a JSON object (ignoring leading space).
func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// walkObject streams the members of a JSON object in document order.
func walkObject(b []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

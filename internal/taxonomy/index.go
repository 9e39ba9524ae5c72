package taxonomy

import (
	"course-explorer/internal/domain"
)

// Index answers the course detail queries (programs and careers per
// subject, every reachable career) for one course. It is built once in
// O(total careers); every query afterwards is a map lookup plus a copy, so
// callers may not mutate the index through returned slices.
type Index struct {
	title      string
	raw        domain.RawCourse
	subjects   []string
	fieldNames []string
	programs   map[string][]domain.Program
	careers    map[string][]string
	all        []domain.FlattenedCareerRecord
}

// NewIndex indexes the course's "fields" mapping.
func NewIndex(title string, raw domain.RawCourse) *Index {
	return Normalizer{}.NewIndex(title, raw)
}

// NewIndex indexes the fields the Normalizer resolves for the course.
func (n Normalizer) NewIndex(title string, raw domain.RawCourse) *Index {
	fields := n.FieldsOf(title, raw)

	idx := &Index{
		title:      title,
		raw:        raw,
		subjects:   cloneStrings(raw.Subjects),
		fieldNames: fields.Names(),
		programs:   make(map[string][]domain.Program, len(fields)),
		careers:    make(map[string][]string, len(fields)),
		all:        []domain.FlattenedCareerRecord{},
	}

	for _, nf := range fields {
		idx.programs[nf.Name] = nf.Field.Programs

		names := newOrderedSet()
		for _, p := range nf.Field.Programs {
			for _, c := range p.Careers {
				names.add(c.CareerName)
				idx.all = append(idx.all, flatten(c, nf.Name, p.ProgramName))
			}
		}
		idx.careers[nf.Name] = names.items
	}
	return idx
}

// Title is the course title the index was built for.
func (x *Index) Title() string { return x.title }

// Raw returns the indexed course document.
func (x *Index) Raw() domain.RawCourse { return x.raw }

// Subjects returns the course's subject list as given by the backend.
func (x *Index) Subjects() []string {
	return cloneStrings(x.subjects)
}

// FieldNames returns the subjects that map to university programs, in
// document order.
func (x *Index) FieldNames() []string {
	return cloneStrings(x.fieldNames)
}

// ProgramsFor returns the programs reachable from subject. Core subjects
// have no mapped field and get an empty slice.
func (x *Index) ProgramsFor(subject string) []domain.Program {
	ps := x.programs[subject]
	out := make([]domain.Program, 0, len(ps))
	for _, p := range ps {
		out = append(out, cloneProgram(p))
	}
	return out
}

// CareersFor returns the distinct career names reachable from subject, in
// order of first occurrence across its programs.
func (x *Index) CareersFor(subject string) []string {
	return cloneStrings(x.careers[subject])
}

// AllCareers returns one record per (subject, program, career) path. A
// career reachable through several paths appears several times.
func (x *Index) AllCareers() []domain.FlattenedCareerRecord {
	out := make([]domain.FlattenedCareerRecord, len(x.all))
	copy(out, x.all)
	return out
}

func cloneProgram(p domain.Program) domain.Program {
	careers := make([]domain.Career, 0, len(p.Careers))
	for _, c := range p.Careers {
		c.KeyResponsibilities = cloneStrings(c.KeyResponsibilities)
		c.RequiredSkills = cloneStrings(c.RequiredSkills)
		c.EducationQualifications = cloneStrings(c.EducationQualifications)
		careers = append(careers, c)
	}
	return domain.Program{
		ProgramName:  p.ProgramName,
		Universities: cloneStrings(p.Universities),
		Careers:      careers,
	}
}

func flatten(c domain.Career, subject, program string) domain.FlattenedCareerRecord {
	return domain.FlattenedCareerRecord{
		CareerID:                CareerID(c.CareerName).String(),
		CareerName:              c.CareerName,
		Subject:                 subject,
		Program:                 program,
		Description:             c.Description,
		KeyResponsibilities:     cloneStrings(c.KeyResponsibilities),
		RequiredSkills:          cloneStrings(c.RequiredSkills),
		EducationQualifications: cloneStrings(c.EducationQualifications),
		Salary:                  c.Salary,
		JobOutlook:              c.JobOutlook,
	}
}

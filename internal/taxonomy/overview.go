package taxonomy

// Limits used by the course detail summaries.
const (
	featuredCareerLimit = 5
	aspirationLimit     = 3
	subjectCareerLimit  = 5
)

// Overview is the "key information" summary of a course.
type Overview struct {
	FieldCount      int      `json:"field_count"`
	Interests       []string `json:"interests"`
	Aspirations     []string `json:"aspirations"`
	FeaturedCareers []string `json:"featured_careers"`
	MoreCareers     bool     `json:"more_careers"`
}

// SubjectSummary describes one subject of the course.
type SubjectSummary struct {
	Subject      string   `json:"subject"`
	Elective     bool     `json:"elective"`
	ProgramCount int      `json:"program_count"`
	ProgramNames []string `json:"program_names"`
	Careers      []string `json:"careers"`
}

// Overview summarises the course. Featured careers and aspirations are
// taken from AllCareers, so a name may repeat when it is reachable twice.
func (x *Index) Overview() Overview {
	return Overview{
		FieldCount:      len(x.fieldNames),
		Interests:       x.FieldNames(),
		Aspirations:     x.careerNamesHead(aspirationLimit),
		FeaturedCareers: x.careerNamesHead(featuredCareerLimit),
		MoreCareers:     len(x.all) > featuredCareerLimit,
	}
}

// SubjectSummaries returns one summary per subject in the course's subject
// list. Subjects without a mapped field are reported as non-elective.
func (x *Index) SubjectSummaries() []SubjectSummary {
	out := make([]SubjectSummary, 0, len(x.subjects))
	for _, s := range x.subjects {
		ps, elective := x.programs[s]
		names := make([]string, 0, len(ps))
		for _, p := range ps {
			names = append(names, p.ProgramName)
		}
		careers := x.CareersFor(s)
		if len(careers) > subjectCareerLimit {
			careers = careers[:subjectCareerLimit]
		}
		out = append(out, SubjectSummary{
			Subject:      s,
			Elective:     elective,
			ProgramCount: len(ps),
			ProgramNames: names,
			Careers:      careers,
		})
	}
	return out
}

func (x *Index) careerNamesHead(n int) []string {
	if n > len(x.all) {
		n = len(x.all)
	}
	out := make([]string, 0, n)
	for _, r := range x.all[:n] {
		out = append(out, r.CareerName)
	}
	return out
}

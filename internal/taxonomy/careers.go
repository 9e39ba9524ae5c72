package taxonomy

import (
	"github.com/google/uuid"

	"course-explorer/internal/domain"
)

// careerNamespace scopes the name-based career ids.
var careerNamespace = uuid.MustParse("6f0d8a52-4a3c-5e0b-9d1e-7c2b8f4e1a93")

// CareerID returns a stable synthetic id for a career name. The name is
// used verbatim, so ids inherit the case-sensitive matching rule.
func CareerID(name string) uuid.UUID {
	return uuid.NewSHA1(careerNamespace, []byte(name))
}

// DeriveCareers builds the careers list from the course taxonomy itself.
// RelatedCourses holds every course title whose fields reach the career
// name; description comes from the first occurrence and skills are the
// union of required_skills in first-seen order. Courses and careers keep
// document order.
func (n Normalizer) DeriveCareers(doc domain.CourseDocument) []domain.CareerView {
	type acc struct {
		view    domain.CareerView
		courses *orderedSet
		skills  *orderedSet
	}

	order := []string{}
	byName := map[string]*acc{}

	for _, tc := range doc {
		for _, nf := range n.FieldsOf(tc.Title, tc.Course) {
			for _, p := range nf.Field.Programs {
				for _, c := range p.Careers {
					a, ok := byName[c.CareerName]
					if !ok {
						a = &acc{
							view: domain.CareerView{
								ID:          CareerID(c.CareerName).String(),
								Title:       c.CareerName,
								Description: c.Description,
								Icon:        DefaultIcon,
							},
							courses: newOrderedSet(),
							skills:  newOrderedSet(),
						}
						byName[c.CareerName] = a
						order = append(order, c.CareerName)
					}
					a.courses.add(tc.Title)
					for _, s := range c.RequiredSkills {
						a.skills.add(s)
					}
				}
			}
		}
	}

	out := make([]domain.CareerView, 0, len(order))
	for _, name := range order {
		a := byName[name]
		a.view.RelatedCourses = a.courses.items
		a.view.Skills = a.skills.items
		out = append(out, a.view)
	}
	return out
}

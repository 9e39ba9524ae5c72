package domain

// CourseView is the flattened, UI-ready form of one course.
type CourseView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subjects    []string `json:"subjects"`
	Careers     []string `json:"careers"`
	Icon        string   `json:"icon"`
}

// CareerView is one career as listed on the careers page.
// RelatedCourses holds course titles matched by exact career_name equality.
type CareerView struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RelatedCourses []string `json:"relatedCourses"`
	Skills         []string `json:"skills"`
	Icon           string   `json:"icon"`
}

// UniversityView is one institution in the directory.
type UniversityView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Website     string         `json:"website"`
	Programs    []string       `json:"programs"`
	Type        UniversityType `json:"type"`
	Logo        string         `json:"logo"`
}

// FlattenedCareerRecord is a career together with the subject and program it
// was reached from. The same career name appears once per path.
type FlattenedCareerRecord struct {
	CareerID                string   `json:"career_id"`
	CareerName              string   `json:"career_name"`
	Subject                 string   `json:"subject"`
	Program                 string   `json:"program"`
	Description             string   `json:"description"`
	KeyResponsibilities     []string `json:"key_responsibilities"`
	RequiredSkills          []string `json:"required_skills"`
	EducationQualifications []string `json:"education_qualifications"`
	Salary                  string   `json:"salary"`
	JobOutlook              string   `json:"job_outlook"`
}

// UniversityType is the institution kind reported by the backend.
type UniversityType string

const (
	UniversityTypePublic    UniversityType = "public"
	UniversityTypePrivate   UniversityType = "private"
	UniversityTypeTechnical UniversityType = "technical"
)

func (t UniversityType) String() string { return string(t) }

func (t UniversityType) IsValid() bool {
	switch t {
	case UniversityTypePublic, UniversityTypePrivate, UniversityTypeTechnical:
		return true
	}
	return false
}

package taxonomy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-explorer/internal/domain"
)

func career(name string, skills ...string) domain.Career {
	return domain.Career{CareerName: name, Description: name + " description", RequiredSkills: skills}
}

func program(name string, careers ...domain.Career) domain.Program {
	return domain.Program{ProgramName: name, Universities: []string{"UG"}, Careers: careers}
}

// scienceCourse reaches "Doctor" through two subjects and two programs.
func scienceCourse() domain.RawCourse {
	return domain.RawCourse{
		Description: "Science track",
		Subjects:    []string{"English", "Biology", "Chemistry"},
		Fields: domain.Fields{
			{Name: "Biology", Field: domain.Field{Programs: []domain.Program{
				program("Medicine", career("Doctor", "Diagnosis"), career("Surgeon")),
				program("Nursing", career("Nurse", "Care"), career("Doctor")),
			}}},
			{Name: "Chemistry", Field: domain.Field{Programs: []domain.Program{
				program("Pharmacy", career("Pharmacist"), career("Doctor")),
			}}},
		},
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"General Arts", "general-arts"},
		{"General Science", "general-science"},
		{"Technical/Vocational", "technical/vocational"},
		{"Home   Economics", "home-economics"},
		{"VISUAL ARTS", "visual-arts"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Slug(tt.in)
		assert.Equal(t, tt.want, got, "Slug(%q)", tt.in)
		assert.Equal(t, got, Slug(got), "Slug must be idempotent for %q", tt.in)
	}
}

func TestNormalize_DeduplicatesCareersInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	view := Normalize("General Science", scienceCourse())

	assert.Equal(t, "general-science", view.ID)
	assert.Equal(t, "General Science", view.Title)
	assert.Equal(t, "Science track", view.Description)
	assert.Equal(t, []string{"English", "Biology", "Chemistry"}, view.Subjects)
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse", "Pharmacist"}, view.Careers)
	assert.Equal(t, DefaultIcon, view.Icon)

	seen := map[string]bool{}
	for _, c := range view.Careers {
		require.False(t, seen[c], "duplicate career %q", c)
		seen[c] = true
	}
}

func TestNormalize_MissingFieldsYieldsEmptyCareers(t *testing.T) {
	t.Parallel()

	view := Normalize("Business", domain.RawCourse{Description: "b"})

	require.NotNil(t, view.Careers)
	assert.Empty(t, view.Careers)
	require.NotNil(t, view.Subjects)

	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"careers":[]`)
}

func TestNormalize_IsReferentiallyTransparent(t *testing.T) {
	t.Parallel()

	raw := scienceCourse()
	first := Normalize("General Science", raw)
	second := Normalize("General Science", raw)
	assert.Equal(t, first, second)

	first.Careers[0] = "mutated"
	assert.Equal(t, "Doctor", Normalize("General Science", raw).Careers[0])
}

func TestNormalizer_LegacyFieldKeys(t *testing.T) {
	t.Parallel()

	raw := domain.RawCourse{
		Legacy: map[string]domain.Fields{
			"science_fields": scienceCourse().Fields,
		},
	}
	n := Normalizer{LegacyFieldKeys: DefaultLegacyFieldKeys}

	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse", "Pharmacist"}, n.Normalize("General Science", raw).Careers)
	assert.Empty(t, n.Normalize("Unknown Track", raw).Careers, "titles outside the table get no careers")
	assert.Empty(t, Normalize("General Science", raw).Careers, "zero Normalizer ignores legacy keys")
}

func TestNormalizeAll_KeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := domain.CourseDocument{
		{Title: "Visual Arts", Course: domain.RawCourse{}},
		{Title: "General Science", Course: scienceCourse()},
		{Title: "Visual   Arts", Course: domain.RawCourse{}},
	}
	views := Normalizer{}.NormalizeAll(doc)

	require.Len(t, views, 3)
	assert.Equal(t, "visual-arts", views[0].ID)
	assert.Equal(t, "general-science", views[1].ID)
	assert.Equal(t, views[0].ID, views[2].ID, "same slug collapses to the same id")
}

func TestIndex_ProgramsAndCareersForSubject(t *testing.T) {
	t.Parallel()

	idx := NewIndex("General Science", scienceCourse())

	assert.Equal(t, []string{"English", "Biology", "Chemistry"}, idx.Subjects())
	assert.Equal(t, []string{"Biology", "Chemistry"}, idx.FieldNames())

	ps := idx.ProgramsFor("Biology")
	require.Len(t, ps, 2)
	assert.Equal(t, "Medicine", ps[0].ProgramName)
	assert.Equal(t, "Nursing", ps[1].ProgramName)

	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse"}, idx.CareersFor("Biology"))
	assert.Equal(t, []string{"Pharmacist", "Doctor"}, idx.CareersFor("Chemistry"))

	assert.NotNil(t, idx.ProgramsFor("English"))
	assert.Empty(t, idx.ProgramsFor("English"), "core subjects have no programs")
	assert.Empty(t, idx.CareersFor("English"))
}

func TestIndex_ProgramsForReturnsCopies(t *testing.T) {
	t.Parallel()

	idx := NewIndex("General Science", scienceCourse())

	ps := idx.ProgramsFor("Biology")
	ps[0].Careers[0].CareerName = "mutated"
	ps[0].Careers[0].RequiredSkills[0] = "mutated"
	ps[0].Universities[0] = "mutated"

	again := idx.ProgramsFor("Biology")
	assert.Equal(t, "Doctor", again[0].Careers[0].CareerName)
	assert.Equal(t, []string{"Diagnosis"}, again[0].Careers[0].RequiredSkills)
	assert.Equal(t, []string{"UG"}, again[0].Universities)
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse"}, idx.CareersFor("Biology"))
}

func TestIndex_RepeatedFieldNameKeepsLastValue(t *testing.T) {
	t.Parallel()

	raw := domain.RawCourse{
		Subjects: []string{"Biology", "Physics"},
		Fields: domain.Fields{
			{Name: "Biology", Field: domain.Field{Programs: []domain.Program{program("Medicine", career("Doctor"))}}},
			{Name: "Physics", Field: domain.Field{Programs: []domain.Program{program("Engineering", career("Engineer"))}}},
			{Name: "Biology", Field: domain.Field{Programs: []domain.Program{program("Nursing", career("Nurse"))}}},
		},
	}

	idx := NewIndex("General Science", raw)
	assert.Equal(t, []string{"Biology", "Physics"}, idx.FieldNames())
	assert.Equal(t, []string{"Nurse"}, idx.CareersFor("Biology"))
	require.Len(t, idx.AllCareers(), 2)
	assert.Equal(t, "Nurse", idx.AllCareers()[0].CareerName)

	assert.Equal(t, []string{"Nurse", "Engineer"}, Normalize("General Science", raw).Careers)
}

func TestIndex_CareersForIsStable(t *testing.T) {
	t.Parallel()

	idx := NewIndex("General Science", scienceCourse())

	first := idx.CareersFor("Biology")
	first[0] = "mutated"
	second := idx.CareersFor("Biology")
	third := idx.CareersFor("Biology")

	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse"}, second)
	assert.Equal(t, second, third)
}

func TestIndex_AllCareersDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	raw := scienceCourse()
	idx := NewIndex("General Science", raw)
	all := idx.AllCareers()

	want := 0
	for _, nf := range raw.Fields {
		for _, p := range nf.Field.Programs {
			want += len(p.Careers)
		}
	}
	require.Len(t, all, want)

	doctors := 0
	for _, r := range all {
		if r.CareerName == "Doctor" {
			doctors++
			assert.Equal(t, CareerID("Doctor").String(), r.CareerID)
		}
	}
	assert.Equal(t, 3, doctors)

	assert.Equal(t, "Biology", all[0].Subject)
	assert.Equal(t, "Medicine", all[0].Program)
	assert.Equal(t, []string{"Diagnosis"}, all[0].RequiredSkills)
	assert.Equal(t, "Chemistry", all[len(all)-1].Subject)
	assert.Equal(t, "Pharmacy", all[len(all)-1].Program)
}

func TestIndex_EmptyCourse(t *testing.T) {
	t.Parallel()

	idx := NewIndex("Business", domain.RawCourse{})

	assert.Empty(t, idx.AllCareers())
	assert.NotNil(t, idx.AllCareers())
	assert.Empty(t, idx.FieldNames())
	assert.Equal(t, Overview{Interests: []string{}, Aspirations: []string{}, FeaturedCareers: []string{}}, idx.Overview())
}

func TestIndex_Overview(t *testing.T) {
	t.Parallel()

	ov := NewIndex("General Science", scienceCourse()).Overview()

	assert.Equal(t, 2, ov.FieldCount)
	assert.Equal(t, []string{"Biology", "Chemistry"}, ov.Interests)
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse"}, ov.Aspirations)
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse", "Doctor", "Pharmacist"}, ov.FeaturedCareers)
	assert.True(t, ov.MoreCareers)
}

func TestIndex_SubjectSummaries(t *testing.T) {
	t.Parallel()

	sums := NewIndex("General Science", scienceCourse()).SubjectSummaries()
	require.Len(t, sums, 3)

	assert.Equal(t, SubjectSummary{Subject: "English", ProgramNames: []string{}, Careers: []string{}}, sums[0])
	assert.True(t, sums[1].Elective)
	assert.Equal(t, 2, sums[1].ProgramCount)
	assert.Equal(t, []string{"Medicine", "Nursing"}, sums[1].ProgramNames)
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse"}, sums[1].Careers)
}

func TestCareerID_IsStableAndCaseSensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CareerID("Nurse"), CareerID("Nurse"))
	assert.NotEqual(t, CareerID("Nurse"), CareerID("nurse"))
	assert.Equal(t, uint8(5), uint8(CareerID("Nurse").Version()))
}

func TestDeriveCareers(t *testing.T) {
	t.Parallel()

	doc := domain.CourseDocument{
		{Title: "General Science", Course: scienceCourse()},
		{Title: "Home Economics", Course: domain.RawCourse{Fields: domain.Fields{
			{Name: "Food and Nutrition", Field: domain.Field{Programs: []domain.Program{
				program("Dietetics", career("Nurse", "Nutrition"), career("Dietitian")),
			}}},
		}}},
		{Title: "Business", Course: domain.RawCourse{}},
	}

	careers := Normalizer{}.DeriveCareers(doc)

	titles := make([]string, 0, len(careers))
	for _, c := range careers {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"Doctor", "Surgeon", "Nurse", "Pharmacist", "Dietitian"}, titles)

	nurse := careers[2]
	assert.Equal(t, []string{"General Science", "Home Economics"}, nurse.RelatedCourses)
	assert.Equal(t, []string{"Care", "Nutrition"}, nurse.Skills)
	assert.Equal(t, "Nurse description", nurse.Description)
	assert.Equal(t, CareerID("Nurse").String(), nurse.ID)

	assert.Equal(t, []string{"General Science"}, careers[0].RelatedCourses)
	assert.Equal(t, []string{}, careers[1].Skills)
}

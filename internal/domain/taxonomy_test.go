package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coursesDoc = `{
  "Visual Arts": {
    "description": "Art and design",
    "subjects": ["Graphic Design", "Picture Making"],
    "fields": {
      "Picture Making": {"programs": [{"program_name": "Fine Art", "universities": ["KNUST"], "careers": [{"career_name": "Illustrator"}]}]},
      "Graphic Design": {"programs": []}
    }
  },
  "General Science": {
    "description": "Science track",
    "subjects": ["Biology"]
  }
}`

func TestCourseDocument_PreservesOrder(t *testing.T) {
	t.Parallel()

	var doc CourseDocument
	require.NoError(t, json.Unmarshal([]byte(coursesDoc), &doc))
	require.Len(t, doc, 2)

	assert.Equal(t, "Visual Arts", doc[0].Title)
	assert.Equal(t, "General Science", doc[1].Title)

	va := doc[0].Course
	assert.Equal(t, []string{"Picture Making", "Graphic Design"}, va.Fields.Names())

	pm, ok := va.Fields.Get("Picture Making")
	require.True(t, ok)
	require.Len(t, pm.Programs, 1)
	assert.Equal(t, "Illustrator", pm.Programs[0].Careers[0].CareerName)

	assert.Nil(t, doc[1].Course.Fields)
}

func TestCourseDocument_NullAndNonObject(t *testing.T) {
	t.Parallel()

	var doc CourseDocument
	require.NoError(t, json.Unmarshal([]byte(`null`), &doc))
	assert.Empty(t, doc)

	require.NoError(t, json.Unmarshal([]byte(`[]`), &doc))
	assert.Empty(t, doc)
}

func TestFields_TolerantShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "null", in: `null`, want: []string{}},
		{name: "array", in: `["Physics"]`, want: []string{}},
		{name: "string", in: `"oops"`, want: []string{}},
		{name: "field with null body", in: `{"Physics": null}`, want: []string{"Physics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var fs Fields
			require.NoError(t, json.Unmarshal([]byte(tt.in), &fs))
			assert.Equal(t, tt.want, fs.Names())
		})
	}
}

func TestCourseDocument_WrongShapedMembersDecodeEmpty(t *testing.T) {
	t.Parallel()

	in := `{
	  "General Science": {
	    "subjects": "Biology",
	    "fields": {
	      "Biology": {"programs": {"x": 1}},
	      "Chemistry": {"programs": [
	        {"program_name": "Pharmacy", "universities": "KNUST", "careers": [
	          {"career_name": "Pharmacist", "salary": 4500, "required_skills": [1, 2], "job_outlook": {"trend": "up"}},
	          "not a career"
	        ]},
	        7
	      ]}
	    }
	  },
	  "General Arts": {"description": "Arts track", "subjects": ["History"]}
	}`

	var doc CourseDocument
	require.NoError(t, json.Unmarshal([]byte(in), &doc))
	require.Len(t, doc, 2)

	sci := doc[0].Course
	assert.Nil(t, sci.Subjects)
	assert.Equal(t, []string{"Biology", "Chemistry"}, sci.Fields.Names())

	bio, ok := sci.Fields.Get("Biology")
	require.True(t, ok)
	assert.Empty(t, bio.Programs)

	chem, _ := sci.Fields.Get("Chemistry")
	require.Len(t, chem.Programs, 2)
	pharmacy := chem.Programs[0]
	assert.Equal(t, "Pharmacy", pharmacy.ProgramName)
	assert.Nil(t, pharmacy.Universities)
	require.Len(t, pharmacy.Careers, 2)
	assert.Equal(t, Career{CareerName: "Pharmacist", Salary: "4500"}, pharmacy.Careers[0])
	assert.Equal(t, Career{}, pharmacy.Careers[1])
	assert.Equal(t, Program{}, chem.Programs[1])

	assert.Equal(t, "Arts track", doc[1].Course.Description)
	assert.Equal(t, []string{"History"}, doc[1].Course.Subjects)
}

func TestCourseDocument_RepeatedKeysKeepLastValue(t *testing.T) {
	t.Parallel()

	in := `{
	  "Business": {"description": "first"},
	  "General Science": {
	    "fields": {
	      "Biology": {"programs": [{"program_name": "Medicine"}]},
	      "Physics": {"programs": []},
	      "Biology": {"programs": [{"program_name": "Nursing"}]}
	    }
	  },
	  "Business": {"description": "second"}
	}`

	var doc CourseDocument
	require.NoError(t, json.Unmarshal([]byte(in), &doc))
	require.Len(t, doc, 2)

	assert.Equal(t, "Business", doc[0].Title)
	assert.Equal(t, "second", doc[0].Course.Description)

	fs := doc[1].Course.Fields
	assert.Equal(t, []string{"Biology", "Physics"}, fs.Names())
	bio, _ := fs.Get("Biology")
	require.Len(t, bio.Programs, 1)
	assert.Equal(t, "Nursing", bio.Programs[0].ProgramName)
}

func TestFields_Unique(t *testing.T) {
	t.Parallel()

	fs := Fields{
		{Name: "A", Field: Field{Programs: []Program{{ProgramName: "a1"}}}},
		{Name: "B"},
		{Name: "A", Field: Field{Programs: []Program{{ProgramName: "a2"}}}},
	}
	u := fs.Unique()

	assert.Equal(t, []string{"A", "B"}, u.Names())
	assert.Equal(t, "a2", u[0].Field.Programs[0].ProgramName)
	assert.Len(t, fs, 3, "input is not modified")

	a, _ := fs.Get("A")
	assert.Equal(t, "a2", a.Programs[0].ProgramName)
}

func TestFields_MarshalKeepsOrder(t *testing.T) {
	t.Parallel()

	fs := Fields{
		{Name: "Zoology", Field: Field{}},
		{Name: "Art", Field: Field{}},
	}
	b, err := json.Marshal(fs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zoology":{"programs":null},"Art":{"programs":null}}`, string(b))
	assert.Less(t, strings.Index(string(b), "Zoology"), strings.Index(string(b), `"Art"`))
}

func TestRawCourse_LegacyFieldKeys(t *testing.T) {
	t.Parallel()

	in := `{
	  "description": "Science",
	  "subjects": ["Physics"],
	  "science_fields": {"Physics": {"programs": [{"program_name": "BSc Physics", "careers": [{"career_name": "Physicist"}]}]}}
	}`

	var rc RawCourse
	require.NoError(t, json.Unmarshal([]byte(in), &rc))

	assert.Empty(t, rc.Fields)
	require.Contains(t, rc.Legacy, "science_fields")
	assert.Equal(t, []string{"Physics"}, rc.Legacy["science_fields"].Names())
}

func TestRawCourse_SingleCourseName(t *testing.T) {
	t.Parallel()

	var rc RawCourse
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Business", "description": "d", "subjects": []}`), &rc))
	assert.Equal(t, "Business", rc.Name)
	assert.Nil(t, rc.Legacy)
}

func TestUniversityType_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, UniversityTypePublic.IsValid())
	assert.True(t, UniversityTypeTechnical.IsValid())
	assert.False(t, UniversityType("online").IsValid())
	assert.Equal(t, "private", UniversityTypePrivate.String())
}

package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jobtagger/common/models"
)

const (
	LabelBachelors = "Bachelor's"
	LabelMasters   = "Master's"
	LabelPhD       = "PhD"
	LabelNoDegree  = "No Degree"
)

// Category is one label and the substrings that select it.
type Category struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered keyword table. The first category with a hit wins;
// Default is returned when none match.
type Table struct {
	Categories []Category `yaml:"categories"`
	Default    string     `yaml:"default"`
}

type Tables struct {
	Experience Table `yaml:"experience"`
	JobType    Table `yaml:"job_type"`
	Education  Table `yaml:"education"`
	Salary     Table `yaml:"salary"`
}

func ExperienceTable() Table {
	return Table{
		Categories: []Category{
			{Label: "Entry", Keywords: []string{"entry", "fresher", "0-1", "0-2", "junior"}},
			{Label: "Mid", Keywords: []string{"mid", "2-4", "3-5", "intermediate"}},
			{Label: "Senior", Keywords: []string{"senior", "lead", "5+", "5+ years"}},
			{Label: "Executive", Keywords: []string{"manager", "director", "vp", "cto"}},
		},
		Default: "Mid",
	}
}

func JobTypeTable() Table {
	return Table{
		Categories: []Category{
			{Label: "Backend", Keywords: []string{"backend", "api", "server", "database", "sql", "nosql"}},
			{Label: "Frontend", Keywords: []string{"frontend", "react", "angular", "vue", "javascript"}},
			{Label: "Fullstack", Keywords: []string{"full stack", "full-stack", "mern", "mean"}},
			{Label: "DevOps", Keywords: []string{"devops", "aws", "azure", "docker", "kubernetes"}},
			{Label: "Data", Keywords: []string{"data science", "machine learning", "ai", "data analysis"}},
			{Label: "Mobile", Keywords: []string{"ios", "android", "react native", "flutter"}},
			{Label: "QA", Keywords: []string{"qa", "testing", "test automation", "selenium"}},
		},
		Default: "Other",
	}
}

// EducationTable only looks for postgraduate degrees and otherwise assumes a
// bachelor's. The No Degree and Bachelor's keywords are never consulted.
func EducationTable() Table {
	return Table{
		Categories: []Category{
			{Label: LabelPhD, Keywords: []string{"phd", "doctorate"}},
			{Label: LabelMasters, Keywords: []string{"master", "msc", "mba"}},
		},
		Default: LabelBachelors,
	}
}

// FullEducationTable consults every education keyword list, highest degree
// first.
func FullEducationTable() Table {
	return Table{
		Categories: []Category{
			{Label: LabelPhD, Keywords: []string{"phd", "doctorate"}},
			{Label: LabelMasters, Keywords: []string{"master", "msc", "m.tech", "mba"}},
			{Label: LabelBachelors, Keywords: []string{"bachelor", "b.tech", "b.e.", "bsc", "bs "}},
			{Label: LabelNoDegree, Keywords: []string{"no degree", "high school", "diploma"}},
		},
		Default: LabelBachelors,
	}
}

func SalaryTable() Table {
	return Table{
		Categories: []Category{
			{Label: "Competitive", Keywords: []string{"lpa", "lakh"}},
		},
		Default: models.NotSpecified,
	}
}

// DefaultTables returns the built-in tables. fullEducation switches education
// to FullEducationTable.
func DefaultTables(fullEducation bool) Tables {
	t := Tables{
		Experience: ExperienceTable(),
		JobType:    JobTypeTable(),
		Education:  EducationTable(),
		Salary:     SalaryTable(),
	}
	if fullEducation {
		t.Education = FullEducationTable()
	}
	return t
}

// LoadTables reads a YAML keyword file and overlays it on base. Tables absent
// from the file keep their base value.
func LoadTables(path string, base Tables) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read keyword tables: %w", err)
	}

	var file Tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("failed to parse keyword tables %s: %w", path, err)
	}

	merged := base
	for _, pair := range []struct {
		dst *Table
		src Table
		key string
	}{
		{&merged.Experience, file.Experience, "experience"},
		{&merged.JobType, file.JobType, "job_type"},
		{&merged.Education, file.Education, "education"},
		{&merged.Salary, file.Salary, "salary"},
	} {
		if len(pair.src.Categories) == 0 && pair.src.Default == "" {
			continue
		}
		if err := pair.src.validate(); err != nil {
			return base, fmt.Errorf("invalid %s table: %w", pair.key, err)
		}
		*pair.dst = pair.src
	}
	return merged, nil
}

func (t Table) validate() error {
	if t.Default == "" {
		return fmt.Errorf("missing default label")
	}
	for i, c := range t.Categories {
		if c.Label == "" {
			return fmt.Errorf("category %d has no label", i)
		}
	}
	return nil
}

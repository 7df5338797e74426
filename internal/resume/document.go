// Package resume defines the structured resume document that drives the
// interpreter, the answer index and the HTTP API, along with its loaders and
// validation.
package resume

// Document is the whole resume. It is treated as read-only once loaded.
type Document struct {
	Meta           *Meta             `json:"meta,omitempty"`
	Personal       Personal          `json:"personal"`
	Summary        string            `json:"summary,omitempty"`
	Highlights     []string          `json:"highlights,omitempty"`
	Skills         []SkillGroup      `json:"skills,omitempty" validate:"dive"`
	Experience     []Role            `json:"experience,omitempty" validate:"dive"`
	Projects       []Project         `json:"projects,omitempty" validate:"dive"`
	Education      []Education       `json:"education,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty" validate:"dive"`
	Extras         *Extras           `json:"extras,omitempty"`
	TagColors      map[string]string `json:"tagColors,omitempty"`
}

// Meta holds export metadata.
type Meta struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Locale    string `json:"locale,omitempty"`
	URL       string `json:"url,omitempty" validate:"omitempty,url"`
	PDF       string `json:"pdf,omitempty" validate:"omitempty,url"`
}

// Personal is the owner of the resume.
type Personal struct {
	Name     string   `json:"name" validate:"required"`
	Title    string   `json:"title,omitempty"`
	Headline string   `json:"headline,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Contact  *Contact `json:"contact,omitempty"`
}

// Contact lists the ways to reach the owner.
type Contact struct {
	Email    string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string       `json:"phone,omitempty"`
	Location string       `json:"location,omitempty"`
	Website  string       `json:"website,omitempty" validate:"omitempty,url"`
	Socials  []SocialLink `json:"socials,omitempty" validate:"dive"`
}

// SocialLink is a labelled profile link. Icon is a lookup key for renderers.
type SocialLink struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Icon  string `json:"icon,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Skill is a single named skill.
type Skill struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Icon     string `json:"icon,omitempty"`
	Level    int    `json:"level,omitempty" validate:"min=0,max=100"`
	Years    int    `json:"years,omitempty" validate:"min=0"`
	Category string `json:"category,omitempty"`
	Note     string `json:"note,omitempty"`
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	Title  string  `json:"title,omitempty"`
	Skills []Skill `json:"skills" validate:"dive"`
}

// ProjectLink is an alternate link shown for a project.
type ProjectLink struct {
	Label string `json:"label"`
	URL   string `json:"url" validate:"required,url"`
	Icon  string `json:"icon,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID                 ID            `json:"id,omitempty"`
	Title              string        `json:"title" validate:"required"`
	Short              string        `json:"short,omitempty"`
	Description        string        `json:"description,omitempty"`
	Long               string        `json:"long,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	Image              string        `json:"image,omitempty"`
	Href               string        `json:"href,omitempty"`
	Links              []ProjectLink `json:"links,omitempty" validate:"dive"`
	Date               *DateRange    `json:"date,omitempty"`
	Featured           bool          `json:"featured,omitempty"`
	IsUnderDevelopment bool          `json:"isUnderDevelopment,omitempty"`
}

// Role is a position in the work history.
type Role struct {
	ID       ID         `json:"id,omitempty"`
	Title    string     `json:"title" validate:"required"`
	Company  string     `json:"company,omitempty"`
	Location string     `json:"location,omitempty"`
	Date     *DateRange `json:"date,omitempty"`
	Summary  string     `json:"summary,omitempty"`
	Bullets  []string   `json:"bullets,omitempty"`
	Tech     []string   `json:"tech,omitempty"`
	Link     string     `json:"link,omitempty" validate:"omitempty,url"`
}

// Education is a degree or course of study.
type Education struct {
	ID       ID         `json:"id,omitempty"`
	Degree   string     `json:"degree,omitempty"`
	School   string     `json:"school,omitempty"`
	Date     *DateRange `json:"date,omitempty"`
	Location string     `json:"location,omitempty"`
	Summary  string     `json:"summary,omitempty"`
}

// Certification is an award or certificate.
type Certification struct {
	ID          ID         `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required"`
	Issuer      string     `json:"issuer,omitempty"`
	Date        *DateRange `json:"date,omitempty"`
	URL         string     `json:"url,omitempty" validate:"omitempty,url"`
	Description string     `json:"description,omitempty"`
}

// Language is a spoken language and proficiency.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Extras collects the sections that only the printable view shows.
type Extras struct {
	Volunteer []Role     `json:"volunteer,omitempty"`
	Languages []Language `json:"languages,omitempty"`
	Interests []string   `json:"interests,omitempty"`
}

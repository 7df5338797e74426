package resume

// Role returns the first role whose id equals id.
func (d *Document) Role(id string) (Role, bool) {
	for _, r := range d.Experience {
		if string(r.ID) == id {
			return r, true
		}
	}
	return Role{}, false
}

// Project returns the first project whose id equals id.
func (d *Document) Project(id string) (Project, bool) {
	for _, p := range d.Projects {
		if string(p.ID) == id {
			return p, true
		}
	}
	return Project{}, false
}

// PDF is the pre-rendered PDF link, if any.
func (d *Document) PDF() string {
	if d.Meta == nil {
		return ""
	}
	return d.Meta.PDF
}

// CanonicalURL is the canonical resume/portfolio link, if any.
func (d *Document) CanonicalURL() string {
	if d.Meta == nil {
		return ""
	}
	return d.Meta.URL
}

// Website is the owner's website from the contact block, if any.
func (d *Document) Website() string {
	if d.Personal.Contact == nil {
		return ""
	}
	return d.Personal.Contact.Website
}

// AboutText picks the best available summary: the document summary, then
// the personal summary, then the headline.
func (d *Document) AboutText() string {
	return FirstNonEmpty(d.Summary, d.Personal.Summary, d.Personal.Headline)
}

// URL returns the project's live link or, failing that, its first link.
func (p Project) URL() string {
	if p.Href != "" {
		return p.Href
	}
	if len(p.Links) > 0 {
		return p.Links[0].URL
	}
	return ""
}

// Blurb is the short description, falling back to the long one.
func (p Project) Blurb() string {
	return FirstNonEmpty(p.Short, p.Description)
}

// FirstNonEmpty returns the first argument that is not "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

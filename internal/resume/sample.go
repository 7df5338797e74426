package resume

// Sample returns the built-in demo document used when no resume file is
// configured. Each call returns a fresh copy.
func Sample() *Document {
	return &Document{
		Meta: &Meta{
			Locale: "en",
			URL:    "https://jordanlee.example.com",
		},
		Personal: Personal{
			Name:     "Jordan Lee",
			Title:    "Full Stack Developer",
			Headline: "Full stack engineer building scalable web apps, APIs, and ML-backed features.",
			Summary:  "I build web products end to end: typed frontends, Go and Python services, and the data pipelines behind them.",
			Contact: &Contact{
				Email:    "jordan@example.com",
				Website:  "https://jordanlee.example.com",
				Location: "Remote",
				Socials: []SocialLink{
					{Label: "GitHub", URL: "https://github.com/example", Icon: "SiGithub"},
					{Label: "LinkedIn", URL: "https://www.linkedin.com/in/example", Icon: "SiLinkedin"},
				},
			},
		},
		Highlights: []string{
			"Open to remote roles",
			"Published an open-source React color picker",
			"Shipped retrieval-augmented search over internal docs",
		},
		Skills: []SkillGroup{
			{Title: "Frontend", Skills: []Skill{
				{Name: "React", Level: 90, Icon: "SiReact", Category: "frontend"},
				{Name: "TypeScript", Level: 85, Icon: "SiTypescript", Category: "frontend"},
				{Name: "Tailwind CSS", Level: 80, Icon: "SiTailwindcss", Category: "frontend"},
			}},
			{Title: "Backend", Skills: []Skill{
				{Name: "Go", Level: 80, Category: "backend"},
				{Name: "Python", Level: 88, Icon: "SiPython", Category: "backend"},
				{Name: "FastAPI", Level: 80, Icon: "SiFastapi", Category: "backend"},
			}},
			{Title: "Data & ML", Skills: []Skill{
				{Name: "Pandas", Level: 85, Category: "data"},
				{Name: "PyTorch", Level: 75, Category: "data"},
				{Name: "RAG", Level: 70, Category: "data"},
			}},
			{Title: "Databases", Skills: []Skill{
				{Name: "PostgreSQL", Level: 80, Icon: "SiPostgresql", Category: "database"},
				{Name: "MongoDB", Level: 78, Icon: "SiMongodb", Category: "database"},
			}},
		},
		Experience: []Role{
			{
				ID:       "acme",
				Title:    "Senior Software Engineer",
				Company:  "Acme Analytics",
				Location: "Remote",
				Date:     Since("2022-06"),
				Summary:  "Lead engineer on the customer analytics dashboard.",
				Bullets: []string{
					"Rebuilt the reporting frontend in React and TypeScript",
					"Moved ingestion to a streaming pipeline with alerting",
				},
				Tech: []string{"React", "TypeScript", "Go", "PostgreSQL"},
				Link: "https://acme.example.com",
			},
			{
				ID:      "globex",
				Title:   "Software Engineer",
				Company: "Globex",
				Date:    Between("2019", "2022"),
				Bullets: []string{
					"Built internal APIs in FastAPI",
					"Trained and served ranking models",
				},
				Tech: []string{"Python", "FastAPI", "PyTorch"},
			},
		},
		Projects: []Project{
			{
				ID:          "color-wheel",
				Title:       "Color Wheel",
				Short:       "A Material-UI color wheel component with real-time color picking.",
				Description: "An open-source React component providing a customizable color wheel with HSV/RGB models.",
				Tags:        []string{"React", "Material-UI", "NPM Package", "Storybook"},
				Href:        "https://color-wheel.example.com",
				Links: []ProjectLink{
					{Label: "GitHub", URL: "https://github.com/example/color-wheel", Icon: "SiGithub"},
				},
				Featured: true,
			},
			{
				ID:          "night-skyline",
				Title:       "Night Skyline",
				Description: "A recreation of a city skyline under a starlit night sky.",
				Tags:        []string{"React", "CSS"},
				Links: []ProjectLink{
					{Label: "GitHub", URL: "https://github.com/example/night-sky", Icon: "SiGithub"},
				},
			},
			{
				ID:                 "dashboard",
				Title:              "Data Dashboard (POC)",
				Short:              "Real-time charts and alerts for operational metrics.",
				Tags:               []string{"React", "D3", "Realtime"},
				IsUnderDevelopment: true,
			},
		},
		Education: []Education{
			{Degree: "BSc Computer Science", School: "State University", Date: Between("2015", "2019")},
		},
		Extras: &Extras{
			Languages: []Language{{Name: "English", Level: "Fluent"}},
			Interests: []string{"astronomy", "photography"},
		},
		TagColors: map[string]string{
			"React":    "bg-blue-100 text-blue-800",
			"CSS":      "bg-teal-100 text-teal-800",
			"D3":       "bg-amber-100 text-amber-800",
			"Realtime": "bg-green-100 text-green-800",
		},
	}
}

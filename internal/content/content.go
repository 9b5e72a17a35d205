// Package content is the site copy: every section's text and data arrays.
// The default content is embedded; a YAML file with the same shape can
// replace it.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/nav"
)

//go:embed site.yaml
var defaultSite []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid content")

type Site struct {
	Owner    Owner         `yaml:"owner"`
	Sections []nav.Section `yaml:"sections"`
	Hero     Hero          `yaml:"hero"`
	About    About         `yaml:"about"`
	Projects Projects      `yaml:"projects"`
	Skills   Skills        `yaml:"skills"`
	Contact  Contact       `yaml:"contact"`
	Social   Social        `yaml:"social"`
}

type Owner struct {
	Name     string `yaml:"name"`
	Initials string `yaml:"initials"`
	Brand    string `yaml:"brand"`
}

// Link is an outbound link. External ones open in a new browser context,
// mailto: and tel: ones in the current one.
type Link struct {
	Name        string `yaml:"name"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// External reports whether the link leaves the page for another site.
func (l Link) External() bool {
	return !strings.HasPrefix(l.Href, "mailto:") && !strings.HasPrefix(l.Href, "tel:")
}

// Jump is a button that scrolls to a section.
type Jump struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

type Hero struct {
	Tagline   string `yaml:"tagline"`
	Intro     string `yaml:"intro"`
	Primary   Jump   `yaml:"primary"`
	Secondary Jump   `yaml:"secondary"`
	Links     []Link `yaml:"links"`
}

type Highlight struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type About struct {
	Title      string      `yaml:"title"`
	Paragraphs []string    `yaml:"paragraphs"`
	Highlights []Highlight `yaml:"highlights"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	GithubURL    string   `yaml:"github_url"`
	AppStoreURL  string   `yaml:"app_store_url"`
	Featured     bool     `yaml:"featured"`
}

type Projects struct {
	Title string    `yaml:"title"`
	Intro string    `yaml:"intro"`
	Items []Project `yaml:"items"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type SkillCategory struct {
	Title  string  `yaml:"title"`
	Skills []Skill `yaml:"skills"`
}

type Skills struct {
	Title          string          `yaml:"title"`
	Intro          string          `yaml:"intro"`
	Categories     []SkillCategory `yaml:"categories"`
	Tools          []string        `yaml:"tools"`
	Certifications []string        `yaml:"certifications"`
}

// Info is a contact detail; Href is empty for plain text like a location.
type Info struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Href  string `yaml:"href,omitempty"`
}

type Contact struct {
	Title string `yaml:"title"`
	Intro string `yaml:"intro"`
	Info  []Info `yaml:"info"`
	Links []Link `yaml:"links"`
}

type Social struct {
	Title string `yaml:"title"`
	Intro string `yaml:"intro"`
	CTA   string `yaml:"cta"`
	Links []Link `yaml:"links"`
}

// Default returns the embedded site.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// Load reads path, or returns the embedded site when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a site. Unknown keys are rejected so typos in a
// content file surface at startup.
func Parse(b []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Anchors are the section ids the page renders, in document order. Nav
// sections must be drawn from these.
var Anchors = []string{"home", "about", "projects", "skills", "contact"}

// Validate checks the invariants the page relies on: unique section ids that
// the page renders, jump targets in the nav, and skill levels that are
// percentages.
func (s *Site) Validate() error {
	if len(s.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalid)
	}
	seen := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.ID == "" {
			return fmt.Errorf("%w: section with empty id", ErrInvalid)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, sec.ID)
		}
		if !slices.Contains(Anchors, sec.ID) {
			return fmt.Errorf("%w: section %q is not rendered (want one of %v)", ErrInvalid, sec.ID, Anchors)
		}
		seen[sec.ID] = true
	}
	for _, j := range []Jump{s.Hero.Primary, s.Hero.Secondary} {
		if j.Target != "" && !s.HasSection(j.Target) {
			return fmt.Errorf("%w: hero button %q targets unknown section %q", ErrInvalid, j.Label, j.Target)
		}
	}
	for _, c := range s.Skills.Categories {
		for _, sk := range c.Skills {
			if sk.Level < 0 || sk.Level > 100 {
				return fmt.Errorf("%w: skill %q level %d outside 0-100", ErrInvalid, sk.Name, sk.Level)
			}
		}
	}
	return nil
}

// HasSection reports whether id is one of the page's sections.
func (s *Site) HasSection(id string) bool {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

package frontmatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagemill/internal/slug"
)

// Meta is the typed metadata header of a content document.
type Meta struct {
	Layout      string
	Title       string
	Date        time.Time
	Tags        []string
	Description string
	Slug        string
	Draft       bool
}

// rawMeta is the YAML wire shape. Date is decoded as a string so we can accept
// several date layouts; tags accept both a YAML list and a comma separated
// scalar (both appear in the wild).
type rawMeta struct {
	Layout      string   `yaml:"layout"`
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Tags        rawTags  `yaml:"tags"`
	Description string   `yaml:"description"`
	Slug        string   `yaml:"slug"`
	Draft       bool     `yaml:"draft"`
}

type rawTags []string

func (t *rawTags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*t = nil
			return nil
		}
		parts := strings.Split(s, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("tags: unsupported YAML node kind %d", value.Kind)
	}
}

// Accepted date layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseMeta decodes a raw frontmatter header into typed metadata.
//
// Title and a parsable date are mandatory; tags are normalized (trimmed,
// slugified, deduplicated, sorted) so downstream output is deterministic.
// Slugs and tags become filesystem path segments under the output root, so an
// explicit slug override must already be in canonical slug form; anything
// else (path separators, dots, uppercase) is rejected.
func ParseMeta(header []byte) (Meta, error) {
	var raw rawMeta
	if err := yaml.Unmarshal(header, &raw); err != nil {
		return Meta{}, fmt.Errorf("decode frontmatter: %w", err)
	}

	if strings.TrimSpace(raw.Title) == "" {
		return Meta{}, fmt.Errorf("frontmatter is missing required field %q", "title")
	}
	if strings.TrimSpace(raw.Date) == "" {
		return Meta{}, fmt.Errorf("frontmatter is missing required field %q", "date")
	}

	date, err := parseDate(raw.Date)
	if err != nil {
		return Meta{}, err
	}

	override := strings.TrimSpace(raw.Slug)
	if override != "" && override != slug.Make(override) {
		return Meta{}, fmt.Errorf("invalid slug %q: must contain only lowercase letters, digits and hyphens", override)
	}

	return Meta{
		Layout:      strings.TrimSpace(raw.Layout),
		Title:       strings.TrimSpace(raw.Title),
		Date:        date,
		Tags:        normalizeTags(raw.Tags),
		Description: strings.TrimSpace(raw.Description),
		Slug:        override,
		Draft:       raw.Draft,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// normalizeTags slugifies each tag so tag names are safe as URL and
// filesystem path segments, then deduplicates and sorts.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		t = slug.Make(t)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

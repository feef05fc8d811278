package catalog

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/storage"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrPresetNotFound   = errors.New("exam preset not found")
	ErrTopicNotFound    = errors.New("topic not found")
	// ErrContentNotFound is returned when a content or exam asset path is
	// not registered in the catalog or missing from the blob store.
	ErrContentNotFound = errors.New("content not found")
)

// Bundle is the on-disk shape of a catalog.
type Bundle struct {
	Version     string          `json:"version" yaml:"version"`
	Topics      []exam.Topic    `json:"topics" yaml:"topics"`
	Questions   []exam.Question `json:"questions" yaml:"questions"`
	ExamPresets []exam.Preset   `json:"examPresets" yaml:"examPresets"`
}

// Catalog is a read-only index over a Bundle. Safe for concurrent use.
type Catalog struct {
	version   string
	topics    map[string]exam.Topic
	questions map[string]exam.Question
	presets   map[string]exam.Preset
	content   map[string]struct{}
}

// New indexes b. Later duplicates of an id replace earlier ones.
func New(b Bundle) *Catalog {
	c := &Catalog{
		version:   b.Version,
		topics:    make(map[string]exam.Topic, len(b.Topics)),
		questions: make(map[string]exam.Question, len(b.Questions)),
		presets:   make(map[string]exam.Preset, len(b.ExamPresets)),
		content:   map[string]struct{}{},
	}
	for _, t := range b.Topics {
		c.topics[t.ID] = t
		if t.ContentMDPath != "" {
			c.content[t.ContentMDPath] = struct{}{}
		}
	}
	for _, q := range b.Questions {
		c.questions[q.ID] = q
	}
	for _, p := range b.ExamPresets {
		c.presets[p.ID] = p
		if p.Structure == nil {
			continue
		}
		for _, key := range exam.SectionKeys {
			if sec := p.Structure.Section(key); sec != nil && sec.MapImage != "" {
				c.content[sec.MapImage] = struct{}{}
			}
		}
	}
	return c
}

// Validate checks every preset with the adapter of its profile, falling
// back to defaultProfile. Problems are returned, not fatal: the scoring
// core accepts malformed presets.
func (c *Catalog) Validate(defaultProfile string) []error {
	var errs []error
	for _, p := range c.Presets("") {
		profile := p.Profile
		if profile == "" {
			profile = defaultProfile
		}
		a, ok := formats.Lookup(profile)
		if !ok {
			errs = append(errs, fmt.Errorf("preset %s: unknown profile %q", p.ID, profile))
			continue
		}
		if err := a.Validate(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Question(id string) (exam.Question, error) {
	q, ok := c.questions[id]
	if !ok {
		return exam.Question{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}
	return q, nil
}

// Questions resolves ids in order, skipping unknown ones.
func (c *Catalog) Questions(ids []string) []exam.Question {
	out := make([]exam.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := c.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out
}

// QuestionsBySubject returns the subject's questions sorted by id.
func (c *Catalog) QuestionsBySubject(s exam.Subject) []exam.Question {
	var out []exam.Question
	for _, q := range c.questions {
		if q.Subject == s {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Preset(id string) (exam.Preset, error) {
	p, ok := c.presets[id]
	if !ok {
		return exam.Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// Presets lists presets of a subject (all when empty), newest year first,
// then by id.
func (c *Catalog) Presets(s exam.Subject) []exam.Preset {
	var out []exam.Preset
	for _, p := range c.presets {
		if s == "" || p.Subject == s {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (c *Catalog) Topic(id string) (exam.Topic, error) {
	t, ok := c.topics[id]
	if !ok {
		return exam.Topic{}, fmt.Errorf("%w: %s", ErrTopicNotFound, id)
	}
	return t, nil
}

// ContentPath checks that path is a registered topic document or exam map.
func (c *Catalog) ContentPath(path string) error {
	if _, ok := c.content[path]; !ok {
		return fmt.Errorf("%w: %s", ErrContentNotFound, path)
	}
	return nil
}

// OpenContent opens a registered content path from bs.
func (c *Catalog) OpenContent(bs storage.BlobStore, path string) (io.ReadCloser, error) {
	if err := c.ContentPath(path); err != nil {
		return nil, err
	}
	rc, err := bs.Get(path)
	if errors.Is(err, storage.ErrNotFound) {
		log.Printf("catalog: registered content %s missing from store", path)
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, path)
	}
	return rc, err
}

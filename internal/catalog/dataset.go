package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrDataUnavailable is returned when the dataset cannot be fetched or does
// not have the expected shape.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// errShape marks a payload that parsed but is not a catalog.
var errShape = errors.New("unexpected dataset shape")

// Period is a second-level grouping and its ordered modules.
type Period struct {
	ID      string
	Modules []string
}

// Entity is a top-level grouping and its ordered periods.
type Entity struct {
	ID      string
	Periods []Period
}

// Dataset is an immutable, order-preserving catalog.
type Dataset struct {
	entities []Entity
	index    map[string]int
}

// Len returns the number of entities.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entities)
}

// Entities returns the entity ids in display order.
func (d *Dataset) Entities() []string {
	if d == nil {
		return nil
	}
	ids := make([]string, len(d.entities))
	for i, e := range d.entities {
		ids[i] = e.ID
	}
	return ids
}

// HasEntity reports whether id is a top-level key.
func (d *Dataset) HasEntity(id string) bool {
	_, ok := d.entity(id)
	return ok
}

// Periods returns the period ids under entity in display order.
// Unknown entities have no periods.
func (d *Dataset) Periods(entity string) []string {
	e, ok := d.entity(entity)
	if !ok {
		return nil
	}
	ids := make([]string, len(e.Periods))
	for i, p := range e.Periods {
		ids[i] = p.ID
	}
	return ids
}

// HasPeriod reports whether period is a key under entity.
func (d *Dataset) HasPeriod(entity, period string) bool {
	_, ok := d.period(entity, period)
	return ok
}

// Modules returns the module names for (entity, period) in display order.
func (d *Dataset) Modules(entity, period string) []string {
	p, ok := d.period(entity, period)
	if !ok {
		return nil
	}
	return append([]string(nil), p.Modules...)
}

func (d *Dataset) entity(id string) (*Entity, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return &d.entities[i], true
}

func (d *Dataset) period(entity, period string) (*Period, bool) {
	e, ok := d.entity(entity)
	if !ok {
		return nil, false
	}
	for i := range e.Periods {
		if e.Periods[i].ID == period {
			return &e.Periods[i], true
		}
	}
	return nil, false
}

// builder assembles a Dataset. A repeated key keeps its first position and
// takes the last value, which is how object literals behave.
type builder struct {
	ds *Dataset
}

func newBuilder() *builder {
	return &builder{ds: &Dataset{index: make(map[string]int)}}
}

func (b *builder) entity(id string, periods []Period) {
	if i, ok := b.ds.index[id]; ok {
		b.ds.entities[i].Periods = periods
		return
	}
	b.ds.index[id] = len(b.ds.entities)
	b.ds.entities = append(b.ds.entities, Entity{ID: id, Periods: periods})
}

func addPeriod(periods []Period, p Period) []Period {
	for i := range periods {
		if periods[i].ID == p.ID {
			periods[i].Modules = p.Modules
			return periods
		}
	}
	return append(periods, p)
}

// NewDataset builds a Dataset from already ordered entities. It is mostly
// useful for tests and for callers that assemble catalogs in code.
func NewDataset(entities ...Entity) *Dataset {
	b := newBuilder()
	for _, e := range entities {
		var periods []Period
		for _, p := range e.Periods {
			periods = addPeriod(periods, Period{ID: p.ID, Modules: append([]string(nil), p.Modules...)})
		}
		b.entity(e.ID, periods)
	}
	return b.ds
}

// ParseJSON decodes a JSON catalog, keeping object key order.
func ParseJSON(data []byte) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{', "root"); err != nil {
		return nil, err
	}

	b := newBuilder()
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return nil, err
		}
		periods, err := decodePeriods(dec, key)
		if err != nil {
			return nil, err
		}
		b.entity(key, periods)
	}
	if err := expectDelim(dec, '}', "root"); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after root object", errShape)
	}

	return b.ds, nil
}

func decodePeriods(dec *json.Decoder, entity string) ([]Period, error) {
	if err := expectDelim(dec, '{', "entity "+entity); err != nil {
		return nil, err
	}

	periods := []Period{}
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return nil, err
		}
		modules, err := decodeModules(dec, entity, key)
		if err != nil {
			return nil, err
		}
		periods = addPeriod(periods, Period{ID: key, Modules: modules})
	}

	return periods, expectDelim(dec, '}', "entity "+entity)
}

func decodeModules(dec *json.Decoder, entity, period string) ([]string, error) {
	where := fmt.Sprintf("period %s/%s", entity, period)
	if err := expectDelim(dec, '[', where); err != nil {
		return nil, err
	}

	modules := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s has a non-string module", errShape, where)
		}
		modules = append(modules, name)
	}

	return modules, expectDelim(dec, ']', where)
}

func expectDelim(dec *json.Decoder, want json.Delim, where string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: %s: expected %q, got %v", errShape, where, want, tok)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: object key %v", errShape, tok)
	}
	return key, nil
}

// ParseYAML decodes a YAML catalog, keeping mapping order.
func ParseYAML(data []byte) (*Dataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", errShape)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root is not a mapping", errShape)
	}

	b := newBuilder()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: entity %s is not a mapping", errShape, key.Value)
		}

		periods := []Period{}
		for j := 0; j+1 < len(value.Content); j += 2 {
			pkey, list := value.Content[j], value.Content[j+1]
			if list.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%w: period %s/%s is not a sequence", errShape, key.Value, pkey.Value)
			}
			modules := make([]string, 0, len(list.Content))
			for _, item := range list.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("%w: period %s/%s has a non-scalar module", errShape, key.Value, pkey.Value)
				}
				modules = append(modules, item.Value)
			}
			periods = addPeriod(periods, Period{ID: pkey.Value, Modules: modules})
		}
		b.entity(key.Value, periods)
	}

	return b.ds, nil
}

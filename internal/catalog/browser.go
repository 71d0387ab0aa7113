package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/handiism/sjt-catalog/internal/view"
)

// Messages holds the placeholder texts shown by the browser.
type Messages struct {
	LoadError string
	NoData    string
	NoPeriods string
	NoModules string
}

// DefaultMessages returns the site's Spanish placeholder texts.
func DefaultMessages() Messages {
	return Messages{
		LoadError: "Error cargando datos de productos.",
		NoData:    "No hay datos disponibles.",
		NoPeriods: "Sin gestiones",
		NoModules: "Sin módulos para esta gestión en la entidad seleccionada.",
	}
}

// Cursor is the current (entity, period) selection.
type Cursor struct {
	Entity    string
	Period    string
	HasPeriod bool
}

// Browser renders a Dataset into three containers and tracks the selection.
type Browser struct {
	entities *view.Container
	periods  *view.Container
	modules  *view.Container

	messages Messages
	logger   *slog.Logger

	data    *Dataset
	loadErr error
	loaded  bool
	wired   bool
	cursor  Cursor
}

// Option configures a Browser.
type Option func(*Browser)

// WithMessages replaces the placeholder texts.
func WithMessages(m Messages) Option {
	return func(b *Browser) { b.messages = m }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(b *Browser) { b.logger = l }
}

// NewBrowser creates a browser that renders into the given containers.
// Nothing is rendered until Load or Mount is called.
func NewBrowser(entities, periods, modules *view.Container, opts ...Option) *Browser {
	b := &Browser{
		entities: entities,
		periods:  periods,
		modules:  modules,
		messages: DefaultMessages(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the dataset from src and mounts it. The fetch happens once;
// later calls return the first result without touching the source.
func (b *Browser) Load(ctx context.Context, src Source) (*Dataset, error) {
	if b.loaded {
		return b.data, b.loadErr
	}
	ds, err := Fetch(ctx, src)
	b.Mount(ds, err)
	return ds, err
}

// Mount installs the result of a fetch and performs the initial render.
//
// On error the module grid shows a single error placeholder and no
// selection is ever accepted. An empty dataset shows a single "no data"
// placeholder, also without wiring.
func (b *Browser) Mount(ds *Dataset, err error) {
	if b.loaded {
		return
	}
	b.loaded = true
	b.loadErr = err

	if err != nil {
		b.logger.Error("catalog load failed", "error", err)
		b.modules.Replace(view.Element{Role: view.RoleError, Label: b.messages.LoadError})
		return
	}

	b.data = ds
	if ds.Len() == 0 {
		b.logger.Warn("catalog is empty")
		b.modules.Replace(view.Element{Role: view.RolePlaceholder, Label: b.messages.NoData})
		return
	}

	b.wired = true
	first := ds.Entities()[0]
	b.cursor = Cursor{Entity: first}
	b.resolvePeriod()

	b.renderChips()
	b.RenderPeriods(first)

	b.logger.Info("catalog mounted", "entities", ds.Len(), "entity", first, "period", b.cursor.Period)
}

// Wired reports whether the browser accepts selections.
func (b *Browser) Wired() bool {
	return b.wired
}

// Cursor returns the current selection.
func (b *Browser) Cursor() Cursor {
	return b.cursor
}

// Dataset returns the mounted dataset, or nil.
func (b *Browser) Dataset() *Dataset {
	return b.data
}

// SelectEntity makes id the active entity. It returns false, changing
// nothing, when id is unknown or already active.
func (b *Browser) SelectEntity(id string) bool {
	if !b.wired || !b.data.HasEntity(id) || id == b.cursor.Entity {
		return false
	}

	b.cursor.Entity = id
	b.resolvePeriod()

	b.entities.Toggle(func(_ int, el view.Element) bool { return el.Key == id })
	b.RenderPeriods(id)

	b.logger.Debug("entity selected", "entity", id, "period", b.cursor.Period)
	return true
}

// SelectPeriod makes id the active period of the active entity. It returns
// false, changing nothing, when id is not a period of the active entity or
// is already active.
func (b *Browser) SelectPeriod(id string) bool {
	if !b.wired || !b.data.HasPeriod(b.cursor.Entity, id) {
		return false
	}
	if b.cursor.HasPeriod && b.cursor.Period == id {
		return false
	}

	b.cursor.Period = id
	b.cursor.HasPeriod = true

	b.periods.Toggle(func(_ int, el view.Element) bool {
		return el.Role == view.RolePeriod && el.Key == id
	})
	b.RenderModules(b.cursor.Entity, id)

	b.logger.Debug("period selected", "entity", b.cursor.Entity, "period", id)
	return true
}

// RenderPeriods replaces the period list with one control per period of
// entity. An entity without periods gets a single disabled placeholder and
// the module grid falls back to its empty state.
func (b *Browser) RenderPeriods(entity string) {
	ids := b.data.Periods(entity)
	if len(ids) == 0 {
		b.periods.Replace(view.Element{
			Role:     view.RolePlaceholder,
			Label:    b.messages.NoPeriods,
			Disabled: true,
		})
		b.renderNoModules()
		return
	}

	active, hasActive := "", false
	if b.cursor.Entity == entity && b.cursor.HasPeriod {
		active, hasActive = b.cursor.Period, true
	}

	els := make([]view.Element, len(ids))
	for i, id := range ids {
		els[i] = view.Element{Role: view.RolePeriod, Label: id, Key: id, Active: hasActive && id == active}
	}
	b.periods.Replace(els...)

	if !hasActive {
		b.renderNoModules()
		return
	}
	b.RenderModules(entity, active)
}

// RenderModules replaces the module grid with one card per module of
// (entity, period), or a single placeholder when there are none.
func (b *Browser) RenderModules(entity, period string) {
	names := b.data.Modules(entity, period)
	if len(names) == 0 {
		b.renderNoModules()
		return
	}

	els := make([]view.Element, len(names))
	for i, name := range names {
		els[i] = view.Element{Role: view.RoleCard, Label: name}
	}
	b.modules.Replace(els...)
}

func (b *Browser) renderNoModules() {
	b.modules.Replace(view.Element{Role: view.RolePlaceholder, Label: b.messages.NoModules})
}

func (b *Browser) renderChips() {
	ids := b.data.Entities()
	els := make([]view.Element, len(ids))
	for i, id := range ids {
		els[i] = view.Element{Role: view.RoleChip, Label: id, Key: id, Active: id == b.cursor.Entity}
	}
	b.entities.Replace(els...)
}

// resolvePeriod keeps the current period when the active entity still has
// it, otherwise falls back to the entity's first period or none.
func (b *Browser) resolvePeriod() {
	if b.cursor.HasPeriod && b.data.HasPeriod(b.cursor.Entity, b.cursor.Period) {
		return
	}
	ids := b.data.Periods(b.cursor.Entity)
	if len(ids) == 0 {
		b.cursor.Period = ""
		b.cursor.HasPeriod = false
		return
	}
	b.cursor.Period = ids[0]
	b.cursor.HasPeriod = true
}

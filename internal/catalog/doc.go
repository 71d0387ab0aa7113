// Package catalog implements the product catalog browser.
//
// A catalog is a two-level tree: entities (institutions) own periods
// (management periods), and every period lists the modules offered for it.
// Source order is display order at every level, so parsing keeps key order
// instead of decoding into Go maps.
//
// # Loading
//
// A Source delivers the raw payload; Fetch parses it into an immutable
// Dataset. Any transport or shape failure is reported as ErrDataUnavailable:
//
//	ds, err := catalog.Fetch(ctx, catalog.FileSource{Path: "assets/data/productos.json"})
//	if errors.Is(err, catalog.ErrDataUnavailable) {
//	    // render a placeholder, do not crash
//	}
//
// # Browsing
//
// Browser owns the selection cursor and renders three view containers:
// entity chips, the period list and the module grid.
//
//	chips := view.NewContainer("entities")
//	periods := view.NewContainer("periods")
//	modules := view.NewContainer("modules")
//
//	b := catalog.NewBrowser(chips, periods, modules)
//	b.Mount(ds, err)
//	b.SelectEntity("BankB")
//	b.SelectPeriod("2024")
//
// Selections that reference unknown keys, or the already active key, are
// ignored without touching state or output.
package catalog

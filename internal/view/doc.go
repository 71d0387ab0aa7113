// Package view provides the container model shared by the catalog browser
// and the carousel.
//
// A Container is an ordered list of Elements that is only ever changed in two
// ways: fully replaced, or having per-element state flags toggled in place.
// Components never diff; every change that alters structure replaces the
// whole list, and the terminal front-end redraws from the current contents.
//
// # Replacing Content
//
//	grid := view.NewContainer("modules")
//	grid.Replace(
//	    view.Element{Role: view.RoleCard, Label: "Loans"},
//	    view.Element{Role: view.RoleCard, Label: "Deposits"},
//	)
//
// # Toggling State
//
// Toggle mirrors a class-list toggle: the predicate decides, per element,
// whether the Active flag is set.
//
//	chips.Toggle(func(_ int, el view.Element) bool { return el.Key == "BankA" })
package view

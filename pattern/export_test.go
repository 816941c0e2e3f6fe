package pattern

import "github.com/fwojciec/diffpattern"

// NewGroup exposes group construction to the external tests.
func (a *Analyzer) NewGroup(members []diffpattern.ChangeUnit) diffpattern.ChangeGroup {
	return a.newGroup(members)
}

package carteira

import (
	"errors"
	"log"
)

// Revalue runs the valuation pass over every position as of a date, one
// oracle call per instrument.
//
// Failures are isolated per instrument: a missing quote or rate leaves that
// position at its previous value and the pass continues. The joined error
// lists every instrument that could not be revalued.
func Revalue(positions Positions, o Oracle, asOf Date) error {
	var errs error
	for _, p := range positions {
		if err := p.Revalue(o, asOf); err != nil {
			log.Printf("%v: keeping previous value for %q: %v", asOf, p.Name, err)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

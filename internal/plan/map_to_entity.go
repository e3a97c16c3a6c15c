package plan

import (
	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/diagnostic"
	"github.com/muzin/chameleon/internal/match"
)

// buildMapToEntity walks the writable destination fields, since a map has no static
// field set, and reads each from the entry of the same name.
func buildMapToEntity(p *Procedure) {
	pair := p.Pair()
	elem := p.Source.Elem()

	for _, df := range analyze.Fields(p.Dest) {
		if !df.Writable() {
			p.Diagnostics.AddInfo(diagnostic.CodeNotWritable, "destination field has no writer", pair, df.Name)

			continue
		}

		d := match.PlanFromMap(elem, df.Writer.Type)
		if d.Rule == match.Skip {
			p.Diagnostics.AddWarning(diagnostic.CodeIncompatible, d.Reason, pair, df.Name)

			continue
		}

		// A missing or nil entry fails the runtime type check, so it is never written.
		p.Steps = append(p.Steps, Step{
			Name:       df.Name,
			Rule:       d.Rule,
			Source:     analyze.MapKey{Key: df.Name},
			Dest:       df.Writer,
			From:       elem,
			To:         df.Writer.Type,
			Target:     d.Target,
			Sequence:   d.Sequence,
			KeepAbsent: true,
		})
	}
}

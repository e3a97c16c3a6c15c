package plan

import (
	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/diagnostic"
	"github.com/muzin/chameleon/internal/match"
)

// buildEntityToMap stores every readable source field under its name. Nested structs
// become nested maps of the destination map type.
func buildEntityToMap(p *Procedure) {
	pair := p.Pair()
	elem := p.Dest.Elem()

	for _, sf := range analyze.Fields(p.Source) {
		if !sf.Readable() {
			p.Diagnostics.AddInfo(diagnostic.CodeNotReadable, "source field has no reader", pair, sf.Name)

			continue
		}

		d := match.PlanToMap(sf.Reader.Type, p.Dest)
		if d.Rule == match.Skip {
			p.Diagnostics.AddWarning(diagnostic.CodeIncompatible, d.Reason, pair, sf.Name)

			continue
		}

		p.Steps = append(p.Steps, Step{
			Name:     sf.Name,
			Rule:     d.Rule,
			Source:   sf.Reader,
			Dest:     analyze.MapKey{Key: sf.Name},
			From:     sf.Reader.Type,
			To:       elem,
			Target:   d.Target,
			Sequence: d.Sequence,
		})
	}
}

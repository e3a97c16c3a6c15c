package plan

import (
	"github.com/muzin/chameleon/internal/analyze"
	"github.com/muzin/chameleon/internal/diagnostic"
	"github.com/muzin/chameleon/internal/match"
)

// buildEntityToEntity matches readable source fields with writable destination fields
// by name. Fields present on one side only are ignored.
func buildEntityToEntity(p *Procedure) {
	pair := p.Pair()
	dest := analyze.ByName(analyze.Fields(p.Dest))

	for _, sf := range analyze.Fields(p.Source) {
		if !sf.Readable() {
			p.Diagnostics.AddInfo(diagnostic.CodeNotReadable, "source field has no reader", pair, sf.Name)

			continue
		}

		df, ok := dest[sf.Name]
		if !ok {
			p.Diagnostics.AddInfo(diagnostic.CodeUnmatched, "no destination field", pair, sf.Name)

			continue
		}

		if !df.Writable() {
			p.Diagnostics.AddInfo(diagnostic.CodeNotWritable, "destination field has no writer", pair, sf.Name)

			continue
		}

		d := match.Plan(sf.Reader.Type, df.Writer.Type)
		if d.Rule == match.Skip {
			p.Diagnostics.AddWarning(diagnostic.CodeIncompatible, d.Reason, pair, sf.Name)

			continue
		}

		p.Steps = append(p.Steps, Step{
			Name:     sf.Name,
			Rule:     d.Rule,
			Source:   sf.Reader,
			Dest:     df.Writer,
			From:     sf.Reader.Type,
			To:       df.Writer.Type,
			Target:   d.Target,
			Sequence: d.Sequence,
		})
	}
}

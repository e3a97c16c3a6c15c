package plan

import (
	"fmt"
	"reflect"

	"github.com/muzin/chameleon/internal/analyze"
)

// Select picks the strategy for the ordered pair (src, dst). Pointers are ignored.
func Select(src, dst reflect.Type) (Strategy, error) {
	if src == nil || dst == nil {
		return 0, fmt.Errorf("%w: nil type", ErrUnsupportedType)
	}

	src, dst = analyze.Base(src), analyze.Base(dst)

	srcMap, dstMap := analyze.IsMapLike(src), analyze.IsMapLike(dst)

	switch {
	case !srcMap && !analyze.IsStructLike(src):
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, src)
	case !dstMap && !analyze.IsStructLike(dst):
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, dst)
	case srcMap && dstMap:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPair, PairName(src, dst))
	case dstMap:
		return EntityToMap, nil
	case srcMap:
		return MapToEntity, nil
	default:
		return EntityToEntity, nil
	}
}

// Build derives the procedure converting src values into dst values.
func Build(src, dst reflect.Type) (*Procedure, error) {
	strategy, err := Select(src, dst)
	if err != nil {
		return nil, err
	}

	src, dst = analyze.Base(src), analyze.Base(dst)

	p := &Procedure{Source: src, Dest: dst, Strategy: strategy}

	switch strategy {
	case EntityToMap:
		buildEntityToMap(p)
	case MapToEntity:
		buildMapToEntity(p)
	default:
		buildEntityToEntity(p)
	}

	return p, nil
}

package microjson

import "unsafe"

// arrayContext threads the enclosing array, if any, and the current
// element index explicitly through the Object Reader, rather than via
// hidden state.
type arrayContext struct {
	schema *ArraySchema
	index  int
}

// resolvedDest is the Address Resolver's output: exactly one pointer/slice
// field is meaningful, selected by kind, unless none is set (no writable
// destination for this entry).
type resolvedDest struct {
	kind Kind

	intPtr    *int64
	uintPtr   *uint64
	shortPtr  *int16
	ushortPtr *uint16
	realPtr   *float64
	boolPtr   *bool
	charPtr   *byte
	timePtr   *float64
	strBuf    []byte

	none bool
}

// resolveAddress maps a schema entry and an optional enclosing array
// context to the destination to write, or "no destination" for
// aggregate/ignore kinds. It is total and side-effect free.
func resolveAddress(entry *AttrSchema, ctx *arrayContext) resolvedDest {
	if !entry.Kind.hasDirectDestination() {
		return resolvedDest{kind: entry.Kind, none: true}
	}

	idx := 0
	if ctx != nil {
		idx = ctx.index
	}

	if ctx != nil && ctx.schema.Mode == ArrayStructObjectBank {
		return resolveStructOffset(entry, ctx.schema, idx)
	}

	switch entry.Kind {
	case KindInt:
		if idx < len(entry.IntDest) {
			return resolvedDest{kind: KindInt, intPtr: &entry.IntDest[idx]}
		}
	case KindUint:
		if idx < len(entry.UintDest) {
			return resolvedDest{kind: KindUint, uintPtr: &entry.UintDest[idx]}
		}
	case KindShort:
		if idx < len(entry.ShortDest) {
			return resolvedDest{kind: KindShort, shortPtr: &entry.ShortDest[idx]}
		}
	case KindUshort:
		if idx < len(entry.UshortDest) {
			return resolvedDest{kind: KindUshort, ushortPtr: &entry.UshortDest[idx]}
		}
	case KindReal:
		if idx < len(entry.RealDest) {
			return resolvedDest{kind: KindReal, realPtr: &entry.RealDest[idx]}
		}
	case KindBool:
		if idx < len(entry.BoolDest) {
			return resolvedDest{kind: KindBool, boolPtr: &entry.BoolDest[idx]}
		}
	case KindChar:
		if idx < len(entry.CharDest) {
			return resolvedDest{kind: KindChar, charPtr: &entry.CharDest[idx]}
		}
	case KindTime:
		if idx < len(entry.TimeDest) {
			return resolvedDest{kind: KindTime, timePtr: &entry.TimeDest[idx]}
		}
	case KindCheck:
		return resolvedDest{kind: KindCheck, none: true}
	case KindString:
		// Slot i>0 under parallel (object-array) mode is rejected by the
		// caller before this is reached; here we just hand back the
		// buffer.
		return resolvedDest{kind: KindString, strBuf: entry.StringDest}
	}
	return resolvedDest{none: true}
}

// resolveStructOffset computes array_base + i*stride + field_offset for a
// struct-array (structobject) destination, grounded on the
// unsafe.Pointer-arithmetic technique kungfusheep/glint uses to write
// decoded fields directly into flat struct memory.
func resolveStructOffset(entry *AttrSchema, arr *ArraySchema, idx int) resolvedDest {
	base := unsafe.Add(arr.StructBase, uintptr(idx)*arr.StructStride+entry.FieldOffset)

	switch entry.Kind {
	case KindInt:
		return resolvedDest{kind: KindInt, intPtr: (*int64)(base)}
	case KindUint:
		return resolvedDest{kind: KindUint, uintPtr: (*uint64)(base)}
	case KindShort:
		return resolvedDest{kind: KindShort, shortPtr: (*int16)(base)}
	case KindUshort:
		return resolvedDest{kind: KindUshort, ushortPtr: (*uint16)(base)}
	case KindReal:
		return resolvedDest{kind: KindReal, realPtr: (*float64)(base)}
	case KindBool:
		return resolvedDest{kind: KindBool, boolPtr: (*bool)(base)}
	case KindChar:
		return resolvedDest{kind: KindChar, charPtr: (*byte)(base)}
	case KindTime:
		return resolvedDest{kind: KindTime, timePtr: (*float64)(base)}
	case KindCheck:
		return resolvedDest{kind: KindCheck, none: true}
	case KindString:
		buf := unsafe.Slice((*byte)(base), entry.StringCap)
		return resolvedDest{kind: KindString, strBuf: buf}
	}
	return resolvedDest{none: true}
}

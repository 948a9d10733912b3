package microjson

// objState enumerates the Object Reader's states. The machine advances
// one byte at a time; the two pushback cases ('}' and ',' seen while
// scanning an unquoted token) are handled by simply not consuming the
// byte rather than by an ungetc-style rewind.
type objState int

const (
	objInit objState = iota
	objAwaitAttr
	objInAttr
	objAwaitValue
	objInValString
	objInValToken
	objPostVal
	objPostArray
)

// ParseObject parses a single `{ ... }` document from input against
// schema, writing matched attributes to their declared destinations. On
// success the returned int is the end-cursor: the byte offset just past
// the consumed document (including trailing whitespace), suitable for
// parsing a sequence of adjacent top-level objects.
func ParseObject(input []byte, schema *ObjectSchema) (int, Status) {
	return readObject(input, 0, schema, nil)
}

// ParseObjectString is a convenience wrapper for string input.
func ParseObjectString(s string, schema *ObjectSchema) (int, Status) {
	return ParseObject([]byte(s), schema)
}

// readObject is the internal entry point also used by the Array Reader to
// parse an object/structobject array element, threading the enclosing
// array and element index through ctx.
func readObject(data []byte, pos int, schema *ObjectSchema, ctx *arrayContext) (int, Status) {
	pos = skipWhitespace(data, pos)
	if pos >= len(data) || data[pos] != '{' {
		return fail(pos, StatusMissingBrace)
	}
	trace("microjson: object start", "entries", len(*schema))
	pos++

	if st := primeDefaults(*schema, ctx); st != StatusOK {
		return fail(pos, st)
	}

	state := objAwaitAttr
	var attrBuf [maxAttrName]byte
	attrLen := 0
	entryIdx := -1
	var valBuf [maxValueToken + 1]byte
	valLen := 0
	valueQuoted := false

	for {
		switch state {
		case objAwaitAttr:
			pos = skipWhitespace(data, pos)
			if pos >= len(data) {
				return fail(pos, StatusNoAttrStart)
			}
			switch data[pos] {
			case '"':
				pos++
				attrLen = 0
				state = objInAttr
			case '}':
				pos++
				pos = skipWhitespace(data, pos)
				return pos, StatusOK
			default:
				return fail(pos, StatusNoAttrStart)
			}

		case objInAttr:
			for {
				if pos >= len(data) {
					return fail(pos, StatusStringParseError)
				}
				c := data[pos]
				if c == '"' {
					pos++
					break
				}
				if attrLen >= maxAttrName {
					return fail(pos, StatusAttrTooLong)
				}
				attrBuf[attrLen] = c
				attrLen++
				pos++
			}

			entryIdx = -1
			for i := range *schema {
				if string(attrBuf[:attrLen]) == (*schema)[i].Name {
					entryIdx = i
					break
				}
			}
			if entryIdx < 0 {
				return fail(pos, StatusUnknownAttr)
			}
			trace("microjson: matched attribute", "name", (*schema)[entryIdx].Name)
			state = objAwaitValue

		case objAwaitValue:
			pos = skipWhitespace(data, pos)
			if pos >= len(data) || data[pos] != ':' {
				return fail(pos, StatusBadTrail)
			}
			pos++
			pos = skipWhitespace(data, pos)
			if pos >= len(data) {
				return fail(pos, StatusBadTrail)
			}
			entry := &(*schema)[entryIdx]
			switch {
			case data[pos] == '[':
				if entry.Kind != KindArray {
					return fail(pos, StatusUnexpectedArray)
				}
				newPos, st := readArray(data, pos, entry.Array)
				if st != StatusOK {
					return newPos, st
				}
				pos = newPos
				state = objPostArray
			case entry.Kind == KindArray:
				return fail(pos, StatusMissingArrayBracket)
			case data[pos] == '{':
				if entry.Kind != KindObject {
					return fail(pos, StatusUnexpectedArray)
				}
				newPos, st := readObject(data, pos, entry.Object, nil)
				if st != StatusOK {
					return newPos, st
				}
				pos = newPos
				state = objPostArray
			case entry.Kind == KindObject:
				return fail(pos, StatusMissingArrayBracket)
			case data[pos] == '"':
				pos++
				valueQuoted = true
				valLen = 0
				state = objInValString
			default:
				valueQuoted = false
				valLen = 0
				valBuf[0] = data[pos]
				valLen = 1
				pos++
				state = objInValToken
			}

		case objInValString:
			capLimit := valueCapacity(&(*schema)[entryIdx], ctx)
			for {
				if pos >= len(data) {
					return fail(pos, StatusStringParseError)
				}
				c := data[pos]
				if c == '"' {
					pos++
					break
				}
				var out byte
				if c == '\\' {
					var ok bool
					out, pos, ok = decodeEscape(data, pos+1)
					if !ok {
						return fail(pos, StatusStringParseError)
					}
				} else {
					out = c
					pos++
				}
				if valLen >= capLimit || valLen >= len(valBuf) {
					return fail(pos, StatusStringTooLong)
				}
				valBuf[valLen] = out
				valLen++
			}
			state = objPostVal

		case objInValToken:
			capLimit := valueCapacity(&(*schema)[entryIdx], ctx)
			for pos < len(data) {
				c := data[pos]
				if isWhitespace(c) || c == ',' || c == '}' {
					break
				}
				if valLen >= capLimit || valLen >= len(valBuf) {
					return fail(pos, StatusTokenTooLong)
				}
				valBuf[valLen] = c
				valLen++
				pos++
			}
			state = objPostVal

		case objPostVal:
			finalEntry, st := reconcileType(*schema, entryIdx, valBuf[:valLen], valueQuoted)
			if st != StatusOK {
				return fail(pos, st)
			}
			if st := commitValue(finalEntry, valBuf[:valLen], valueQuoted, ctx); st != StatusOK {
				return fail(pos, st)
			}
			state = objPostArray

		case objPostArray:
			pos = skipWhitespace(data, pos)
			if pos >= len(data) {
				return fail(pos, StatusBadTrail)
			}
			switch data[pos] {
			case ',':
				pos++
				state = objAwaitAttr
			case '}':
				pos++
				pos = skipWhitespace(data, pos)
				return pos, StatusOK
			default:
				return fail(pos, StatusBadTrail)
			}
		}
	}
}

// primeDefaults runs the object body's prologue: every entry whose
// default priming isn't suppressed and whose kind has a direct
// destination gets its declared default written before the first byte of
// the object body is scanned. String destinations are set to empty (NUL
// at byte 0).
//
// A string attribute nested under an object-array at an index beyond 0 is
// rejected here, immediately, as the parallel-array-string error — before
// any other default is primed for this call, so the earliest detectable
// fault wins even during priming.
func primeDefaults(schema ObjectSchema, ctx *arrayContext) Status {
	parallel := ctx != nil && ctx.schema.Mode == ArrayObjectBank && ctx.index > 0
	if parallel {
		for i := range schema {
			if schema[i].Kind == KindString {
				return StatusParallelString
			}
		}
	}

	for i := range schema {
		entry := &schema[i]
		if entry.NoDefault || !entry.Kind.hasDirectDestination() {
			continue
		}
		dest := resolveAddress(entry, ctx)
		if dest.none {
			continue
		}
		switch entry.Kind {
		case KindInt:
			*dest.intPtr = entry.DefaultInt
		case KindUint:
			*dest.uintPtr = entry.DefaultUint
		case KindShort:
			*dest.shortPtr = entry.DefaultShort
		case KindUshort:
			*dest.ushortPtr = entry.DefaultUshort
		case KindReal:
			*dest.realPtr = entry.DefaultReal
		case KindBool:
			*dest.boolPtr = entry.DefaultBool
		case KindChar:
			*dest.charPtr = entry.DefaultChar
		case KindTime:
			*dest.timePtr = entry.DefaultTime
		case KindString:
			if len(dest.strBuf) > 0 {
				dest.strBuf[0] = 0
			}
		}
	}
	trace("microjson: defaults primed")
	return StatusOK
}

// valueCapacity computes the value-acceptance capacity for the matched
// entry: a string destination accepts its declared length minus one (room
// for the terminator); a check destination accepts exactly the length of
// its literal; time and ignore accept up to the hard value-buffer
// maximum; an enum-mapped entry accepts one fewer than the maximum;
// anything else is bounded only by the hard maximum.
func valueCapacity(entry *AttrSchema, ctx *arrayContext) int {
	switch {
	case entry.Kind == KindString:
		if ctx != nil && ctx.schema.Mode == ArrayStructObjectBank {
			if entry.StringCap > 0 {
				return entry.StringCap - 1
			}
			return 0
		}
		if len(entry.StringDest) > 0 {
			return len(entry.StringDest) - 1
		}
		return 0
	case entry.Kind == KindCheck:
		return len(entry.CheckLiteral)
	case entry.Kind == KindTime || entry.Kind == KindIgnore:
		return maxValueToken
	case len(entry.Enum) > 0:
		return maxValueToken - 1
	default:
		return maxValueToken
	}
}

// reconcileType is type reconciliation: starting from the matched schema
// entry, scan forward through adjacent entries sharing its name for the
// first one whose kind is syntactically compatible with what was
// scanned. If none is found, the original entry is kept.
func reconcileType(schema ObjectSchema, matchedIdx int, tok []byte, quoted bool) (*AttrSchema, Status) {
	name := schema[matchedIdx].Name
	class := classifyLexeme(tok)

	bestIdx := matchedIdx
	for j := matchedIdx; j < len(schema) && schema[j].Name == name; j++ {
		if isCompatibleKind(schema[j].Kind, quoted, class) {
			bestIdx = j
			break
		}
	}
	entry := &schema[bestIdx]
	if bestIdx != matchedIdx {
		trace("microjson: type reconciliation", "name", name, "from", schema[matchedIdx].Kind.String(), "to", entry.Kind.String())
	}

	if quoted {
		legal := entry.Kind == KindString || entry.Kind == KindChar || entry.Kind == KindCheck ||
			entry.Kind == KindTime || entry.Kind == KindIgnore || len(entry.Enum) > 0
		if !legal {
			return nil, StatusQuotedValueUnexpected
		}
	} else {
		illegal := entry.Kind == KindString || entry.Kind == KindCheck || entry.Kind == KindTime || len(entry.Enum) > 0
		if illegal {
			return nil, StatusUnquotedValueExpected
		}
	}
	return entry, StatusOK
}

func isCompatibleKind(k Kind, quoted bool, class lexemeClass) bool {
	switch {
	case quoted:
		return k == KindString || k == KindTime
	case class.isBool:
		return k == KindBool
	case class.isNumeric && class.hasDot:
		return k == KindReal
	case class.isNumeric:
		return k == KindInt || k == KindUint
	}
	return false
}

// commitValue converts the scanned token according to the (possibly
// reconciled) entry's kind and writes it to the resolved destination, or
// performs the conversion for validation only when the resolver returns
// no destination.
func commitValue(entry *AttrSchema, tok []byte, quoted bool, ctx *arrayContext) Status {
	if entry.Kind == KindString && ctx != nil && ctx.schema.Mode == ArrayObjectBank && ctx.index > 0 {
		return StatusParallelString
	}

	dest := resolveAddress(entry, ctx)

	if len(entry.Enum) > 0 {
		val, ok := lookupEnum(entry.Enum, string(tok))
		if !ok {
			return StatusBadEnum
		}
		if !dest.none {
			*dest.intPtr = val
		}
		return StatusOK
	}

	switch entry.Kind {
	case KindString:
		if !dest.none {
			if len(tok) >= len(dest.strBuf) {
				return StatusStringTooLong
			}
			copy(dest.strBuf, tok)
			dest.strBuf[len(tok)] = 0
		}
	case KindCheck:
		if string(tok) != entry.CheckLiteral {
			return StatusCheckMismatch
		}
	case KindIgnore:
		// accepted and discarded
	case KindTime:
		secs, err := parseISO8601(tok)
		if err != nil {
			return StatusConversionError
		}
		if !dest.none {
			*dest.timePtr = secs
		}
	case KindBool:
		switch string(tok) {
		case "true":
			if !dest.none {
				*dest.boolPtr = true
			}
		case "false":
			if !dest.none {
				*dest.boolPtr = false
			}
		default:
			return StatusConversionError
		}
	case KindChar:
		if len(tok) != 1 {
			return StatusStringTooLong
		}
		if !dest.none {
			*dest.charPtr = tok[0]
		}
	case KindInt:
		v, err := parseInteger(tok)
		if err != nil {
			return StatusBadNumber
		}
		if !dest.none {
			*dest.intPtr = v
		}
	case KindUint:
		v, err := parseUnsigned(tok)
		if err != nil {
			return StatusBadNumber
		}
		if !dest.none {
			*dest.uintPtr = v
		}
	case KindShort:
		v, err := parseInteger(tok)
		if err != nil {
			return StatusBadNumber
		}
		if !dest.none {
			*dest.shortPtr = int16(v)
		}
	case KindUshort:
		v, err := parseUnsigned(tok)
		if err != nil {
			return StatusBadNumber
		}
		if !dest.none {
			*dest.ushortPtr = uint16(v)
		}
	case KindReal:
		v, err := parseReal(tok)
		if err != nil {
			return StatusBadNumber
		}
		if !dest.none {
			*dest.realPtr = v
		}
	default:
		return StatusConversionError
	}
	return StatusOK
}

func lookupEnum(entries []EnumEntry, name string) (int64, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

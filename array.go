package microjson

// ParseArray parses a single `[ ... ]` document from input against schema,
// writing elements into the schema's declared destination bank in input
// order starting at index 0. On success the returned int is the
// end-cursor, just past trailing whitespace.
func ParseArray(input []byte, schema *ArraySchema) (int, Status) {
	return readArray(input, 0, schema)
}

// ParseArrayString is a convenience wrapper for string input.
func ParseArrayString(s string, schema *ArraySchema) (int, Status) {
	return ParseArray([]byte(s), schema)
}

// readArray is the Array Reader's state machine: start, first, elem, and
// the after-element comma/close check, repeated until ']' or the declared
// maximum is exceeded.
func readArray(data []byte, pos int, schema *ArraySchema) (int, Status) {
	pos = skipWhitespace(data, pos)
	if pos >= len(data) || data[pos] != '[' {
		return fail(pos, StatusMissingArrayStart)
	}
	trace("microjson: array start", "elemKind", schema.ElemKind.String(), "max", schema.Max)
	pos++
	pos = skipWhitespace(data, pos)

	if pos < len(data) && data[pos] == ']' {
		pos++
		if schema.CountOut != nil {
			*schema.CountOut = 0
		}
		pos = skipWhitespace(data, pos)
		trace("microjson: array empty")
		return pos, StatusOK
	}

	storeUsed := 0
	i := 0
	for {
		if i >= schema.Max {
			return fail(pos, StatusTooManyElements)
		}

		newPos, st := readArrayElement(data, pos, schema, i, &storeUsed)
		if st != StatusOK {
			return fail(newPos, st)
		}
		pos = newPos
		i++

		pos = skipWhitespace(data, pos)
		if pos >= len(data) {
			return fail(pos, StatusBadArrayTrail)
		}
		switch data[pos] {
		case ']':
			pos++
			if schema.CountOut != nil {
				*schema.CountOut = i
			}
			pos = skipWhitespace(data, pos)
			trace("microjson: array complete", "count", i)
			return pos, StatusOK
		case ',':
			pos++
			pos = skipWhitespace(data, pos)
		default:
			return fail(pos, StatusBadArrayTrail)
		}
	}
}

// readArrayElement dispatches on the array's declared element kind. time,
// character, nested array, check, and ignore are invalid element kinds
// and fail immediately.
func readArrayElement(data []byte, pos int, schema *ArraySchema, i int, storeUsed *int) (int, Status) {
	switch schema.ElemKind {
	case KindString:
		return readStringElement(data, pos, schema, i, storeUsed)
	case KindInt:
		tok, newPos := scanArrayToken(data, pos)
		v, err := parseInteger(tok)
		if err != nil {
			return newPos, StatusBadNumber
		}
		if i < len(schema.IntDest) {
			schema.IntDest[i] = v
		}
		return newPos, StatusOK
	case KindUint:
		tok, newPos := scanArrayToken(data, pos)
		v, err := parseUnsigned(tok)
		if err != nil {
			return newPos, StatusBadNumber
		}
		if i < len(schema.UintDest) {
			schema.UintDest[i] = v
		}
		return newPos, StatusOK
	case KindReal:
		tok, newPos := scanArrayToken(data, pos)
		v, err := parseReal(tok)
		if err != nil {
			return newPos, StatusBadNumber
		}
		if i < len(schema.RealDest) {
			schema.RealDest[i] = v
		}
		return newPos, StatusOK
	case KindBool:
		if matchLiteral(data, pos, "true") {
			if i < len(schema.BoolDest) {
				schema.BoolDest[i] = true
			}
			return pos + 4, StatusOK
		}
		if matchLiteral(data, pos, "false") {
			if i < len(schema.BoolDest) {
				schema.BoolDest[i] = false
			}
			return pos + 5, StatusOK
		}
		return pos, StatusConversionError
	case KindObject, KindStructObject:
		if schema.Object == nil {
			return pos, StatusArrayElementError
		}
		ctx := &arrayContext{schema: schema, index: i}
		newPos, st := readObject(data, pos, schema.Object, ctx)
		if st != StatusOK {
			return newPos, StatusArrayElementError
		}
		return newPos, StatusOK
	default:
		// time, character, nested array, check, ignore: unsupported as
		// array element kinds.
		return pos, StatusBadArrayKind
	}
}

// readStringElement copies one quoted string element into the array's
// flat character store, honoring escapes the same way the Object Reader's
// in_val_string state does, and records the sub-slice (plus a trailing
// NUL) in StringPtrs[i].
func readStringElement(data []byte, pos int, schema *ArraySchema, i int, storeUsed *int) (int, Status) {
	if pos >= len(data) || data[pos] != '"' {
		return pos, StatusStringParseError
	}
	pos++

	base := *storeUsed
	n := 0
	for {
		if pos >= len(data) {
			return pos, StatusStringParseError
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
				return pos, StatusStringParseError
			}
		} else {
			out = c
			pos++
		}
		if base+n >= len(schema.StringStore) {
			return pos, StatusStringTooLong
		}
		schema.StringStore[base+n] = out
		n++
	}
	if base+n >= len(schema.StringStore) {
		return pos, StatusStringTooLong
	}
	schema.StringStore[base+n] = 0
	if i >= len(schema.StringPtrs) {
		return pos, StatusTooManyElements
	}
	schema.StringPtrs[i] = schema.StringStore[base : base+n]
	*storeUsed = base + n + 1
	return pos, StatusOK
}

// scanArrayToken reads an unquoted numeric lexeme up to the next
// whitespace, ',' or ']' — the array-context counterpart of the Object
// Reader's in_val_token state.
func scanArrayToken(data []byte, pos int) ([]byte, int) {
	start := pos
	for pos < len(data) {
		c := data[pos]
		if isWhitespace(c) || c == ',' || c == ']' {
			break
		}
		pos++
	}
	return data[start:pos], pos
}

package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads key=value lines from r, starting from the schema's
// defaults. Blank lines and lines starting with '#' are skipped; space
// around keys and values is ignored. The first bad line stops parsing
// and is reported as a *KeyError.
func Parse(r io.Reader, s *Schema) (*Config, error) {
	c := s.Defaults()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		key, raw, found := strings.Cut(text, "=")
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)

		def, ok := s.fields[key]
		if !ok {
			return nil, &KeyError{Line: line, Key: key, Err: ErrUnknownKey}
		}
		if !found || raw == "" {
			return nil, &KeyError{Line: line, Key: key, Err: ErrMissingValue}
		}

		v, err := parseValue(def.kind, raw)
		if err != nil {
			return nil, &KeyError{Line: line, Key: key, Err: err}
		}
		c.values[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return c, nil
}

// ParseString is Parse over a string.
func ParseString(text string, s *Schema) (*Config, error) {
	return Parse(strings.NewReader(text), s)
}

func parseValue(kind Kind, raw string) (value, error) {
	v := value{kind: kind}
	var err error
	switch kind {
	case KindFloat:
		v.f, err = strconv.ParseFloat(raw, 64)
	case KindInt:
		v.i, err = strconv.Atoi(raw)
	case KindBool:
		v.b, err = strconv.ParseBool(raw)
	case KindFloatList:
		for _, field := range strings.Split(raw, ",") {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if ferr != nil {
				return v, ferr
			}
			v.list = append(v.list, f)
		}
	default:
		err = fmt.Errorf("unsupported kind %s", kind)
	}
	return v, err
}

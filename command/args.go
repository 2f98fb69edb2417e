package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamType is the conversion applied to a positional argument.
type ParamType int

const (
	String ParamType = iota
	Int
	Bool
)

func (t ParamType) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return "str"
	}
}

// Param declares one positional argument.
type Param struct {
	Name     string
	Type     ParamType
	Optional bool
	Default  any
}

func (p Param) usage() string {
	if p.Optional {
		return "[" + p.Name + "]"
	}
	return "<" + p.Name + ">"
}

// parseArgs converts tokens per params. Surplus tokens are ignored.
func parseArgs(params []Param, tokens []string) ([]any, error) {
	args := make([]any, len(params))
	for i, p := range params {
		if i >= len(tokens) {
			if !p.Optional {
				return nil, NewError(KindMissingArgument, "%s is a required argument that is missing.", p.Name)
			}
			args[i] = p.Default
			continue
		}

		v, err := convert(p.Type, tokens[i])
		if err != nil {
			return nil, &Error{
				Kind:    KindBadArgument,
				Message: fmt.Sprintf("Converting to %q failed for parameter %q.", p.Type, p.Name),
				Err:     err,
			}
		}
		args[i] = v
	}
	return args, nil
}

func convert(t ParamType, token string) (any, error) {
	switch t {
	case Int:
		return strconv.Atoi(token)
	case Bool:
		switch strings.ToLower(token) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a recognised boolean option", token)
	default:
		return token, nil
	}
}

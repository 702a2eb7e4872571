package twincat

import (
	"errors"
	"fmt"
	"strings"

	"plcst/internal/comments"
	"plcst/internal/project"
	"plcst/internal/token"
)

// ErrEmptyUnit reports a unit file without any known top-level element.
var ErrEmptyUnit = errors.New("no POU, DUT, GVL or Itf element")

// endKeywords closes the unit a declaration opens.
var endKeywords = map[token.Kind]token.Kind{
	token.KwProgram:       token.KwEndProgram,
	token.KwFunctionBlock: token.KwEndFunctionBlock,
	token.KwFunction:      token.KwEndFunction,
	token.KwInterface:     token.KwEndInterface,
	token.KwMethod:        token.KwEndMethod,
	token.KwProperty:      token.KwEndProperty,
}

// openingKeyword is the first keyword of decl outside comments and pragmas.
func openingKeyword(decl string) (token.Kind, bool) {
	_, clean, err := comments.ExtractString(decl)
	if err != nil {
		clean = decl
	}
	words := strings.Fields(clean)
	if len(words) == 0 {
		return 0, false
	}
	return token.LookupKeyword(words[0])
}

// closeUnit returns decl+impl followed by the END keyword matching decl.
func closeUnit(decl, impl string) (string, error) {
	k, ok := openingKeyword(decl)
	end, known := endKeywords[k]
	if !ok || !known {
		return "", fmt.Errorf("declaration does not start a program unit: %.40q", strings.TrimSpace(decl))
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(decl, " \t\n"))
	sb.WriteString("\n")
	if body := strings.TrimRight(impl, " \t\n"); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	sb.WriteString(token.Spelling(end))
	sb.WriteString("\n")
	return sb.String(), nil
}

// assemble turns a decoded unit file into Structured Text.
func assemble(obj *tcPlcObject) (project.UnitKind, string, string, error) {
	switch {
	case obj.DUT != nil:
		return project.KindDataType, obj.DUT.Name, obj.DUT.Declaration, nil
	case obj.GVL != nil:
		return project.KindGlobalVars, obj.GVL.Name, obj.GVL.Declaration, nil
	case obj.POU != nil:
		text, err := assemblePOU(obj.POU)
		return project.KindPOU, obj.POU.Name, text, err
	case obj.Itf != nil:
		text, err := assemblePOU(obj.Itf)
		return project.KindInterface, obj.Itf.Name, text, err
	}
	return 0, "", "", ErrEmptyUnit
}

// assemblePOU emits the unit, then its methods, properties (one PROPERTY
// per accessor) and actions, in that order.
func assemblePOU(p *tcPOU) (string, error) {
	var parts []string
	add := func(decl, impl string) error {
		text, err := closeUnit(decl, impl)
		if err != nil {
			return err
		}
		parts = append(parts, text)
		return nil
	}

	if err := add(p.Declaration, p.Implementation.ST); err != nil {
		return "", fmt.Errorf("%s: %w", p.Name, err)
	}
	for _, m := range p.Methods {
		if err := add(m.Declaration, m.Implementation.ST); err != nil {
			return "", fmt.Errorf("%s.%s: %w", p.Name, m.Name, err)
		}
	}
	for _, prop := range p.Properties {
		accessors := []*tcPOU{prop.Get, prop.Set}
		emitted := false
		for _, acc := range accessors {
			if acc == nil {
				continue
			}
			decl := strings.TrimRight(prop.Declaration, " \t\n") + "\n" + acc.Declaration
			if err := add(decl, acc.Implementation.ST); err != nil {
				return "", fmt.Errorf("%s.%s.%s: %w", p.Name, prop.Name, acc.Name, err)
			}
			emitted = true
		}
		if !emitted {
			// свойство интерфейса: только заголовок
			if err := add(prop.Declaration, ""); err != nil {
				return "", fmt.Errorf("%s.%s: %w", p.Name, prop.Name, err)
			}
		}
	}
	for _, a := range p.Actions {
		body := strings.TrimRight(a.Implementation.ST, " \t\n")
		parts = append(parts, fmt.Sprintf("%s %s:\n%s\n%s\n",
			token.Spelling(token.KwAction), a.Name, body, token.Spelling(token.KwEndAction)))
	}
	return strings.Join(parts, "\n"), nil
}

// Package program loads lowered programs. A lowered program is a YAML
// document holding a flat table of named definitions whose bodies are
// kind-discriminated expression nodes; the frontend emits this form and
// the evaluator consumes it unchanged.
package program

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loomlang/loom/internal/ast"
)

// Definition is one named binding. Several definitions may share a name;
// together they form the clauses of one multi-clause function.
type Definition struct {
	Name string
	Expr ast.Expr
}

// Program is the definition table of one lowered program.
type Program struct {
	Defs []Definition
}

// Names returns every distinct definition name in first-appearance order.
func (p *Program) Names() []string {
	seen := make(map[string]bool, len(p.Defs))
	names := make([]string, 0, len(p.Defs))
	for _, def := range p.Defs {
		if !seen[def.Name] {
			seen[def.Name] = true
			names = append(names, def.Name)
		}
	}
	return names
}

type rawProgram struct {
	Defs []rawDef `yaml:"defs"`
}

type rawDef struct {
	Name string      `yaml:"name"`
	Expr interface{} `yaml:"expr"`
}

// Load decodes a lowered program from YAML.
func Load(data []byte) (*Program, error) {
	var raw rawProgram
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	prog := &Program{Defs: make([]Definition, 0, len(raw.Defs))}
	for i, def := range raw.Defs {
		if def.Name == "" {
			return nil, fmt.Errorf("program: definition %d has no name", i)
		}
		expr, err := decodeExpr(def.Expr)
		if err != nil {
			return nil, fmt.Errorf("program: definition %q: %w", def.Name, err)
		}
		prog.Defs = append(prog.Defs, Definition{Name: def.Name, Expr: expr})
	}
	return prog, nil
}

// LoadFile reads and decodes a lowered program file.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	return Load(data)
}

func decodeExpr(v interface{}) (ast.Expr, error) {
	m, err := nodeMap(v)
	if err != nil {
		return nil, err
	}
	kind, err := strField(m, "kind")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "ident":
		name, err := strField(m, "name")
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Name: name}, nil
	case "int":
		n, err := intField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.IntLit{Value: n}, nil
	case "float":
		f, err := floatField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.FloatLit{Value: f}, nil
	case "bool":
		b, okB := m["value"].(bool)
		if !okB {
			return nil, fmt.Errorf("bool node needs a boolean value")
		}
		return &ast.BoolLit{Value: b}, nil
	case "text":
		s, err := strField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.TextLit{Value: s}, nil
	case "sigil":
		tag, err := strField(m, "tag")
		if err != nil {
			return nil, err
		}
		return &ast.SigilLit{Tag: tag, Body: optStr(m, "body"), Flags: optStr(m, "flags")}, nil
	case "interp":
		return decodeInterp(m)
	case "list":
		elements, err := exprList(m, "elements")
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Elements: elements}, nil
	case "tuple":
		elements, err := exprList(m, "elements")
		if err != nil {
			return nil, err
		}
		return &ast.TupleLit{Elements: elements}, nil
	case "record":
		return decodeRecord(m)
	case "ctor":
		name, err := strField(m, "name")
		if err != nil {
			return nil, err
		}
		args, err := exprList(m, "args")
		if err != nil {
			return nil, err
		}
		return &ast.CtorLit{Name: name, Args: args}, nil
	case "lambda":
		param, err := decodePattern(m["param"])
		if err != nil {
			return nil, fmt.Errorf("lambda param: %w", err)
		}
		body, err := exprField(m, "body")
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Param: param, Body: body}, nil
	case "apply":
		fn, err := exprField(m, "fn")
		if err != nil {
			return nil, err
		}
		arg, err := exprField(m, "arg")
		if err != nil {
			return nil, err
		}
		return &ast.Apply{Fn: fn, Arg: arg}, nil
	case "if":
		cond, err := exprField(m, "cond")
		if err != nil {
			return nil, err
		}
		then, err := exprField(m, "then")
		if err != nil {
			return nil, err
		}
		els, err := exprField(m, "else")
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: cond, Then: then, Else: els}, nil
	case "binop":
		op, err := strField(m, "op")
		if err != nil {
			return nil, err
		}
		left, err := exprField(m, "left")
		if err != nil {
			return nil, err
		}
		right, err := exprField(m, "right")
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: op, Left: left, Right: right}, nil
	case "match":
		return decodeMatch(m)
	case "block":
		return decodeBlock(m)
	}
	return nil, fmt.Errorf("unknown expression kind %q", kind)
}

func decodeInterp(m map[string]interface{}) (ast.Expr, error) {
	rawParts, err := listField(m, "parts")
	if err != nil {
		return nil, err
	}
	parts := make([]ast.InterpPart, 0, len(rawParts))
	for _, raw := range rawParts {
		pm, err := nodeMap(raw)
		if err != nil {
			return nil, fmt.Errorf("interp part: %w", err)
		}
		if text, okT := pm["text"].(string); okT {
			parts = append(parts, ast.InterpPart{Text: text})
			continue
		}
		expr, err := decodeExpr(pm["expr"])
		if err != nil {
			return nil, fmt.Errorf("interp part: %w", err)
		}
		parts = append(parts, ast.InterpPart{Expr: expr})
	}
	return &ast.InterpText{Parts: parts}, nil
}

func decodeRecord(m map[string]interface{}) (ast.Expr, error) {
	rawFields, err := listField(m, "fields")
	if err != nil {
		return nil, err
	}
	fields := make([]ast.RecordField, 0, len(rawFields))
	for _, raw := range rawFields {
		fm, err := nodeMap(raw)
		if err != nil {
			return nil, fmt.Errorf("record field: %w", err)
		}
		key, err := strField(fm, "key")
		if err != nil {
			return nil, fmt.Errorf("record field: %w", err)
		}
		value, err := decodeExpr(fm["value"])
		if err != nil {
			return nil, fmt.Errorf("record field %q: %w", key, err)
		}
		fields = append(fields, ast.RecordField{Key: key, Value: value})
	}
	return &ast.RecordLit{Fields: fields}, nil
}

func decodeMatch(m map[string]interface{}) (ast.Expr, error) {
	subject, err := exprField(m, "subject")
	if err != nil {
		return nil, err
	}
	rawArms, err := listField(m, "arms")
	if err != nil {
		return nil, err
	}
	arms := make([]ast.MatchArm, 0, len(rawArms))
	for i, raw := range rawArms {
		am, err := nodeMap(raw)
		if err != nil {
			return nil, fmt.Errorf("match arm %d: %w", i, err)
		}
		pattern, err := decodePattern(am["pattern"])
		if err != nil {
			return nil, fmt.Errorf("match arm %d: %w", i, err)
		}
		var guard ast.Expr
		if am["guard"] != nil {
			guard, err = decodeExpr(am["guard"])
			if err != nil {
				return nil, fmt.Errorf("match arm %d guard: %w", i, err)
			}
		}
		body, err := decodeExpr(am["body"])
		if err != nil {
			return nil, fmt.Errorf("match arm %d: %w", i, err)
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Guard: guard, Body: body})
	}
	return &ast.Match{Subject: subject, Arms: arms}, nil
}

func decodeBlock(m map[string]interface{}) (ast.Expr, error) {
	kindName := optStr(m, "block")
	var kind ast.BlockKind
	switch kindName {
	case "plain", "":
		kind = ast.PlainBlock
	case "effect":
		kind = ast.EffectBlock
	case "generate":
		kind = ast.GenerateBlock
	case "resource":
		kind = ast.ResourceBlock
	default:
		return nil, fmt.Errorf("unknown block kind %q", kindName)
	}

	block := &ast.Block{Kind: kind}
	if kind == ast.ResourceBlock {
		acquire, err := decodeExpr(m["acquire"])
		if err != nil {
			return nil, fmt.Errorf("resource acquire: %w", err)
		}
		release, err := decodeExpr(m["release"])
		if err != nil {
			return nil, fmt.Errorf("resource release: %w", err)
		}
		block.Acquire = acquire
		block.Release = release
		block.Binding = optStr(m, "binding")
	}

	rawStmts, err := listField(m, "stmts")
	if err != nil {
		return nil, err
	}
	for i, raw := range rawStmts {
		sm, err := nodeMap(raw)
		if err != nil {
			return nil, fmt.Errorf("block stmt %d: %w", i, err)
		}
		expr, err := decodeExpr(sm["expr"])
		if err != nil {
			return nil, fmt.Errorf("block stmt %d: %w", i, err)
		}
		block.Stmts = append(block.Stmts, ast.BlockStmt{Bind: optStr(sm, "bind"), Expr: expr})
	}
	return block, nil
}

func decodePattern(v interface{}) (ast.Pattern, error) {
	m, err := nodeMap(v)
	if err != nil {
		return nil, err
	}
	kind, err := strField(m, "kind")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "wildcard":
		return &ast.WildcardPat{}, nil
	case "var":
		name, err := strField(m, "name")
		if err != nil {
			return nil, err
		}
		return &ast.VarPat{Name: name}, nil
	case "lit":
		return decodeLiteralPat(m)
	case "sigil":
		tag, err := strField(m, "tag")
		if err != nil {
			return nil, err
		}
		return &ast.SigilPat{Tag: tag, Body: optStr(m, "body"), Flags: optStr(m, "flags")}, nil
	case "ctor":
		name, err := strField(m, "name")
		if err != nil {
			return nil, err
		}
		args, err := patternList(m, "args")
		if err != nil {
			return nil, err
		}
		return &ast.CtorPat{Name: name, Args: args}, nil
	case "tuple":
		elements, err := patternList(m, "elements")
		if err != nil {
			return nil, err
		}
		return &ast.TuplePat{Elements: elements}, nil
	case "list":
		elements, err := patternList(m, "elements")
		if err != nil {
			return nil, err
		}
		pat := &ast.ListPat{Elements: elements}
		if m["rest"] != nil {
			rest, err := decodePattern(m["rest"])
			if err != nil {
				return nil, fmt.Errorf("list rest: %w", err)
			}
			pat.Rest = rest
		}
		return pat, nil
	case "record":
		rawFields, err := listField(m, "fields")
		if err != nil {
			return nil, err
		}
		fields := make(map[string]ast.Pattern, len(rawFields))
		for _, raw := range rawFields {
			fm, err := nodeMap(raw)
			if err != nil {
				return nil, fmt.Errorf("record pattern field: %w", err)
			}
			key, err := strField(fm, "key")
			if err != nil {
				return nil, fmt.Errorf("record pattern field: %w", err)
			}
			sub, err := decodePattern(fm["pattern"])
			if err != nil {
				return nil, fmt.Errorf("record pattern field %q: %w", key, err)
			}
			fields[key] = sub
		}
		return &ast.RecordPat{Fields: fields}, nil
	}
	return nil, fmt.Errorf("unknown pattern kind %q", kind)
}

func decodeLiteralPat(m map[string]interface{}) (ast.Pattern, error) {
	switch v := m["value"].(type) {
	case int:
		return &ast.LiteralPat{Value: int64(v)}, nil
	case int64:
		return &ast.LiteralPat{Value: v}, nil
	case float64:
		return &ast.LiteralPat{Value: v}, nil
	case bool:
		return &ast.LiteralPat{Value: v}, nil
	case string:
		return &ast.LiteralPat{Value: v}, nil
	}
	return nil, fmt.Errorf("literal pattern needs an int, float, bool or text value")
}

func nodeMap(v interface{}) (map[string]interface{}, error) {
	m, okM := v.(map[string]interface{})
	if !okM {
		return nil, fmt.Errorf("expected a node map, got %T", v)
	}
	return m, nil
}

func strField(m map[string]interface{}, key string) (string, error) {
	s, okS := m[key].(string)
	if !okS {
		return "", fmt.Errorf("missing or non-text %q field", key)
	}
	return s, nil
}

func optStr(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]interface{}, key string) (int64, error) {
	switch v := m[key].(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	}
	return 0, fmt.Errorf("missing or non-integer %q field", key)
}

func floatField(m map[string]interface{}, key string) (float64, error) {
	switch v := m[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("missing or non-numeric %q field", key)
}

func listField(m map[string]interface{}, key string) ([]interface{}, error) {
	if m[key] == nil {
		return nil, nil
	}
	l, okL := m[key].([]interface{})
	if !okL {
		return nil, fmt.Errorf("%q field must be a sequence", key)
	}
	return l, nil
}

func exprField(m map[string]interface{}, key string) (ast.Expr, error) {
	expr, err := decodeExpr(m[key])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return expr, nil
}

func exprList(m map[string]interface{}, key string) ([]ast.Expr, error) {
	raw, err := listField(m, key)
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expr, 0, len(raw))
	for i, v := range raw {
		expr, err := decodeExpr(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func patternList(m map[string]interface{}, key string) ([]ast.Pattern, error) {
	raw, err := listField(m, key)
	if err != nil {
		return nil, err
	}
	pats := make([]ast.Pattern, 0, len(raw))
	for i, v := range raw {
		pat, err := decodePattern(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		pats = append(pats, pat)
	}
	return pats, nil
}

package evaluator

import (
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/loomlang/loom/internal/config"
)

func init() {
	registerBuiltin(&Builtin{
		Name:  config.PrintFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			v := args[0]
			return NewEffect(func(fx *EffectContext) Object {
				fx.E.write(inspectText(v))
				return UnitValue
			})
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.PrintlnFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			v := args[0]
			return NewEffect(func(fx *EffectContext) Object {
				fx.E.write(inspectText(v) + "\n")
				return UnitValue
			})
		},
	})

	registerNamespace("file", map[string]Object{
		"read":   nsBuiltin("file", "read", 1, fileRead),
		"write":  nsBuiltin("file", "write", 2, fileWrite),
		"append": nsBuiltin("file", "append", 2, fileAppend),
		"open":   nsBuiltin("file", "open", 1, fileOpen),
		"close":  nsBuiltin("file", "close", 1, fileClose),
	})

	registerNamespace("clock", map[string]Object{
		"now": nsBuiltin("clock", "now", 1, clockNow),
	})
}

func textArg(name string, arg Object) (string, *RuntimeError) {
	t, ok := arg.(*Text)
	if !ok {
		return "", newError("%s expects text, got %s", name, arg.Type())
	}
	return t.Value, nil
}

// File errors are documented failure cases: payload errors carrying the
// OS error text, recoverable via attempt.
func fileRead(e *Evaluator, args ...Object) Object {
	path, err := textArg("file.read", args[0])
	if err != nil {
		return err
	}
	return NewEffect(func(fx *EffectContext) Object {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return newPayloadError(&Text{Value: rerr.Error()})
		}
		return &Text{Value: string(data)}
	})
}

func fileWrite(e *Evaluator, args ...Object) Object {
	path, err := textArg("file.write", args[0])
	if err != nil {
		return err
	}
	content, err := textArg("file.write", args[1])
	if err != nil {
		return err
	}
	return NewEffect(func(fx *EffectContext) Object {
		if werr := os.WriteFile(path, []byte(content), 0o644); werr != nil {
			return newPayloadError(&Text{Value: werr.Error()})
		}
		return UnitValue
	})
}

func fileAppend(e *Evaluator, args ...Object) Object {
	path, err := textArg("file.append", args[0])
	if err != nil {
		return err
	}
	content, err := textArg("file.append", args[1])
	if err != nil {
		return err
	}
	return NewEffect(func(fx *EffectContext) Object {
		f, oerr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if oerr != nil {
			return newPayloadError(&Text{Value: oerr.Error()})
		}
		defer f.Close()
		if _, werr := f.WriteString(content); werr != nil {
			return newPayloadError(&Text{Value: werr.Error()})
		}
		return UnitValue
	})
}

func fileOpen(e *Evaluator, args ...Object) Object {
	path, err := textArg("file.open", args[0])
	if err != nil {
		return err
	}
	return NewEffect(func(fx *EffectContext) Object {
		f, oerr := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if oerr != nil {
			return newPayloadError(&Text{Value: oerr.Error()})
		}
		return &FileHandle{ID: uuid.New(), Path: path, file: f}
	})
}

func fileClose(e *Evaluator, args ...Object) Object {
	h, okH := args[0].(*FileHandle)
	if !okH {
		return newError("file.close expects a file handle, got %s", args[0].Type())
	}
	return NewEffect(func(fx *EffectContext) Object {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.file == nil {
			return UnitValue
		}
		cerr := h.file.Close()
		h.file = nil
		if cerr != nil {
			return newPayloadError(&Text{Value: cerr.Error()})
		}
		return UnitValue
	})
}

func clockNow(e *Evaluator, args ...Object) Object {
	return NewEffect(func(fx *EffectContext) Object {
		return &DateTime{Value: time.Now()}
	})
}

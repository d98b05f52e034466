package evaluator

import (
	"database/sql"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// The db namespace wraps a SQLite connection behind an opaque handle.
// Every operation is an effect; failures surface as payload errors so
// programs can recover with attempt.

func init() {
	registerNamespace("db", map[string]Object{
		"open":  nsBuiltin("db", "open", 1, dbOpen),
		"exec":  nsBuiltin("db", "exec", 3, dbExec),
		"query": nsBuiltin("db", "query", 3, dbQuery),
		"close": nsBuiltin("db", "close", 1, dbClose),
	})
}

func dbArg(name string, arg Object) (*DBHandle, *RuntimeError) {
	h, okH := arg.(*DBHandle)
	if !okH {
		return nil, newError("%s expects a database handle, got %s", name, arg.Type())
	}
	return h, nil
}

func dbOpen(e *Evaluator, args ...Object) Object {
	path, okP := args[0].(*Text)
	if !okP {
		return newError("db.open expects a text path, got %s", args[0].Type())
	}
	return NewEffect(func(fx *EffectContext) Object {
		db, err := sql.Open("sqlite", path.Value)
		if err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return newPayloadError(&Text{Value: err.Error()})
		}
		return &DBHandle{ID: uuid.New(), Path: path.Value, db: db}
	})
}

func dbExec(e *Evaluator, args ...Object) Object {
	h, errH := dbArg("db.exec", args[0])
	if errH != nil {
		return errH
	}
	stmt, okS := args[1].(*Text)
	if !okS {
		return newError("db.exec expects a text statement, got %s", args[1].Type())
	}
	params, errP := sqlParams("db.exec", args[2])
	if errP != nil {
		return errP
	}
	return NewEffect(func(fx *EffectContext) Object {
		res, err := h.db.Exec(stmt.Value, params...)
		if err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		n, err := res.RowsAffected()
		if err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		return &Integer{Value: n}
	})
}

func dbQuery(e *Evaluator, args ...Object) Object {
	h, errH := dbArg("db.query", args[0])
	if errH != nil {
		return errH
	}
	stmt, okS := args[1].(*Text)
	if !okS {
		return newError("db.query expects a text statement, got %s", args[1].Type())
	}
	params, errP := sqlParams("db.query", args[2])
	if errP != nil {
		return errP
	}
	return NewEffect(func(fx *EffectContext) Object {
		rows, err := h.db.Query(stmt.Value, params...)
		if err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		out := NewList(nil)
		for rows.Next() {
			if cancelled := fx.check(); cancelled != nil {
				return cancelled
			}
			values := make([]interface{}, len(cols))
			scans := make([]interface{}, len(cols))
			for i := range values {
				scans[i] = &values[i]
			}
			if err := rows.Scan(scans...); err != nil {
				return newPayloadError(&Text{Value: err.Error()})
			}
			fields := make([]RecordEntry, 0, len(cols))
			for i, col := range cols {
				fields = append(fields, RecordEntry{Key: col, Value: sqlValue(values[i])})
			}
			out = out.Append(NewRecord(fields))
		}
		if err := rows.Err(); err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		return out
	})
}

func dbClose(e *Evaluator, args ...Object) Object {
	h, errH := dbArg("db.close", args[0])
	if errH != nil {
		return errH
	}
	return NewEffect(func(fx *EffectContext) Object {
		if err := h.db.Close(); err != nil {
			return newPayloadError(&Text{Value: err.Error()})
		}
		return UnitValue
	})
}

// sqlParams converts a parameter list into driver arguments.
func sqlParams(name string, arg Object) ([]interface{}, *RuntimeError) {
	l, okL := arg.(*List)
	if !okL {
		return nil, newError("%s expects a parameter list, got %s", name, arg.Type())
	}
	params := make([]interface{}, 0, l.Len())
	for _, el := range l.ToSlice() {
		switch v := el.(type) {
		case *Integer:
			params = append(params, v.Value)
		case *Float:
			params = append(params, v.Value)
		case *Text:
			params = append(params, v.Value)
		case *Bytes:
			params = append(params, v.Value)
		case *Boolean:
			params = append(params, v.Value)
		case *Unit:
			params = append(params, nil)
		default:
			return nil, newError("%s cannot bind a %s parameter", name, el.Type())
		}
	}
	return params, nil
}

// sqlValue converts a scanned column into a runtime value.
func sqlValue(v interface{}) Object {
	switch v := v.(type) {
	case nil:
		return UnitValue
	case int64:
		return &Integer{Value: v}
	case float64:
		return &Float{Value: v}
	case string:
		return &Text{Value: v}
	case []byte:
		return &Bytes{Value: append([]byte(nil), v...)}
	case bool:
		return nativeBool(v)
	default:
		return &Text{Value: sqlUnknown(v)}
	}
}

func sqlUnknown(v interface{}) string {
	type stringer interface{ String() string }
	if s, okS := v.(stringer); okS {
		return s.String()
	}
	return "<unsupported column>"
}

// Package record maps loosely typed key/value input onto fixed column
// whitelists and builds parameter-bound SQL statements from them.
//
// Column and table names only ever come from a Whitelist declared in code.
// Every value reaches the database as a bound argument.
package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Values is inbound column data after coercion to text.
type Values map[string]string

// Statement is a SQL string and the arguments bound to its placeholders.
type Statement struct {
	SQL  string
	Args []any
}

// Whitelist is an ordered, exhaustive set of writable columns of one table.
type Whitelist struct {
	table   string
	columns []string
}

func NewWhitelist(table string, columns ...string) Whitelist {
	return Whitelist{table: table, columns: append([]string(nil), columns...)}
}

// ItemColumns is the write whitelist of the items table. The id column is
// server-assigned and never part of it.
var ItemColumns = NewWhitelist("items",
	"title", "description", "price", "type", "size", "vendor", "site", "gender", "tags",
)

func (w Whitelist) Table() string { return w.table }

func (w Whitelist) Columns() []string { return append([]string(nil), w.columns...) }

// Args returns one argument per whitelisted column in whitelist order,
// substituting "" for columns missing from v.
func (w Whitelist) Args(v Values) []any {
	args := make([]any, len(w.columns))
	for i, c := range w.columns {
		args[i] = v[c]
	}
	return args
}

// Dropped lists the keys of v that are not whitelisted, sorted.
func (w Whitelist) Dropped(v Values) []string {
	var out []string
	for k := range v {
		if !w.has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (w Whitelist) has(col string) bool {
	for _, c := range w.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Insert builds INSERT INTO table (c1, ...) VALUES (?, ...).
func (w Whitelist) Insert(v Values) Statement {
	return Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			w.table, strings.Join(w.columns, ", "), placeholders(len(w.columns))),
		Args: w.Args(v),
	}
}

// Update builds a full overwrite of every whitelisted column of one row.
func (w Whitelist) Update(id int64, v Values) Statement {
	sets := make([]string, len(w.columns))
	for i, c := range w.columns {
		sets[i] = c + " = ?"
	}
	return Statement{
		SQL:  fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", w.table, strings.Join(sets, ", ")),
		Args: append(w.Args(v), id),
	}
}

// Delete builds a hard delete of one row.
func (w Whitelist) Delete(id int64) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE id = ?", w.table),
		Args: []any{id},
	}
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// FromPayload coerces every value of a decoded JSON object to text.
func FromPayload(payload map[string]any) Values {
	v := make(Values, len(payload))
	for k, raw := range payload {
		v[k] = Text(raw)
	}
	return v
}

// Text renders a decoded JSON value as column text. Numbers keep their
// literal form, null becomes "", arrays and objects become compact JSON.
func Text(raw any) string {
	switch t := raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

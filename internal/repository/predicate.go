package repository

import (
	"fmt"
	"strings"
)

// Predicate — структурированное AND-объединение условий для WHERE-части
// запроса. Условия хранят текст с маркерами `?` и отдельный список
// аргументов; в SQL они попадают только как позиционные параметры —
// ни одно значение не интерполируется в текст запроса.
type Predicate struct {
	conds []condition
}

type condition struct {
	expr string
	args []any
}

// And добавляет условие. Кол-во маркеров `?` в expr должно совпадать
// с кол-вом args.
func (p *Predicate) And(expr string, args ...any) {
	p.conds = append(p.conds, condition{expr: expr, args: args})
}

// Len вернет кол-во AND-условий верхнего уровня.
func (p *Predicate) Len() int {
	return len(p.conds)
}

// IsEmpty сообщает, что предикат не ограничивает выборку.
func (p *Predicate) IsEmpty() bool {
	return len(p.conds) == 0
}

// ToSQL вернет текст условий, объединённых AND, с маркерами `?`,
// перенумерованными в позиционные параметры начиная с $start,
// и список аргументов в том же порядке. Для пустого предиката — ("", nil).
func (p *Predicate) ToSQL(start int) (string, []any) {
	if p.IsEmpty() {
		return "", nil
	}

	var sb strings.Builder
	var args []any
	n := start

	for i, c := range p.conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for _, r := range c.expr {
			if r == '?' {
				sb.WriteString(fmt.Sprintf("$%d", n))
				n++
				continue
			}
			sb.WriteRune(r)
		}
		args = append(args, c.args...)
	}

	return sb.String(), args
}

// WhereClause вернет готовую WHERE-часть ("WHERE ..." либо пустую строку)
// с параметрами начиная с $start.
func (p *Predicate) WhereClause(start int) (string, []any) {
	if p.IsEmpty() {
		return "", nil
	}
	sql, args := p.ToSQL(start)
	return "WHERE " + sql, args
}

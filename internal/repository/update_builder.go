package repository

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// UpdateBuilder собирает параметризованный UPDATE из пар (колонка, значение).
// Значения всегда передаются плейсхолдерами, имена колонок проверяются.
type UpdateBuilder struct {
	table     string
	sets      []string
	args      []any
	where     string
	returning []string
	err       error
}

func NewUpdateBuilder(table string) *UpdateBuilder {
	b := &UpdateBuilder{table: table}
	b.check(table)
	return b
}

func (b *UpdateBuilder) check(name string) {
	if b.err == nil && !identifier.MatchString(name) {
		b.err = fmt.Errorf("недопустимое имя колонки или таблицы: %q", name)
	}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.check(column)
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

func (b *UpdateBuilder) Where(column string, value any) *UpdateBuilder {
	b.check(column)
	b.args = append(b.args, value)
	b.where = fmt.Sprintf("%s = $%d", column, len(b.args))
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	for _, c := range columns {
		b.check(c)
	}
	b.returning = append(b.returning, columns...)
	return b
}

// Len : число колонок в SET
func (b *UpdateBuilder) Len() int {
	return len(b.sets)
}

func (b *UpdateBuilder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("нет полей для обновления")
	}
	if b.where == "" {
		return "", nil, fmt.Errorf("UPDATE без WHERE запрещен")
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(b.sets, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(b.where)
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	return sb.String(), b.args, nil
}

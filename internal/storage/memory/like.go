package memory

import (
	"regexp"
	"strings"
)

// likeMatch воспроизводит SQL-оператор LIKE: '%' — любая подстрока,
// '_' — ровно один символ, сравнение чувствительно к регистру.
// Каталоги in-memory хранилища малы, компиляция шаблона на каждый
// вызов здесь не узкое место.
func likeMatch(pattern, value string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

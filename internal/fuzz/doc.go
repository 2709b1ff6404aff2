// Package fuzztests houses Go fuzz harnesses for the line tokenizer and the
// file scanner. They guard against panics, hangs and broken span invariants
// on arbitrary input.
//
// Назначение: прогонять произвольные байты через line и driver и проверять
// инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/line, internal/driver, internal/source,
// internal/testkit.

package fuzztests

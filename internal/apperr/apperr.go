// Package apperr define a taxonomia de erros de negócio do SGE.
// Cada categoria corresponde a um status HTTP na camada de handler.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifica um erro de negócio.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// Error carrega a categoria e a mensagem destinada ao cliente.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation cria um erro de dados inválidos (HTTP 400).
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound cria um erro de registro inexistente (HTTP 404).
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict cria um erro de conflito de estado (HTTP 409).
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal cria um erro interno (HTTP 500).
func Internal(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf extrai a categoria de um erro, atravessando cadeias de %w.
// Erros que não são *Error contam como internos.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf devolve a mensagem destinada ao cliente.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

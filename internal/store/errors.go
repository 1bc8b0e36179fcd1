package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/savioomio/sistema-notas-posto/internal/validation"
)

// Domain errors surfaced to handlers. Messages are user-facing (pt-BR), the
// same wording the desktop UI shows.
var (
	ErrClientNotFound    = errors.New("cliente não encontrado")
	ErrInvoiceNotFound   = errors.New("nota não encontrada")
	ErrDuplicateDocument = errors.New("já existe um cliente com este documento")
	ErrClientHasInvoices = errors.New("não é possível excluir cliente que possui notas de venda")
)

// ValidationError carries the per-field violations of a rejected write.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("campos inválidos: %s", strings.Join(names, ", "))
}

func validationErr(v validation.Violations) error {
	return &ValidationError{Fields: v}
}

package codegen

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/joestump/api-docs/internal/catalog"
)

// member is one key of an ordered JSON object.
type member struct {
	Key   string
	Value any
}

// object is a JSON object that marshals its keys in insertion order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(m.Key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(m.Value); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StatusKind separates success from error status codes.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusCode is one row of the possible responses table.
type StatusCode struct {
	Code        int        `json:"code"`
	Description string     `json:"description"`
	Kind        StatusKind `json:"kind"`
}

// StatusCodes lists the success code for e's method followed by the common
// error codes.
func StatusCodes(e *catalog.Endpoint) []StatusCode {
	ok := StatusCode{200, "Sucesso", StatusSuccess}
	switch e.Method {
	case catalog.MethodPost:
		ok = StatusCode{201, "Criado com sucesso", StatusSuccess}
	case catalog.MethodDelete:
		ok = StatusCode{204, "Removido com sucesso", StatusSuccess}
	}
	return []StatusCode{
		ok,
		{400, "Requisição inválida", StatusError},
		{401, "Não autorizado", StatusError},
		{404, "Não encontrado", StatusError},
		{500, "Erro interno do servidor", StatusError},
	}
}

const sampleTimestamp = "2024-01-15T10:30:00Z"

// sampleData returns a representative record for e's category.
func sampleData(e *catalog.Endpoint) object {
	var o object
	name := strings.ToLower(e.CategoryName)
	switch {
	case strings.Contains(name, "user") || strings.Contains(name, "utilizador"):
		o = object{
			{"nome", "João Silva"},
			{"email", "joao@example.com"},
			{"telefone", "+258 84 123 4567"},
		}
	case strings.Contains(name, "curso"):
		o = object{
			{"nome", "Engenharia Informática"},
			{"codigo", "EI2024"},
			{"duracao", 4},
		}
	default:
		o = object{
			{"nome", "Exemplo"},
			{"descricao", "Descrição de exemplo"},
		}
	}
	return append(o,
		member{"createdAt", sampleTimestamp},
		member{"updatedAt", sampleTimestamp},
	)
}

// ResponseExample is a pretty-printed sample response body for e.
func ResponseExample(e *catalog.Endpoint) string {
	data := sampleData(e)
	switch e.Method {
	case catalog.MethodDelete:
		return indent(object{
			{"success", true},
			{"message", "Recurso removido com sucesso"},
		})
	case catalog.MethodPost:
		return indent(object{
			{"id", 1},
			{"message", "Recurso criado com sucesso"},
			{"data", data},
		})
	case catalog.MethodGet:
		item := append(object{{"id", 1}}, data...)
		if strings.Contains(e.Path, "{id}") {
			return indent(item)
		}
		return indent(object{
			{"data", []object{item}},
			{"total", 1},
			{"page", 1},
			{"limit", 10},
		})
	}
	return indent(object{
		{"success", true},
		{"data", data},
	})
}

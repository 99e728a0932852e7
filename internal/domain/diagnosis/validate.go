package diagnosis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
)

const (
	MinSymptomsLength = 20

	MinSeverity = 1
	MaxSeverity = 10

	MinAge = 1
	MaxAge = 120
)

const (
	FieldBody     = "body"
	FieldSymptoms = "symptoms"
	FieldDuration = "duration"
	FieldSeverity = "severity"
	FieldAge      = "age"
)

const reasonRequired = "field required"

// FieldError indica qué restricción se violó en un campo.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lleva todas las violaciones de un reporte, en orden de campos.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has indica si field aparece entre las violaciones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// AsValidationError desenvuelve err a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// RawReport es el body tal como llegó, antes de validar. Los punteros
// distinguen "no enviado" (o null) del valor cero.
type RawReport struct {
	Symptoms *string `json:"symptoms,omitempty"`
	Duration *string `json:"duration,omitempty"`
	Severity *int    `json:"severity,omitempty"`
	Age      *int    `json:"age,omitempty"`

	// errores de tipo detectados al decodificar, uno por campo; Validate los suma
	typeErrs []FieldError

	// body original, campo por campo (incluye campos desconocidos y nulls)
	payload map[string]json.RawMessage
}

// Payload devuelve el body recibido sin tocar. Si el RawReport no vino de
// DecodeReport, se arma a partir de los campos conocidos.
func (r RawReport) Payload() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(r.payload))
	if r.payload != nil {
		for k, v := range r.payload {
			out[k] = v
		}
		return out
	}

	b, err := json.Marshal(r)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(b, &out)
	return out
}

// DecodeReport lee un único objeto JSON. Falla solo si el body no es un
// objeto JSON (vacío, malformado, otro tipo o con datos extra al final).
// Cada campo conocido se decodifica por separado: un tipo incorrecto queda
// registrado en ese campo y Validate lo reporta junto al resto.
func DecodeReport(r io.Reader) (RawReport, error) {
	dec := json.NewDecoder(r)

	// Igual que en los PATCH: primero a map para ver qué campos vinieron.
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return RawReport{}, bodyError("request body is empty")
		}
		return RawReport{}, bodyError("malformed JSON: " + err.Error())
	}
	if fields == nil {
		return RawReport{}, bodyError("malformed JSON: body must be a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return RawReport{}, bodyError("malformed JSON: unexpected data after JSON object")
	}

	raw := RawReport{payload: fields}
	raw.Symptoms = decodeField[string](fields, FieldSymptoms, &raw.typeErrs)
	raw.Duration = decodeField[string](fields, FieldDuration, &raw.typeErrs)
	raw.Severity = decodeField[int](fields, FieldSeverity, &raw.typeErrs)
	raw.Age = decodeField[int](fields, FieldAge, &raw.typeErrs)
	return raw, nil
}

// decodeField devuelve nil si el campo falta, es null o tiene otro tipo; en
// este último caso agrega el error a errs.
func decodeField[T any](fields map[string]json.RawMessage, name string, errs *[]FieldError) *T {
	v, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}

	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		*errs = append(*errs, FieldError{Field: name, Reason: typeReason(reflect.TypeOf(out))})
		return nil
	}
	return &out
}

func bodyError(reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: FieldBody, Reason: reason}}}
}

func typeReason(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "must be an integer"
	case reflect.String:
		return "must be a string"
	default:
		return "invalid type"
	}
}

// Validate revisa cada campo por separado y junta todas las violaciones.
func Validate(raw RawReport) (Report, error) {
	var (
		out  Report
		errs []FieldError
	)

	typeErr := func(field string) (FieldError, bool) {
		for _, fe := range raw.typeErrs {
			if fe.Field == field {
				return fe, true
			}
		}
		return FieldError{}, false
	}

	// symptoms
	if fe, ok := typeErr(FieldSymptoms); ok {
		errs = append(errs, fe)
	} else if raw.Symptoms == nil {
		errs = append(errs, FieldError{Field: FieldSymptoms, Reason: reasonRequired})
	} else {
		s := strings.TrimSpace(*raw.Symptoms)
		if n := utf8.RuneCountInString(s); n < MinSymptomsLength {
			errs = append(errs, FieldError{
				Field:  FieldSymptoms,
				Reason: fmt.Sprintf("too short: %d < %d chars", n, MinSymptomsLength),
			})
		}
		out.Symptoms = s
	}

	// duration
	if fe, ok := typeErr(FieldDuration); ok {
		errs = append(errs, fe)
	} else if raw.Duration == nil {
		errs = append(errs, FieldError{Field: FieldDuration, Reason: reasonRequired})
	} else if d := Duration(*raw.Duration); !d.Valid() {
		errs = append(errs, FieldError{Field: FieldDuration, Reason: "not in allowed set: " + allowedDurationsText()})
	} else {
		out.Duration = d
	}

	// severity
	if fe, ok := typeErr(FieldSeverity); ok {
		errs = append(errs, fe)
	} else if raw.Severity == nil {
		errs = append(errs, FieldError{Field: FieldSeverity, Reason: reasonRequired})
	} else if v := *raw.Severity; v < MinSeverity || v > MaxSeverity {
		errs = append(errs, FieldError{
			Field:  FieldSeverity,
			Reason: fmt.Sprintf("out of range %d-%d: got %d", MinSeverity, MaxSeverity, v),
		})
	} else {
		out.Severity = v
	}

	// age
	if fe, ok := typeErr(FieldAge); ok {
		errs = append(errs, fe)
	} else if raw.Age == nil {
		errs = append(errs, FieldError{Field: FieldAge, Reason: reasonRequired})
	} else if v := *raw.Age; v < MinAge || v > MaxAge {
		errs = append(errs, FieldError{
			Field:  FieldAge,
			Reason: fmt.Sprintf("out of range %d-%d: got %d", MinAge, MaxAge, v),
		})
	} else {
		out.Age = v
	}

	if len(errs) > 0 {
		return Report{}, &ValidationError{Fields: errs}
	}
	return out, nil
}

func allowedDurationsText() string {
	parts := make([]string, 0, len(AllowedDurations))
	for _, d := range AllowedDurations {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ", ")
}

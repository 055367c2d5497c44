package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Snapshot is the saved-file representation of a quote. Field names are fixed
// for compatibility with existing files. Only inputs are stored; derived
// prices are recomputed on load.
type Snapshot struct {
	NombreEmpresa string            `json:"NombreEmpresa"`
	DatosFiscales string            `json:"DatosFiscales"`
	Contacto      string            `json:"Contacto"`
	LogoPath      string            `json:"LogoPath"`
	Productos     []SnapshotProduct `json:"Productos"`
}

// SnapshotProduct is one stored line item.
type SnapshotProduct struct {
	Nombre          string      `json:"Nombre"`
	Descripcion     string      `json:"Descripcion"`
	PrecioNeto      json.Number `json:"PrecioNeto"`
	PorcentajeExtra json.Number `json:"PorcentajeExtra"`
}

// snapshotInput mirrors Snapshot with pointers so missing keys can be told
// apart from empty values.
type snapshotInput struct {
	NombreEmpresa *string         `json:"NombreEmpresa"`
	DatosFiscales *string         `json:"DatosFiscales"`
	Contacto      *string         `json:"Contacto"`
	LogoPath      *string         `json:"LogoPath"`
	Productos     json.RawMessage `json:"Productos"`
}

type snapshotProductInput struct {
	Nombre          *string      `json:"Nombre"`
	Descripcion     *string      `json:"Descripcion"`
	PrecioNeto      *json.Number `json:"PrecioNeto"`
	PorcentajeExtra *json.Number `json:"PorcentajeExtra"`
}

// NewSnapshot captures the inputs of q.
func NewSnapshot(q *Quote) Snapshot {
	s := Snapshot{
		NombreEmpresa: q.Company.Name,
		DatosFiscales: q.Company.FiscalDetails,
		Contacto:      q.Company.Contact,
		LogoPath:      q.LogoPath,
		Productos:     make([]SnapshotProduct, 0, q.Len()),
	}
	for _, item := range q.items {
		s.Productos = append(s.Productos, SnapshotProduct{
			Nombre:          item.Name,
			Descripcion:     item.Description,
			PrecioNeto:      json.Number(item.NetPrice.String()),
			PorcentajeExtra: json.Number(item.ExtraPercent.String()),
		})
	}
	return s
}

// EncodeSnapshot serializes q as indented JSON.
func EncodeSnapshot(q *Quote) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(q), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a saved quote and reprices every item with p. Either
// the whole document decodes or a *FormatError is returned.
func DecodeSnapshot(data []byte, p PricingEngine) (*Quote, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &FormatError{Reason: "expected a JSON object"}
	}

	var in snapshotInput
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, &FormatError{Reason: "invalid JSON", Err: err}
	}

	products := bytes.TrimSpace(in.Productos)
	if len(products) == 0 || bytes.Equal(products, []byte("null")) {
		return nil, &FormatError{Reason: `missing "Productos"`}
	}
	if products[0] != '[' {
		return nil, &FormatError{Reason: `"Productos" is not a list`}
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(products, &rawItems); err != nil {
		return nil, &FormatError{Reason: `"Productos" is not a list`, Err: err}
	}

	q := NewQuote(p)
	q.Company = CompanyInfo{
		Name:          deref(in.NombreEmpresa),
		FiscalDetails: deref(in.DatosFiscales),
		Contact:       deref(in.Contacto),
	}
	q.LogoPath = deref(in.LogoPath)

	for i, raw := range rawItems {
		reason := fmt.Sprintf("Productos[%d]", i)

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			return nil, &FormatError{Reason: reason + " is not an object"}
		}
		var item snapshotProductInput
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, &FormatError{Reason: reason, Err: err}
		}
		if missing := item.missingField(); missing != "" {
			return nil, &FormatError{Reason: fmt.Sprintf("%s: missing %q", reason, missing)}
		}

		netPrice, err := decimal.NewFromString(item.PrecioNeto.String())
		if err != nil {
			return nil, &FormatError{Reason: reason + ".PrecioNeto", Err: err}
		}
		extraPercent, err := decimal.NewFromString(item.PorcentajeExtra.String())
		if err != nil {
			return nil, &FormatError{Reason: reason + ".PorcentajeExtra", Err: err}
		}
		if _, err := q.AddLineItem(*item.Nombre, *item.Descripcion, netPrice, extraPercent); err != nil {
			return nil, &FormatError{Reason: reason, Err: err}
		}
	}

	return q, nil
}

func (in snapshotProductInput) missingField() string {
	switch {
	case in.Nombre == nil:
		return "Nombre"
	case in.Descripcion == nil:
		return "Descripcion"
	case in.PrecioNeto == nil:
		return "PrecioNeto"
	case in.PorcentajeExtra == nil:
		return "PorcentajeExtra"
	}
	return ""
}

// SaveSnapshotFile writes q to path. The file is replaced in one step, so a
// failed save leaves any previous file intact.
func SaveSnapshotFile(path string, q *Quote) error {
	data, err := EncodeSnapshot(q)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// LoadSnapshotFile reads and decodes a quote file.
func LoadSnapshotFile(path string, p PricingEngine) (*Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return DecodeSnapshot(data, p)
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

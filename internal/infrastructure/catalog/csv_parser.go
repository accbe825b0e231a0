// Package catalog importa catálogos de items desde CSV. Acepta exportaciones en UTF-8
// (con o sin BOM) y en Latin-1 / Windows-1252, el formato habitual de los sistemas
// de droguería heredados.
package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/epharma-api/internal/application/dto"
)

// Codificaciones soportadas.
const (
	EncodingUTF8    = "utf-8"
	EncodingLatin1  = "latin1"
	EncodingWindows = "windows-1252"
)

var (
	ErrMissingHeader   = errors.New("catálogo: falta la cabecera")
	ErrMissingColumn   = errors.New("catálogo: columna requerida ausente")
	ErrUnknownEncoding = errors.New("catálogo: codificación no soportada")
	ErrInvalidRow      = errors.New("catálogo: fila inválida")
)

var requiredColumns = []string{"name", "brand", "cost_price", "selling_price"}

func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		// Quita el BOM si viene.
		return unicode.UTF8BOM, nil
	case EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1, nil
	case EncodingWindows, "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// ParseItems lee un CSV con cabecera y devuelve una petición de alta por fila.
// Columnas requeridas: name, brand, cost_price, selling_price.
// Opcionales: id, quantity, expiry_date, barcode. El separador puede ser ',' o ';'.
func ParseItems(r io.Reader, enc string) ([]dto.CreateItemRequest, error) {
	decoder, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(transform.NewReader(r, decoder.NewDecoder()))

	first, err := br.Peek(1)
	if err != nil || len(first) == 0 {
		return nil, ErrMissingHeader
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ErrMissingHeader
	}
	// Exportaciones de hojas de cálculo en español usan ';'.
	if len(header) == 1 && strings.Contains(header[0], ";") {
		header = strings.Split(header[0], ";")
		cr.Comma = ';'
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var out []dto.CreateItemRequest
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %w", ErrInvalidRow, line, err)
		}
		if isBlank(record) {
			continue
		}
		item, err := rowToItem(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %w", ErrInvalidRow, line, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func rowToItem(record []string, cols map[string]int) (dto.CreateItemRequest, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	item := dto.CreateItemRequest{
		Name:  field("name"),
		Brand: field("brand"),
	}
	var err error
	if item.CostPrice, err = parseMoney(field("cost_price")); err != nil {
		return item, fmt.Errorf("cost_price: %w", err)
	}
	if item.SellingPrice, err = parseMoney(field("selling_price")); err != nil {
		return item, fmt.Errorf("selling_price: %w", err)
	}
	if s := field("id"); s != "" {
		if item.ID, err = strconv.ParseInt(s, 10, 64); err != nil {
			return item, fmt.Errorf("id: %w", err)
		}
	}
	if s := field("quantity"); s != "" {
		if item.Quantity, err = strconv.Atoi(s); err != nil {
			return item, fmt.Errorf("quantity: %w", err)
		}
	}
	if s := field("expiry_date"); s != "" {
		item.ExpiryDate = &s
	}
	if s := field("barcode"); s != "" {
		item.Barcode = &s
	}
	return item, nil
}

// parseMoney acepta "1500", "1500.50" y la coma decimal "1500,50".
func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

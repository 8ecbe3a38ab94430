package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/encoding"
	"golang.org/x/text/encoding/charmap"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Дата;Описание;Сумма\nПокупка;Кафе;-12,50\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1251(t *testing.T) {
	input := "Дата;Описание;Сумма\n" +
		"01.06.2024;Покупка продуктов в магазине;-1 234,56\n" +
		"02.06.2024;Оплата услуг связи;-500,00\n" +
		"03.06.2024;Поступление заработной платы;50 000,00\n"

	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(input))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	content := "Дата;Сумма\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	content := "Date;Amount\n"

	raw := []byte{0xFF, 0xFE}
	for _, c := range []byte(content) {
		raw = append(raw, c, 0x00)
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

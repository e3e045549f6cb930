package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("greeting", "Hello {{ .Name }}", map[string]string{"Name": "World"})
	assert.NoError(t, err)
	assert.Equal(t, "Hello World", out)
}

func TestRenderer_Funcs(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("funcs", "{{ lower .Name }}/{{ upper .Name }}/{{ snake .Name }}",
		map[string]string{"Name": "SalesOrder"})
	assert.NoError(t, err)
	assert.Equal(t, "salesorder/SALESORDER/sales_order", out)
}

func TestRenderer_SyntaxError(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("broken", "{{ .Name", nil)
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "syntax")
}

func TestRenderer_MissingField(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("missing", "{{ .Nope }}", struct{ Name string }{Name: "x"})
	assert.Error(t, err)
}

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"SalesOrder":    "sales_order",
		"orders":        "orders",
		"Sales Orders":  "sales_orders",
		"customer-name": "customer_name",
		"Id":            "id",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnake(in), "toSnake(%q)", in)
	}
}

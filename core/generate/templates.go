package generate

// Default artifact templates. The data context is templateData; field and
// grid ordering is taken from the configuration as-is.

const controllerTemplate = `package {{ snake .Module }}

import (
	"github.com/gofiber/fiber/v2"
)

// {{ .Entity }}Controller serves the generated {{ .Entity }} interface.
type {{ .Entity }}Controller struct {
	service {{ .Entity }}Service
}

func New{{ .Entity }}Controller(service {{ .Entity }}Service) *{{ .Entity }}Controller {
	return &{{ .Entity }}Controller{service: service}
}

func (c *{{ .Entity }}Controller) RegisterRoutes(router fiber.Router) {
	group := router.Group("/{{ lower .Entity }}")
	group.Get("/", c.List)
	group.Get("/:id", c.Get)
	group.Post("/", c.Create)
	group.Put("/:id", c.Update)
	group.Delete("/:id", c.Delete)
}

func (c *{{ .Entity }}Controller) List(ctx *fiber.Ctx) error {
	items, err := c.service.List(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(items)
}

func (c *{{ .Entity }}Controller) Get(ctx *fiber.Ctx) error {
	item, err := c.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(item)
}

func (c *{{ .Entity }}Controller) Create(ctx *fiber.Ctx) error {
	var model {{ .Entity }}ViewModel
	if err := ctx.BodyParser(&model); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	created, err := c.service.Create(ctx.Context(), &model)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *{{ .Entity }}Controller) Update(ctx *fiber.Ctx) error {
	var model {{ .Entity }}ViewModel
	if err := ctx.BodyParser(&model); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	updated, err := c.service.Update(ctx.Context(), ctx.Params("id"), &model)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(updated)
}

func (c *{{ .Entity }}Controller) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
`

const viewModelTemplate = `package {{ snake .Module }}

// {{ .Entity }}ViewModel carries {{ .Entity }} form data between the
// interface and the service layer. Regenerated from the table schema; do
// not edit by hand.
type {{ .Entity }}ViewModel struct {
{{- range .Fields }}
	{{ .Name }} any ` + "`" + `json:"{{ snake .Name }}"` + "`" + ` // {{ .Label }}{{ if .Required }} (required){{ end }}
{{- end }}
}
`

const viewTemplate = `<!-- Generated view for {{ .Entity }} ({{ .Module }}) -->
<section class="wizard-entity" data-entity="{{ lower .Entity }}">
  <h2>{{ .DisplayName }}</h2>

  <table class="wizard-grid" id="{{ lower .Entity }}-grid">
    <thead>
      <tr>
{{- range .Grid }}
{{- if .Visible }}
        <th data-field="{{ .Name }}" data-width="{{ .Width }}"{{ if .Sortable }} data-sortable="true"{{ end }}>{{ .Label }}</th>
{{- end }}
{{- end }}
      </tr>
    </thead>
    <tbody></tbody>
  </table>

  <form class="wizard-form" id="{{ lower .Entity }}-form">
{{- range .Fields }}
    <div class="wizard-field wizard-field-{{ .Widget }}">
      <label for="{{ snake .Name }}">{{ .Label }}</label>
      <input id="{{ snake .Name }}" name="{{ snake .Name }}" data-widget="{{ .Widget }}"{{ if .Required }} required{{ end }}{{ if .ReadOnly }} readonly{{ end }}{{ if .Placeholder }} placeholder="{{ .Placeholder }}"{{ end }} />
    </div>
{{- end }}
    <button type="submit">Save</button>
  </form>
</section>
`

const scriptTemplate = `// Generated grid and form wiring for {{ .Entity }}.
(function () {
  "use strict";

  var endpoint = "/{{ lower .Entity }}";
  var grid = document.getElementById("{{ lower .Entity }}-grid");
  var form = document.getElementById("{{ lower .Entity }}-form");

  function loadGrid() {
    fetch(endpoint)
      .then(function (res) { return res.json(); })
      .then(function (rows) {
        var body = grid.querySelector("tbody");
        body.innerHTML = "";
        rows.forEach(function (row) {
          var tr = document.createElement("tr");
{{- range .Grid }}
{{- if .Visible }}
          tr.appendChild(cell(row["{{ snake .Name }}"]));
{{- end }}
{{- end }}
          body.appendChild(tr);
        });
      });
  }

  function cell(value) {
    var td = document.createElement("td");
    td.textContent = value === null || value === undefined ? "" : value;
    return td;
  }

  form.addEventListener("submit", function (event) {
    event.preventDefault();
    var payload = {};
    new FormData(form).forEach(function (value, key) { payload[key] = value; });
    fetch(endpoint, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(payload),
    }).then(loadGrid);
  });

  loadGrid();
})();
`

const stylesheetTemplate = `/* Generated styles for {{ .Entity }}. */
.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-grid {
  width: 100%;
  border-collapse: collapse;
}

.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-grid th,
.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-grid td {
  padding: 0.5rem;
  border-bottom: 1px solid #ddd;
  text-align: left;
}

.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-form {
  display: grid;
  grid-template-columns: repeat({{ .FormColumns }}, 1fr);
  gap: 0.75rem;
  margin-top: 1rem;
}

.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-field label {
  display: block;
  font-weight: 600;
  margin-bottom: 0.25rem;
}

.wizard-entity[data-entity="{{ lower .Entity }}"] .wizard-field input[readonly] {
  background: #f4f4f4;
}
`
